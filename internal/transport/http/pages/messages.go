package pages

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ndrewpacheco/warbler/internal/app"
	"github.com/ndrewpacheco/warbler/internal/monitoring"
)

type MessageHandler struct {
	view           *View
	messageService *app.MessageService
}

func NewMessageHandler(view *View, messageService *app.MessageService) *MessageHandler {
	return &MessageHandler{view: view, messageService: messageService}
}

func (h *MessageHandler) NewForm(c *gin.Context) {
	h.view.Render(c, http.StatusOK, "messages-new.html", gin.H{"Title": "New message", "Text": ""})
}

func (h *MessageHandler) Create(c *gin.Context) {
	user := currentUser(c)
	text := c.PostForm("text")

	_, err := h.messageService.Post(c.Request.Context(), user.ID, text)
	switch {
	case errors.Is(err, app.ErrInvalidInput), errors.Is(err, app.ErrMessageTooLong):
		h.view.Render(c, http.StatusBadRequest, "messages-new.html", gin.H{
			"Title": "New message",
			"Text":  text,
			"Error": err.Error(),
		})
		return
	case err != nil:
		h.view.Fail(c, err)
		return
	}
	monitoring.MessagesPosted.Inc()

	h.view.Redirect(c, userPath(user.ID))
}

func (h *MessageHandler) Show(c *gin.Context) {
	id, ok := h.view.parseID(c, "id", app.ErrMessageNotFound)
	if !ok {
		return
	}
	msg, err := h.messageService.Get(c.Request.Context(), id)
	if err != nil {
		h.view.Fail(c, err)
		return
	}
	h.view.Render(c, http.StatusOK, "messages-show.html", gin.H{"Message": msg})
}

// Delete removes a message owned by the logged-in user. Anyone else is
// treated as unauthorized.
func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := h.view.parseID(c, "id", app.ErrMessageNotFound)
	if !ok {
		return
	}
	user := currentUser(c)

	_, err := h.messageService.Delete(c.Request.Context(), user.ID, id)
	switch {
	case errors.Is(err, app.ErrNotMessageOwner):
		h.view.Deny(c)
		return
	case err != nil:
		h.view.Fail(c, err)
		return
	}
	monitoring.MessagesDeleted.Inc()

	h.view.Redirect(c, userPath(user.ID))
}
