package pages

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ndrewpacheco/warbler/internal/app"
	"github.com/ndrewpacheco/warbler/internal/transport/http/middleware"
)

type HomeHandler struct {
	view           *View
	messageService *app.MessageService
	socialService  *app.SocialService
}

func NewHomeHandler(view *View, messageService *app.MessageService, socialService *app.SocialService) *HomeHandler {
	return &HomeHandler{view: view, messageService: messageService, socialService: socialService}
}

// Index shows the timeline to logged-in users and the landing page to
// everyone else.
func (h *HomeHandler) Index(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.view.Render(c, http.StatusOK, "home-anon.html", gin.H{"BodyClass": "anon"})
		return
	}

	ctx := c.Request.Context()
	messages, err := h.messageService.Timeline(ctx, user.ID)
	if err != nil {
		h.view.Fail(c, err)
		return
	}
	stats, err := h.socialService.Stats(ctx, user.ID)
	if err != nil {
		h.view.Fail(c, err)
		return
	}

	h.view.Render(c, http.StatusOK, "home.html", gin.H{
		"Messages": messages,
		"Stats":    stats,
	})
}
