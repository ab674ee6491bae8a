package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ndrewpacheco/warbler/internal/app"
	"github.com/ndrewpacheco/warbler/internal/monitoring"
	"github.com/ndrewpacheco/warbler/internal/transport/http/middleware"
	"github.com/ndrewpacheco/warbler/internal/transport/http/response"
)

type MessageHandler struct {
	messageService *app.MessageService
	log            logrus.FieldLogger
}

type PostMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

func NewMessageHandler(messageService *app.MessageService, log logrus.FieldLogger) *MessageHandler {
	return &MessageHandler{messageService: messageService, log: log}
}

func (h *MessageHandler) Post(c *gin.Context) {
	userID, ok := middleware.TokenUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	msg, err := h.messageService.Post(c.Request.Context(), userID, req.Text)
	if err != nil {
		writeError(c, h.log, err, "post message failed")
		return
	}
	monitoring.MessagesPosted.Inc()

	response.Created(c, msg)
}

func (h *MessageHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	msg, err := h.messageService.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err, "get message failed")
		return
	}
	response.OK(c, msg)
}

func (h *MessageHandler) Delete(c *gin.Context) {
	userID, ok := middleware.TokenUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.messageService.Delete(c.Request.Context(), userID, id); err != nil {
		writeError(c, h.log, err, "delete message failed")
		return
	}
	monitoring.MessagesDeleted.Inc()

	response.OK(c, gin.H{"id": id})
}

// pathID parses a positive numeric path parameter, answering 404 otherwise.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "not found")
		return 0, false
	}
	return uint(id), true
}
