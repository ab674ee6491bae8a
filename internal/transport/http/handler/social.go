package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ndrewpacheco/warbler/internal/app"
	"github.com/ndrewpacheco/warbler/internal/monitoring"
	"github.com/ndrewpacheco/warbler/internal/transport/http/middleware"
	"github.com/ndrewpacheco/warbler/internal/transport/http/response"
)

type SocialHandler struct {
	socialService   *app.SocialService
	activityService *app.ActivityService
	log             logrus.FieldLogger
}

func NewSocialHandler(socialService *app.SocialService, activityService *app.ActivityService, log logrus.FieldLogger) *SocialHandler {
	return &SocialHandler{
		socialService:   socialService,
		activityService: activityService,
		log:             log,
	}
}

func (h *SocialHandler) Followers(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	users, err := h.socialService.Followers(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err, "list followers failed")
		return
	}
	response.OK(c, users)
}

func (h *SocialHandler) Following(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	users, err := h.socialService.Following(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err, "list following failed")
		return
	}
	response.OK(c, users)
}

func (h *SocialHandler) Follow(c *gin.Context) {
	actorID, _ := middleware.TokenUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.socialService.Follow(c.Request.Context(), actorID, id); err != nil {
		writeError(c, h.log, err, "follow failed")
		return
	}
	monitoring.FollowChanges.WithLabelValues("follow").Inc()
	response.OK(c, gin.H{"following": true})
}

func (h *SocialHandler) Unfollow(c *gin.Context) {
	actorID, _ := middleware.TokenUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.socialService.Unfollow(c.Request.Context(), actorID, id); err != nil {
		writeError(c, h.log, err, "unfollow failed")
		return
	}
	monitoring.FollowChanges.WithLabelValues("unfollow").Inc()
	response.OK(c, gin.H{"following": false})
}

// Activity lists recent events addressed to the caller.
func (h *SocialHandler) Activity(c *gin.Context) {
	userID, _ := middleware.TokenUserID(c)
	activities, err := h.activityService.ListForUser(c.Request.Context(), userID, 50)
	if err != nil {
		writeError(c, h.log, err, "list activity failed")
		return
	}
	response.OK(c, activities)
}
