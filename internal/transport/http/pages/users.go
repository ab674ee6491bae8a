package pages

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ndrewpacheco/warbler/internal/app"
	"github.com/ndrewpacheco/warbler/internal/model"
	"github.com/ndrewpacheco/warbler/internal/monitoring"
	"github.com/ndrewpacheco/warbler/internal/transport/http/middleware"
	"github.com/ndrewpacheco/warbler/internal/transport/http/session"
)

type UserHandler struct {
	view          *View
	userService   *app.UserService
	socialService *app.SocialService
}

func NewUserHandler(view *View, userService *app.UserService, socialService *app.SocialService) *UserHandler {
	return &UserHandler{view: view, userService: userService, socialService: socialService}
}

func (h *UserHandler) Index(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	users, err := h.userService.List(c.Request.Context(), query)
	if err != nil {
		h.view.Fail(c, err)
		return
	}
	h.view.Render(c, http.StatusOK, "users-index.html", gin.H{"Title": "Users", "Users": users, "Query": query})
}

func (h *UserHandler) Show(c *gin.Context) {
	data, ok := h.profileData(c)
	if !ok {
		return
	}
	h.view.Render(c, http.StatusOK, "users-show.html", data)
}

func (h *UserHandler) Following(c *gin.Context) {
	h.renderList(c, "users-following.html", h.socialService.Following)
}

func (h *UserHandler) Followers(c *gin.Context) {
	h.renderList(c, "users-followers.html", h.socialService.Followers)
}

type listFunc func(ctx context.Context, userID uint) ([]model.User, error)

func (h *UserHandler) renderList(c *gin.Context, name string, list listFunc) {
	data, ok := h.profileData(c)
	if !ok {
		return
	}
	profile := data["Profile"].(*app.Profile)

	users, err := list(c.Request.Context(), profile.User.ID)
	if err != nil {
		h.view.Fail(c, err)
		return
	}
	followingIDs, err := h.socialService.FollowingIDs(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.view.Fail(c, err)
		return
	}

	data["Users"] = users
	data["FollowingIDs"] = followingIDs
	h.view.Render(c, http.StatusOK, name, data)
}

// profileData loads the user named by the :id parameter along with whether
// the viewer follows them.
func (h *UserHandler) profileData(c *gin.Context) (gin.H, bool) {
	id, ok := h.view.parseID(c, "id", app.ErrUserNotFound)
	if !ok {
		return nil, false
	}

	ctx := c.Request.Context()
	profile, err := h.userService.Profile(ctx, id)
	if err != nil {
		h.view.Fail(c, err)
		return nil, false
	}

	isFollowing := false
	if viewer, ok := middleware.CurrentUser(c); ok && viewer.ID != id {
		if isFollowing, err = h.socialService.IsFollowing(ctx, viewer.ID, id); err != nil {
			h.view.Fail(c, err)
			return nil, false
		}
	}

	return gin.H{
		"Title":       "@" + profile.User.Username,
		"Profile":     profile,
		"IsFollowing": isFollowing,
	}, true
}

func (h *UserHandler) Follow(c *gin.Context) {
	id, ok := h.view.parseID(c, "id", app.ErrUserNotFound)
	if !ok {
		return
	}
	user := currentUser(c)

	err := h.socialService.Follow(c.Request.Context(), user.ID, id)
	switch {
	case err == nil:
		monitoring.FollowChanges.WithLabelValues("follow").Inc()
	case errors.Is(err, app.ErrSelfFollow), errors.Is(err, app.ErrAlreadyFollowing):
		h.view.Flash(c, session.FlashDanger, err.Error())
	default:
		h.view.Fail(c, err)
		return
	}
	h.view.Redirect(c, userPath(user.ID)+"/following")
}

func (h *UserHandler) StopFollowing(c *gin.Context) {
	id, ok := h.view.parseID(c, "id", app.ErrUserNotFound)
	if !ok {
		return
	}
	user := currentUser(c)

	err := h.socialService.Unfollow(c.Request.Context(), user.ID, id)
	switch {
	case err == nil:
		monitoring.FollowChanges.WithLabelValues("unfollow").Inc()
	case errors.Is(err, app.ErrNotFollowing):
		h.view.Flash(c, session.FlashInfo, err.Error())
	default:
		h.view.Fail(c, err)
		return
	}
	h.view.Redirect(c, userPath(user.ID)+"/following")
}
