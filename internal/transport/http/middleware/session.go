package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ndrewpacheco/warbler/internal/model"
	"github.com/ndrewpacheco/warbler/internal/transport/http/session"
)

const ContextCurrentUserKey = "current_user"

const unauthorizedMessage = "Access unauthorized."

// UserLoader resolves a session user id into a user.
type UserLoader interface {
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
}

// LoadUser resolves the session's user for every request. A session pointing
// at a deleted account is logged out.
func LoadUser(sessions *session.Manager, users UserLoader, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessions.UserID(c.Request)
		if !ok {
			c.Next()
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), id)
		switch {
		case err != nil:
			log.WithError(err).WithField("user_id", id).Error("load session user failed")
		case user == nil:
			if err := sessions.Logout(c.Writer, c.Request); err != nil {
				log.WithError(err).Warn("drop stale session failed")
			}
		default:
			c.Set(ContextCurrentUserKey, user)
		}
		c.Next()
	}
}

// RequireLogin sends anonymous visitors back to the landing page.
func RequireLogin(sessions *session.Manager, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); ok {
			c.Next()
			return
		}
		DenyHTML(c, sessions, log)
	}
}

// DenyHTML flashes the unauthorized notice and redirects home.
func DenyHTML(c *gin.Context, sessions *session.Manager, log logrus.FieldLogger) {
	if err := sessions.AddFlash(c.Writer, c.Request, session.FlashDanger, unauthorizedMessage); err != nil {
		log.WithError(err).Warn("add unauthorized flash failed")
	}
	c.Redirect(http.StatusFound, "/")
	c.Abort()
}

func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(ContextCurrentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}
