// Package pages serves the server-rendered Warbler site.
package pages

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ndrewpacheco/warbler/internal/app"
	"github.com/ndrewpacheco/warbler/internal/model"
	"github.com/ndrewpacheco/warbler/internal/transport/http/middleware"
	"github.com/ndrewpacheco/warbler/internal/transport/http/session"
)

// View renders templates with the layout data every page needs.
type View struct {
	sessions *session.Manager
	log      logrus.FieldLogger
}

func NewView(sessions *session.Manager, log logrus.FieldLogger) *View {
	return &View{sessions: sessions, log: log}
}

func (v *View) Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	user, _ := middleware.CurrentUser(c)
	data["CurrentUser"] = user

	flashes, err := v.sessions.Flashes(c.Writer, c.Request)
	if err != nil {
		v.log.WithError(err).Warn("read flashes failed")
	}
	data["Flashes"] = flashes

	for _, key := range []string{"Title", "Query", "BodyClass", "Error"} {
		if _, ok := data[key]; !ok {
			data[key] = ""
		}
	}
	c.HTML(status, name, data)
}

func (v *View) Flash(c *gin.Context, category, message string) {
	if err := v.sessions.AddFlash(c.Writer, c.Request, category, message); err != nil {
		v.log.WithError(err).Warn("add flash failed")
	}
}

func (v *View) Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

func (v *View) Deny(c *gin.Context) {
	middleware.DenyHTML(c, v.sessions, v.log)
}

// Fail renders the error page: 404 for missing users and messages, 500 for
// anything unexpected.
func (v *View) Fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong."
	switch {
	case errors.Is(err, app.ErrUserNotFound), errors.Is(err, app.ErrMessageNotFound):
		status = http.StatusNotFound
		message = err.Error()
	default:
		_ = c.Error(err)
		v.log.WithError(err).WithField("path", c.FullPath()).Error("render page failed")
	}
	v.Render(c, status, "error.html", gin.H{"Title": strconv.Itoa(status), "Status": status, "Error": message})
	c.Abort()
}

// currentUser is only called behind RequireLogin.
func currentUser(c *gin.Context) *model.User {
	user, _ := middleware.CurrentUser(c)
	return user
}

func userPath(id uint) string {
	return "/users/" + strconv.FormatUint(uint64(id), 10)
}

// parseID reads a numeric path parameter, rendering notFound as a 404 when
// it is not one.
func (v *View) parseID(c *gin.Context, name string, notFound error) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		v.Fail(c, notFound)
		return 0, false
	}
	return uint(id), true
}
