package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ndrewpacheco/warbler/internal/app"
	"github.com/ndrewpacheco/warbler/internal/model"
	"github.com/ndrewpacheco/warbler/internal/repository"
	"github.com/ndrewpacheco/warbler/internal/transport/http/response"
)

type apiError struct {
	status int
	code   int
}

var apiErrors = []struct {
	target error
	apiError
}{
	{app.ErrMessageTooLong, apiError{http.StatusBadRequest, response.CodeMessageTooLong}},
	{app.ErrSelfFollow, apiError{http.StatusBadRequest, response.CodeSelfFollow}},
	{app.ErrInvalidInput, apiError{http.StatusBadRequest, response.CodeBadRequest}},
	{app.ErrInvalidCredential, apiError{http.StatusUnauthorized, response.CodeInvalidCredentials}},
	{app.ErrNotMessageOwner, apiError{http.StatusForbidden, response.CodeForbidden}},
	{app.ErrUserNotFound, apiError{http.StatusNotFound, response.CodeUserNotFound}},
	{app.ErrMessageNotFound, apiError{http.StatusNotFound, response.CodeMessageNotFound}},
	{app.ErrNotFollowing, apiError{http.StatusNotFound, response.CodeNotFound}},
	{app.ErrUsernameExists, apiError{http.StatusConflict, response.CodeUsernameExists}},
	{app.ErrEmailExists, apiError{http.StatusConflict, response.CodeEmailExists}},
	{app.ErrUserExists, apiError{http.StatusConflict, response.CodeConflict}},
	{app.ErrAlreadyFollowing, apiError{http.StatusConflict, response.CodeConflict}},
	{repository.ErrConstraintViolation, apiError{http.StatusConflict, response.CodeConflict}},
}

// writeError maps a service error onto the response envelope. Unknown errors
// are logged and reported as fallback.
func writeError(c *gin.Context, log logrus.FieldLogger, err error, fallback string) {
	for _, e := range apiErrors {
		if errors.Is(err, e.target) {
			response.Error(c, e.status, e.code, err.Error())
			return
		}
	}
	_ = c.Error(err)
	log.WithError(err).WithField("path", c.FullPath()).Error(fallback)
	response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
}

func userView(u *model.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"username":  u.Username,
		"email":     u.Email,
		"image_url": u.ImageURL,
		"bio":       u.Bio,
		"location":  u.Location,
	}
}
