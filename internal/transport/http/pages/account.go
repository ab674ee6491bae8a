package pages

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ndrewpacheco/warbler/internal/app"
	"github.com/ndrewpacheco/warbler/internal/monitoring"
	"github.com/ndrewpacheco/warbler/internal/transport/http/session"
)

const invalidCredentialsMessage = "Invalid credentials."

type AccountHandler struct {
	view        *View
	sessions    *session.Manager
	authService *app.AuthService
	userService *app.UserService
}

type SignupForm struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	Password string `form:"password"`
	ImageURL string `form:"image_url"`
}

type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type ProfileForm struct {
	Username       string `form:"username"`
	Email          string `form:"email"`
	ImageURL       string `form:"image_url"`
	HeaderImageURL string `form:"header_image_url"`
	Bio            string `form:"bio"`
	Location       string `form:"location"`
	Password       string `form:"password"`
}

func NewAccountHandler(view *View, sessions *session.Manager, authService *app.AuthService, userService *app.UserService) *AccountHandler {
	return &AccountHandler{
		view:        view,
		sessions:    sessions,
		authService: authService,
		userService: userService,
	}
}

func (h *AccountHandler) SignupForm(c *gin.Context) {
	h.view.Render(c, http.StatusOK, "signup.html", gin.H{"Title": "Sign up", "Form": SignupForm{}})
}

func (h *AccountHandler) Signup(c *gin.Context) {
	var form SignupForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderSignup(c, form, "Please fill in the form.")
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), app.SignupInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
		ImageURL: form.ImageURL,
	})
	switch {
	case errors.Is(err, app.ErrUsernameExists), errors.Is(err, app.ErrEmailExists), errors.Is(err, app.ErrUserExists):
		h.renderSignup(c, form, "Username already taken")
		return
	case errors.Is(err, app.ErrInvalidInput):
		h.renderSignup(c, form, err.Error())
		return
	case err != nil:
		h.view.Fail(c, err)
		return
	}
	monitoring.SignupSuccess.Inc()

	if err := h.sessions.Login(c.Writer, c.Request, user.ID); err != nil {
		h.view.Fail(c, err)
		return
	}
	h.view.Redirect(c, "/")
}

func (h *AccountHandler) renderSignup(c *gin.Context, form SignupForm, message string) {
	form.Password = ""
	h.view.Render(c, http.StatusBadRequest, "signup.html", gin.H{"Title": "Sign up", "Form": form, "Error": message})
}

func (h *AccountHandler) LoginForm(c *gin.Context) {
	h.view.Render(c, http.StatusOK, "login.html", gin.H{"Title": "Log in", "Form": LoginForm{}})
}

func (h *AccountHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil || form.Username == "" || form.Password == "" {
		monitoring.LoginFailure.WithLabelValues(monitoring.ReasonInvalidInput).Inc()
		h.renderLogin(c, form)
		return
	}

	user, err := h.authService.Authenticate(c.Request.Context(), form.Username, form.Password)
	if errors.Is(err, app.ErrInvalidCredential) {
		monitoring.LoginFailure.WithLabelValues(monitoring.ReasonInvalidCredentials).Inc()
		h.renderLogin(c, form)
		return
	}
	if err != nil {
		h.view.Fail(c, err)
		return
	}
	monitoring.LoginSuccess.Inc()

	if err := h.sessions.Login(c.Writer, c.Request, user.ID); err != nil {
		h.view.Fail(c, err)
		return
	}
	h.view.Flash(c, session.FlashSuccess, "Hello, "+user.Username+"!")
	h.view.Redirect(c, "/")
}

func (h *AccountHandler) renderLogin(c *gin.Context, form LoginForm) {
	form.Password = ""
	h.view.Render(c, http.StatusUnauthorized, "login.html", gin.H{"Title": "Log in", "Form": form, "Error": invalidCredentialsMessage})
}

func (h *AccountHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Writer, c.Request); err != nil {
		h.view.Fail(c, err)
		return
	}
	h.view.Flash(c, session.FlashSuccess, "You have successfully logged out.")
	h.view.Redirect(c, "/login")
}

func (h *AccountHandler) EditForm(c *gin.Context) {
	user := currentUser(c)
	h.view.Render(c, http.StatusOK, "users-edit.html", gin.H{
		"Title": "Edit profile",
		"Form": ProfileForm{
			Username:       user.Username,
			Email:          user.Email,
			ImageURL:       user.ImageURL,
			HeaderImageURL: user.HeaderImageURL,
			Bio:            user.Bio,
			Location:       user.Location,
		},
	})
}

func (h *AccountHandler) Update(c *gin.Context) {
	user := currentUser(c)

	var form ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderEdit(c, form, "Please fill in the form.")
		return
	}

	updated, err := h.userService.Update(c.Request.Context(), user.ID, app.UpdateProfileInput{
		Username:        form.Username,
		Email:           form.Email,
		ImageURL:        form.ImageURL,
		HeaderImageURL:  form.HeaderImageURL,
		Bio:             form.Bio,
		Location:        form.Location,
		CurrentPassword: form.Password,
	})
	switch {
	case errors.Is(err, app.ErrInvalidCredential):
		h.view.Flash(c, session.FlashDanger, "Wrong password, please try again.")
		h.view.Redirect(c, "/")
		return
	case errors.Is(err, app.ErrUsernameExists), errors.Is(err, app.ErrEmailExists), errors.Is(err, app.ErrUserExists):
		h.renderEdit(c, form, err.Error())
		return
	case errors.Is(err, app.ErrInvalidInput):
		h.renderEdit(c, form, err.Error())
		return
	case err != nil:
		h.view.Fail(c, err)
		return
	}

	h.view.Redirect(c, userPath(updated.ID))
}

func (h *AccountHandler) renderEdit(c *gin.Context, form ProfileForm, message string) {
	form.Password = ""
	h.view.Render(c, http.StatusBadRequest, "users-edit.html", gin.H{"Title": "Edit profile", "Form": form, "Error": message})
}

// Delete removes the logged-in account and logs it out.
func (h *AccountHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if err := h.userService.Delete(c.Request.Context(), user.ID); err != nil {
		h.view.Fail(c, err)
		return
	}
	if err := h.sessions.Logout(c.Writer, c.Request); err != nil {
		h.view.Fail(c, err)
		return
	}
	h.view.Redirect(c, "/signup")
}
