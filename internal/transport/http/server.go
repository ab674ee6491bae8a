package http

import (
	"html/template"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	appsvc "github.com/ndrewpacheco/warbler/internal/app"
	"github.com/ndrewpacheco/warbler/internal/bootstrap"
	"github.com/ndrewpacheco/warbler/internal/cache"
	"github.com/ndrewpacheco/warbler/internal/monitoring"
	"github.com/ndrewpacheco/warbler/internal/pkg/passhash"
	"github.com/ndrewpacheco/warbler/internal/repository"
	"github.com/ndrewpacheco/warbler/internal/transport/http/handler"
	"github.com/ndrewpacheco/warbler/internal/transport/http/middleware"
	"github.com/ndrewpacheco/warbler/internal/transport/http/pages"
	"github.com/ndrewpacheco/warbler/internal/transport/http/session"
	"github.com/ndrewpacheco/warbler/web"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	cfg := app.Config
	log := app.Log

	gin.SetMode(cfg.App.GinMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(log), monitoring.Instrument(), gin.Recovery())
	router.SetHTMLTemplate(template.Must(web.Templates()))
	router.StaticFS("/static", web.Static())

	userRepo := repository.NewUserRepository(app.DB)
	messageRepo := repository.NewMessageRepository(app.DB)
	followRepo := repository.NewFollowRepository(app.DB)
	activityRepo := repository.NewActivityRepository(app.DB)

	activityService := appsvc.NewActivityService(activityRepo, followRepo)
	effects := appsvc.Effects{Publisher: activityService, Log: log}
	if app.ActivityPublisher != nil {
		effects.Publisher = app.ActivityPublisher
	}
	if app.Redis != nil {
		effects.Stats = cache.NewStatsCache(app.Redis, time.Duration(cfg.Redis.StatsTTLSeconds)*time.Second)
	}

	authService := appsvc.NewAuthService(
		userRepo,
		passhash.NewBcrypt(cfg.Auth.BcryptCost),
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.JWTExpireMinute)*time.Minute,
	)
	socialService := appsvc.NewSocialService(userRepo, followRepo, messageRepo, effects)
	messageService := appsvc.NewMessageService(messageRepo, effects)
	userService := appsvc.NewUserService(userRepo, authService, socialService, messageService, effects)

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	sessions := session.NewManager(
		session.NewCookieStore(cfg.Auth.SessionSecret, cfg.IsProduction()),
		cfg.Auth.SessionName,
	)
	registerPages(router, sessions, log, authService, userService, socialService, messageService)

	authHandler := handler.NewAuthHandler(authService, log)
	messageHandler := handler.NewMessageHandler(messageService, log)
	socialHandler := handler.NewSocialHandler(socialService, activityService, log)

	v1 := router.Group("/api/v1")
	if len(cfg.CORS.AllowedOrigins) > 0 {
		v1.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	authGroup := v1.Group("/auth")
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", middleware.AuthJWT(cfg.Auth.JWTSecret), authHandler.Me)

	v1.GET("/messages/:id", messageHandler.Get)

	protected := v1.Group("")
	protected.Use(middleware.AuthJWT(cfg.Auth.JWTSecret))
	protected.POST("/messages", messageHandler.Post)
	protected.DELETE("/messages/:id", messageHandler.Delete)
	protected.GET("/users/:id/followers", socialHandler.Followers)
	protected.GET("/users/:id/following", socialHandler.Following)
	protected.POST("/users/:id/follow", socialHandler.Follow)
	protected.DELETE("/users/:id/follow", socialHandler.Unfollow)
	protected.GET("/activity", socialHandler.Activity)

	return router
}

func registerPages(
	router *gin.Engine,
	sessions *session.Manager,
	log logrus.FieldLogger,
	authService *appsvc.AuthService,
	userService *appsvc.UserService,
	socialService *appsvc.SocialService,
	messageService *appsvc.MessageService,
) {
	view := pages.NewView(sessions, log)
	homePages := pages.NewHomeHandler(view, messageService, socialService)
	accountPages := pages.NewAccountHandler(view, sessions, authService, userService)
	userPages := pages.NewUserHandler(view, userService, socialService)
	messagePages := pages.NewMessageHandler(view, messageService)

	site := router.Group("")
	site.Use(middleware.LoadUser(sessions, authService, log))
	requireLogin := middleware.RequireLogin(sessions, log)

	site.GET("/", homePages.Index)
	site.GET("/signup", accountPages.SignupForm)
	site.POST("/signup", accountPages.Signup)
	site.GET("/login", accountPages.LoginForm)
	site.POST("/login", accountPages.Login)
	site.GET("/logout", accountPages.Logout)

	site.GET("/users", userPages.Index)
	site.GET("/users/:id", userPages.Show)
	site.GET("/messages/:id", messagePages.Show)

	private := site.Group("")
	private.Use(requireLogin)
	private.GET("/users/:id/following", userPages.Following)
	private.GET("/users/:id/followers", userPages.Followers)
	private.POST("/users/follow/:id", userPages.Follow)
	private.POST("/users/stop-following/:id", userPages.StopFollowing)
	private.GET("/users/profile", accountPages.EditForm)
	private.POST("/users/profile", accountPages.Update)
	private.POST("/users/delete", accountPages.Delete)
	private.GET("/messages/new", messagePages.NewForm)
	private.POST("/messages/new", messagePages.Create)
	private.POST("/messages/:id/delete", messagePages.Delete)
}
