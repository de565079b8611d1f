// Package router wires the HTTP surface: the public site API, the
// magic-link auth flow and the authenticated admin API.
package router

import (
	"github.com/Domi31tls/valentine/internal/auth"
	"github.com/Domi31tls/valentine/internal/config"
	"github.com/Domi31tls/valentine/internal/handler"
	"github.com/Domi31tls/valentine/internal/hydrate"
	"github.com/Domi31tls/valentine/internal/middleware"
	"github.com/Domi31tls/valentine/internal/service"
	"github.com/Domi31tls/valentine/internal/store"

	"github.com/gin-gonic/gin"
)

// Setup builds the engine with all routes registered.
func Setup(cfg *config.Config, stores *store.Stores, sessions *auth.Manager) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	hydrator := hydrate.New(stores.Media)
	email := service.NewEmailService(cfg.SMTP, cfg.Session.VerificationTTL)

	authH := handler.NewAuthHandler(stores.Users, sessions, email, cfg)
	projectH := handler.NewProjectHandler(stores, hydrator, cfg)
	retoucheH := handler.NewRetoucheHandler(stores, hydrator, cfg)
	mediaH := handler.NewMediaHandler(stores, cfg)
	userH := handler.NewUserHandler(stores.Users, sessions)
	aboutH := handler.NewAboutHandler(stores.About)
	settingsH := handler.NewSettingsHandler(stores.Settings)
	legalH := handler.NewLegalHandler(stores.Legal)
	exportH := handler.NewExportHandler(stores, cfg)
	statsH := handler.NewStatsHandler(stores)

	r.Static("/uploads", cfg.Upload.Dir)
	r.GET("/robots.txt", settingsH.RobotsTXT)

	api := r.Group("/api")
	api.Use(middleware.SessionSweep(sessions))

	// public site
	public := api.Group("")
	{
		public.GET("/projects", projectH.ListPublished)
		public.GET("/projects/random", projectH.Random)
		public.GET("/retouches", retoucheH.ListPublished)
		public.GET("/retouches/random", retoucheH.Random)
		public.GET("/about", aboutH.Get)
		public.GET("/legal", legalH.List)
		public.GET("/legal/:type", legalH.Get)
		public.GET("/export/download", exportH.Download)
	}

	// magic-link flow
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authH.Login)
		authGroup.GET("/verify", authH.Verify)
		authGroup.POST("/logout", authH.Logout)
	}

	// authenticated admin surface
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(sessions), middleware.Audit(stores.DB))
	{
		admin.GET("/me", authH.Me)
		admin.POST("/sessions/revoke-all", authH.RevokeAll)
		admin.GET("/stats", statsH.Get)

		admin.GET("/projects", projectH.List)
		admin.POST("/projects", projectH.Create)
		admin.GET("/projects/:id", projectH.Get)
		admin.PUT("/projects/:id", projectH.Update)
		admin.DELETE("/projects/:id", projectH.Delete)

		admin.GET("/retouches", retoucheH.List)
		admin.POST("/retouches", retoucheH.Create)
		admin.GET("/retouches/:id", retoucheH.Get)
		admin.PUT("/retouches/:id", retoucheH.Update)
		admin.DELETE("/retouches/:id", retoucheH.Delete)

		admin.GET("/media", mediaH.List)
		admin.POST("/media", mediaH.Upload)
		admin.GET("/media/:id", mediaH.Get)
		admin.PUT("/media/:id", mediaH.Update)
		admin.DELETE("/media/:id", mediaH.Delete)

		admin.GET("/about", aboutH.GetAdmin)
		admin.PUT("/about", aboutH.Update)

		admin.GET("/settings", settingsH.Get)
		admin.PUT("/settings", settingsH.Update)

		admin.GET("/legal", legalH.ListAdmin)
		admin.PUT("/legal/:type", legalH.Update)

		admin.GET("/export/:resource/link", exportH.Link)

		// user management is admin-role only
		users := admin.Group("/users")
		users.Use(middleware.RequireAdmin())
		{
			users.GET("", userH.List)
			users.POST("", userH.Create)
			users.GET("/:id", userH.Get)
			users.PUT("/:id", userH.Update)
			users.DELETE("/:id", userH.Delete)
		}
	}

	return r
}
