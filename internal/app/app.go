package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/linapteam/linap-api/internal/config"
	"github.com/linapteam/linap-api/internal/domain"
	"github.com/linapteam/linap-api/internal/handler"
	"github.com/linapteam/linap-api/internal/repository"
	"github.com/linapteam/linap-api/internal/service"
	"github.com/linapteam/linap-api/internal/utils"
	"github.com/linapteam/linap-api/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra   Infrastructure
	config  *config.Config
	router  *gin.Engine
	server  *http.Server
	cleanup *service.CleanupService
}

// handlers groups the HTTP handlers that make up the API surface
type handlers struct {
	auth    *handler.AuthHandler
	user    *handler.UserHandler
	post    *handler.PostHandler
	video   *handler.VideoHandler
	comment *handler.CommentHandler
	like    *handler.LikeHandler
	tag     *handler.TagHandler
	catalog *handler.CatalogHandler
}

func NewApp(infra Infrastructure, cfg *config.Config) *App {
	repos := repository.NewRepositories(infra.Postgres())
	logger := infra.Logger()

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry.Duration,
		cfg.JWT.RefreshTokenExpiry.Duration,
	)

	blacklistService := service.NewTokenBlacklistService(infra.Redis())
	rateLimiter := service.NewRateLimiter(infra.Redis())
	healthChecker := NewHealthChecker(infra)
	cleanupService := service.NewCleanupService(repos.Session, repos.PasswordReset, repos.EmailVerification, logger)

	authService := service.NewAuthService(service.AuthServiceDeps{
		DB:                 infra.Postgres(),
		Repos:              repos,
		JWTManager:         jwtManager,
		BlacklistService:   blacklistService,
		Logger:             logger,
		BCryptCost:         cfg.Security.BCryptCost,
		RefreshTokenExpiry: cfg.JWT.RefreshTokenExpiry.Duration,
		ResetTokenExpiry:   cfg.Security.ResetTokenExpiry.Duration,
		VerifyTokenExpiry:  cfg.Security.VerifyTokenExpiry.Duration,
	})

	userService := service.NewUserService(repos.User)
	postService := service.NewPostService(repos.Post, repos.Tag)
	videoService := service.NewVideoService(repos.Video)
	commentService := service.NewCommentService(repos.Comment, repos.Post)
	likeService := service.NewLikeService(infra.Postgres(), repos.Like, repos.Post, repos.Video, repos.Comment)
	tagService := service.NewTagService(repos.Tag)
	catalogService := service.NewCatalogService(repos.Map, repos.Agent)

	h := handlers{
		auth:    handler.NewAuthHandler(authService, logger),
		user:    handler.NewUserHandler(userService, logger),
		post:    handler.NewPostHandler(postService, logger),
		video:   handler.NewVideoHandler(videoService, logger),
		comment: handler.NewCommentHandler(commentService, logger),
		like:    handler.NewLikeHandler(likeService, logger),
		tag:     handler.NewTagHandler(tagService, logger),
		catalog: handler.NewCatalogHandler(catalogService, logger),
	}

	router := gin.Default()
	router.Use(otelgin.Middleware("linap-api"))
	router.Use(handler.LoggerMiddleware(logger))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, cfg, h, authService, rateLimiter, healthChecker, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:   infra,
		config:  cfg,
		router:  router,
		server:  srv,
		cleanup: cleanupService,
	}
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	h handlers,
	authService service.AuthService,
	rateLimiter *service.RateLimiter,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	authRequired := handler.AuthMiddleware(authService)
	loginRateLimit := handler.RateLimitMiddleware(
		rateLimiter,
		cfg.Security.RateLimitRequests,
		cfg.Security.RateLimitWindow.Duration,
		handler.IPBasedKey,
	)

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", loginRateLimit, h.auth.Register)
			auth.POST("/login", loginRateLimit, h.auth.Login)
			auth.POST("/refresh", h.auth.Refresh)
			auth.POST("/logout", authRequired, h.auth.Logout)
			auth.PUT("/password", authRequired, h.auth.ChangePassword)
			auth.POST("/password/reset", loginRateLimit, h.auth.RequestPasswordReset)
			auth.POST("/password/reset/confirm", h.auth.ConfirmPasswordReset)
			auth.POST("/email/verify", authRequired, h.auth.RequestEmailVerification)
			auth.POST("/email/verify/confirm", h.auth.ConfirmEmailVerification)
			auth.GET("/sessions", authRequired, h.auth.ListSessions)
		}

		users := api.Group("/users")
		{
			users.GET("/me", authRequired, h.user.GetMe)
			users.PATCH("/me", authRequired, h.user.UpdateMe)
			users.PUT("/me/avatar", authRequired, h.user.UpdateAvatar)
			users.DELETE("/me", authRequired, h.user.DeactivateMe)
			users.PUT("/me/activate", authRequired, h.user.ActivateMe)
			users.GET("/me/likes", authRequired, h.like.ListMine)
			users.GET("/:id", h.user.GetByID)
			users.GET("/:id/comments", h.comment.ListByUser)
			users.GET("/by-username/:username", h.user.GetByUsername)
		}

		posts := api.Group("/posts")
		{
			posts.GET("", h.post.List)
			posts.POST("", authRequired, h.post.Create)
			posts.GET("/by-slug/:slug", h.post.GetBySlug)
			posts.GET("/:id", h.post.GetByID)
			posts.PATCH("/:id", authRequired, h.post.Update)
			posts.DELETE("/:id", authRequired, h.post.Delete)
			posts.POST("/:id/publish", authRequired, h.post.Publish)
			posts.POST("/:id/unpublish", authRequired, h.post.Unpublish)
			posts.POST("/:id/views", h.post.RegisterView)
			posts.GET("/:id/tags", h.post.ListTags)
			posts.PUT("/:id/tags/:tagId", authRequired, h.post.AttachTag)
			posts.DELETE("/:id/tags/:tagId", authRequired, h.post.DetachTag)
			posts.GET("/:id/comments", h.comment.ListByPost)
			posts.POST("/:id/comments", authRequired, h.comment.Create)
			posts.GET("/:id/likes", h.like.ListByTarget(domain.LikeTargetPost))
			posts.GET("/:id/like", authRequired, h.like.GetMine(domain.LikeTargetPost))
			posts.POST("/:id/like", authRequired, h.like.Like(domain.LikeTargetPost))
			posts.DELETE("/:id/like", authRequired, h.like.Unlike(domain.LikeTargetPost))
		}

		videos := api.Group("/videos")
		{
			videos.GET("", h.video.List)
			videos.POST("", authRequired, h.video.Create)
			videos.GET("/:id", h.video.GetByID)
			videos.PATCH("/:id", authRequired, h.video.Update)
			videos.DELETE("/:id", authRequired, h.video.Delete)
			videos.POST("/:id/views", h.video.RegisterView)
			videos.GET("/:id/likes", h.like.ListByTarget(domain.LikeTargetVideo))
			videos.GET("/:id/like", authRequired, h.like.GetMine(domain.LikeTargetVideo))
			videos.POST("/:id/like", authRequired, h.like.Like(domain.LikeTargetVideo))
			videos.DELETE("/:id/like", authRequired, h.like.Unlike(domain.LikeTargetVideo))
		}

		comments := api.Group("/comments")
		{
			comments.GET("/:id", h.comment.GetByID)
			comments.PATCH("/:id", authRequired, h.comment.Update)
			comments.DELETE("/:id", authRequired, h.comment.Delete)
			comments.GET("/:id/likes", h.like.ListByTarget(domain.LikeTargetComment))
			comments.GET("/:id/like", authRequired, h.like.GetMine(domain.LikeTargetComment))
			comments.POST("/:id/like", authRequired, h.like.Like(domain.LikeTargetComment))
			comments.DELETE("/:id/like", authRequired, h.like.Unlike(domain.LikeTargetComment))
		}

		tags := api.Group("/tags")
		{
			tags.GET("", h.tag.List)
			tags.POST("", authRequired, h.tag.Create)
			tags.GET("/:id", h.tag.GetByID)
			tags.GET("/by-name/:name", h.tag.GetByName)
			tags.PATCH("/:id", authRequired, h.tag.Update)
			tags.DELETE("/:id", authRequired, h.tag.Delete)
		}

		maps := api.Group("/maps")
		{
			maps.GET("", h.catalog.ListMaps)
			maps.POST("", authRequired, h.catalog.CreateMap)
			maps.GET("/:id", h.catalog.GetMap)
			maps.PATCH("/:id", authRequired, h.catalog.UpdateMap)
			maps.DELETE("/:id", authRequired, h.catalog.DeleteMap)
		}

		agents := api.Group("/agents")
		{
			agents.GET("", h.catalog.ListAgents)
			agents.POST("", authRequired, h.catalog.CreateAgent)
			agents.GET("/:id", h.catalog.GetAgent)
			agents.PATCH("/:id", authRequired, h.catalog.UpdateAgent)
			agents.DELETE("/:id", authRequired, h.catalog.DeleteAgent)
			agents.GET("/:id/abilities", h.catalog.ListAbilities)
			agents.POST("/:id/abilities", authRequired, h.catalog.CreateAbility)
		}

		abilities := api.Group("/abilities")
		{
			abilities.PATCH("/:id", authRequired, h.catalog.UpdateAbility)
			abilities.DELETE("/:id", authRequired, h.catalog.DeleteAbility)
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go a.cleanup.Run(ctx, a.config.Security.CleanupInterval.Duration)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := make(chan error, 2)

	go func() {
		errs <- a.server.Shutdown(ctx)
	}()

	go func() {
		errs <- a.infra.Shutdown(ctx)
	}()

	err := errors.Join(<-errs, <-errs)
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
