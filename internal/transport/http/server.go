package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appsvc "recordhub/internal/app"
	"recordhub/internal/bootstrap"
	"recordhub/internal/cache"
	"recordhub/internal/repository"
	"recordhub/internal/transport/http/handler"
	"recordhub/internal/transport/http/middleware"
	"recordhub/web"
)

// NewRouter wires every route. The returned handler applies the form method
// override before gin routes the request.
func NewRouter(app *bootstrap.App) (http.Handler, error) {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(app.Logger),
		middleware.Recovery(app.Logger),
		middleware.Metrics(),
	)

	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates failed: %w", err)
	}
	router.SetHTMLTemplate(templates)

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/games") })

	userRepo := repository.NewUserRepository(app.DB)
	gameRepo := repository.NewGameRepository(app.DB)
	mayorRepo := repository.NewMayorRepository(app.DB)
	chirpRepo := repository.NewChirpRepository(app.DB)

	var denylist appsvc.TokenDenylist
	if app.Redis != nil {
		denylist = cache.NewTokenDenylist(app.Redis)
	}
	jwtExpiration := time.Duration(app.Config.Auth.JWTExpireMinute) * time.Minute
	authService := appsvc.NewAuthService(userRepo, denylist, app.Config.Auth.JWTSecret, jwtExpiration)
	gameService := appsvc.NewGameService(gameRepo, app.Publisher, app.Logger)
	mayorService := appsvc.NewMayorService(mayorRepo, app.Publisher, app.Logger)
	chirpService := appsvc.NewChirpService(chirpRepo, userRepo, app.Publisher, app.Logger)

	timeout := app.RequestTimeout()
	authHandler := handler.NewAuthHandler(authService, handler.CookieConfig{
		Name:   app.Config.Auth.CookieName,
		MaxAge: jwtExpiration,
		Secure: app.Config.App.Env == "prod",
	}, app.Logger)
	requireAuth := middleware.AuthJWT(authService, app.Config.Auth.CookieName)

	router.GET("/login", authHandler.LoginPage)
	router.POST("/login", authHandler.Login)
	router.POST("/register", authHandler.Register)
	router.POST("/logout", requireAuth, authHandler.Logout)

	v1 := router.Group("/api/v1")
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", requireAuth, authHandler.Logout)
	authGroup.GET("/me", requireAuth, authHandler.Me)
	authGroup.DELETE("/me", requireAuth, authHandler.DeleteMe)

	registerResource(router.Group("/games"), handler.NewGameHandler(gameService, timeout, app.Logger))
	registerResource(router.Group("/mayors"), handler.NewMayorHandler(mayorService, timeout, app.Logger))
	registerResource(router.Group("/chirps", requireAuth), handler.NewChirpHandler(chirpService, timeout, app.Logger))

	return middleware.MethodOverride(router), nil
}

type resourceRoutes interface {
	List(c *gin.Context)
	Show(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func registerResource(group *gin.RouterGroup, h resourceRoutes) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Show)
	group.PUT("/:id", h.Update)
	group.PATCH("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}
