package http

import (
	"context"
	"net/http"
	"time"

	"github.com/Miraines/MoonyAndStarry/task-service/internal/adapters/transport/http/middleware"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/model"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/infra/config"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/infra/ratelimit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps are the collaborators of the HTTP surface besides the handlers.
type RouterDeps struct {
	Resolver middleware.Resolver
	DB       Pinger
	Log      *zap.Logger
	Registry *prometheus.Registry
	Limiter  *ratelimit.PerKey
}

func NewRouter(h *Handler, cfg *config.Config, deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(middleware.Metrics(deps.Registry))
	if deps.Limiter != nil {
		r.Use(middleware.RateLimitPerIP(deps.Limiter))
	}
	r.Use(cors.New(corsConfig(cfg)))

	access := middleware.RequireToken(deps.Resolver, model.AccessToken)
	refresh := middleware.RequireToken(deps.Resolver, model.RefreshToken)

	auth := r.Group("/auth")
	auth.POST("/login", h.login)
	auth.POST("/refresh-token", refresh, h.refreshToken)

	user := r.Group("/user")
	user.POST("/", h.createUser)
	user.GET("/", access, h.showUser)
	user.PATCH("/", access, h.updateUser)
	user.DELETE("/", access, h.deleteUser)

	label := r.Group("/label", access)
	label.POST("/", h.createLabel)
	label.GET("/all", h.listLabels)
	label.GET("/:label_id", h.showLabel)
	label.PATCH("/:label_id", h.updateLabel)
	label.DELETE("/:label_id", h.deleteLabel)

	task := r.Group("/task", access)
	task.POST("/", h.createTask)
	task.GET("/all", h.listTasks)
	task.GET("/:task_id", h.showTask)
	task.PATCH("/:task_id", h.updateTask)
	task.DELETE("/:task_id", h.deleteTask)

	r.GET("/health", health(deps.DB, deps.Log))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	return r
}

func health(db Pinger, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			log.Warn("health: database ping failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// corsConfig allows any origin for "*"; credentials then stay disabled
// because browsers reject them with a wildcard origin.
func corsConfig(cfg *config.Config) cors.Config {
	cc := cors.Config{
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept",
			"Authorization",
			"X-Requested-With",
		},
		ExposeHeaders: []string{"Content-Length", "WWW-Authenticate"},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			cc.AllowAllOrigins = true
			return cc
		}
	}
	if len(cfg.AllowedOrigins) == 0 {
		cc.AllowAllOrigins = true
		return cc
	}
	cc.AllowOrigins = cfg.AllowedOrigins
	cc.AllowCredentials = cfg.AllowCredentials
	return cc
}
