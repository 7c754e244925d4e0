package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	articleapi "github.com/inkwell-org/backend/internal/api/article"
	categoryapi "github.com/inkwell-org/backend/internal/api/category"
	commentapi "github.com/inkwell-org/backend/internal/api/comment"
	mediaapi "github.com/inkwell-org/backend/internal/api/media"
	searchapi "github.com/inkwell-org/backend/internal/api/search"
	cachepkg "github.com/inkwell-org/backend/internal/cache"
	clientpkg "github.com/inkwell-org/backend/internal/client"
	eventpkg "github.com/inkwell-org/backend/internal/event"
	jwtpkg "github.com/inkwell-org/backend/internal/jwt"
	"github.com/inkwell-org/backend/internal/like"
	"github.com/inkwell-org/backend/internal/middleware"
	ormpkg "github.com/inkwell-org/backend/internal/orm"
)

// API is the HTTP surface of the service.
type API struct {
	log    *zap.Logger
	host   string
	port   string
	router *gin.Engine
	server *http.Server
}

func NewAPI(
	log *zap.Logger,
	jwt *jwtpkg.JWT,
	db *ormpkg.PostgresClient,
	likes *like.Engine,
	media *clientpkg.S3Client,
	cache *cachepkg.RedisClient,
	broker *eventpkg.KafkaClient,
	host string,
	port string,
) *API {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(log))
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.NewRateLimitMiddleware(5, 600))

	articleServer := articleapi.NewArticleServer(log, db, likes, cache, broker)
	commentServer := commentapi.NewCommentServer(log, db, likes, broker)
	categoryServer := categoryapi.NewCategoryServer(log, db)
	searchServer := searchapi.NewSearchServer(log, db)
	mediaServer := mediaapi.NewMediaServer(log, media)

	auth := middleware.NewAuthMiddleware(log, jwt, db)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := router.Group("/api")
	public.GET("/article", articleServer.List)
	public.GET("/article/:id", articleServer.Get)
	public.GET("/comment", commentServer.List)
	public.GET("/category", categoryServer.List)
	public.GET("/search", searchServer.Search)

	authed := router.Group("/api", auth)
	authed.POST("/article", articleServer.Create)
	authed.DELETE("/article", articleServer.Delete)
	authed.POST("/article/like", articleServer.Like)
	authed.POST("/comment", commentServer.Create)
	authed.DELETE("/comment", commentServer.Delete)
	authed.POST("/comment/like", commentServer.Like)
	authed.POST("/category", categoryServer.Create)
	authed.DELETE("/category", categoryServer.Delete)
	authed.POST("/media", mediaServer.Upload)

	return &API{
		log:    log,
		host:   host,
		port:   port,
		router: router,
	}
}

// Router exposes the gin engine for tests.
func (a *API) Router() *gin.Engine {
	return a.router
}

func (a *API) Start() error {
	a.server = &http.Server{
		Addr:    net.JoinHostPort(a.host, a.port),
		Handler: a.router,
	}
	a.log.Info("starting http server", zap.String("addr", a.server.Addr))

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("http server exited", zap.Error(err))
		}
	}()
	return nil
}

func (a *API) Stop(ctx context.Context) error {
	a.log.Info("stopping http server")
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
