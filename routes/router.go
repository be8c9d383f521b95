package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kvboard/config"
	"kvboard/controllers"
	"kvboard/kv"
	"kvboard/middleware"
	"kvboard/store"
	"kvboard/utils"
)

// SetupRouter wires routes, middlewares, and controllers over the given
// key-value substrate.
func SetupRouter(kvs kv.Store) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(utils.GinLogger())
	r.Use(utils.GinRecovery())
	r.Use(middleware.MetricsRecorder())

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", middleware.AdminTokenHeader},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	postIndex := store.NewPostIndex(kvs)
	blobs := store.NewBlobs(kvs, postIndex)
	posts := store.NewPosts(kvs, postIndex, blobs)
	moderation := store.NewModeration(kvs)
	auth := store.NewAuth(kvs, cfg.AdminPassword)

	board := controllers.NewBoardController(posts, blobs, moderation, auth)
	admin := controllers.NewAdminController(posts, moderation, auth)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	api.GET("", board.Status)
	api.GET("/status", board.Status)
	api.POST("/login", middleware.RateLimitMiddleware(), board.Login)

	api.GET("/posts", board.ListPosts)
	api.GET("/posts/:id", board.GetPost)
	api.GET("/file/:key", board.ServeFile)

	// Reactions are maintenance gated only; the original never ban-gated them.
	reactions := api.Group("/posts/:id")
	reactions.Use(middleware.RateLimitMiddleware(), middleware.MaintenanceGate(auth))
	reactions.POST("/like", board.Like)
	reactions.POST("/dislike", board.Dislike)

	submissions := api.Group("")
	submissions.Use(middleware.RateLimitMiddleware(), middleware.MaintenanceGate(auth), middleware.BanGate(auth, moderation))
	submissions.POST("/posts/:id/comment", board.Comment)
	submissions.POST("/posts/:id/report", board.Report)
	submissions.POST("/upload", board.Upload)

	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AdminRequired(auth))
	adminGroup.GET("/status", admin.Status)
	adminGroup.GET("/posts", admin.Posts)
	adminGroup.DELETE("/posts/:id", admin.DeletePost)
	adminGroup.GET("/posts/:id/details", admin.PostDetails)
	adminGroup.GET("/posts/:id/comments/:cid/details", admin.CommentDetails)
	adminGroup.GET("/reports", admin.Reports)
	adminGroup.POST("/reports/:id/ignore", admin.IgnoreReport)
	adminGroup.GET("/bans", admin.Bans)
	adminGroup.POST("/ban", admin.Ban)
	adminGroup.POST("/unban", admin.Unban)
	adminGroup.POST("/maintenance", admin.SetMaintenance)

	return r
}
