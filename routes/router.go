package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cppla/socialapi/config"
	"github.com/cppla/socialapi/controllers"
	"github.com/cppla/socialapi/middleware"
	"github.com/cppla/socialapi/services"
	"github.com/cppla/socialapi/session"
	"github.com/cppla/socialapi/store"
	"github.com/cppla/socialapi/utils"
)

// SetupRouter wires routes, middlewares, and controllers. cache may be nil.
func SetupRouter(db *gorm.DB, sessions session.Store, cache *utils.Cache) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
	utils.RegisterValidators()

	r := gin.New()
	r.Use(utils.RequestID())
	accessLog := zap.NewNop()
	if gin.Mode() != gin.TestMode {
		// Replace default console logger with file-based zap logger
		gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg)
		if err != nil {
			utils.Sugar.Warnf("gin access log disabled: %v", err)
		} else {
			accessLog = gl
		}
	}
	r.Use(utils.Ginzap(accessLog, time.RFC3339, true))
	r.Use(utils.RecoveryWithZap(utils.Logger, true))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", cfg.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", utils.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := store.NewUsers(db)
	posts := store.NewPosts(db)
	comments := store.NewComments(db)
	likes := store.NewLikes(db)

	gate := middleware.NewGate(sessions, cfg.SessionHeader)
	guard := services.NewGuard(posts, comments)
	authService := services.NewAuthService(users, sessions, utils.NewBcryptHasher(cfg.BcryptCost))
	postService := services.NewPostService(posts, comments, likes, guard)
	commentService := services.NewCommentService(posts, comments, guard)
	ledger := services.NewLikeLedger(posts, likes)

	userController := controllers.NewUserController(authService, gate)
	postController := controllers.NewPostController(postService, ledger, cache)
	commentController := controllers.NewCommentController(commentService, cache)

	api := r.Group("/api/v1")

	usersGroup := api.Group("/users")
	usersGroup.POST("/register", userController.Register)
	usersGroup.POST("/login", userController.Login)
	usersGroup.POST("/logout", userController.Logout)
	usersGroup.GET("", userController.ListUsers)
	usersGroup.GET("/me", gate.Required(), userController.Me)

	postsGroup := api.Group("/posts")
	postsGroup.GET("", postController.ListPosts)
	postsGroup.GET("/:id", postController.GetPost)
	postsGroup.GET("/:id/likes", postController.ListLikers)
	postsGroup.GET("/by-user/:username", postController.ListUserPosts)

	commentsGroup := api.Group("/comments")
	commentsGroup.GET("/by-post/:postId", commentController.ListPostComments)
	commentsGroup.GET("/by-user/:username", commentController.ListUserComments)

	protected := api.Group("")
	protected.Use(gate.Required())
	protected.POST("/posts", postController.CreatePost)
	protected.PUT("/posts/:id", postController.UpdatePost)
	protected.DELETE("/posts/:id", postController.DeletePost)
	protected.POST("/posts/:id/like", postController.LikePost)
	protected.DELETE("/posts/:id/like", postController.UnlikePost)
	protected.POST("/comments", commentController.AddComment)
	protected.PUT("/comments/:id", commentController.UpdateComment)
	protected.DELETE("/comments/:id", commentController.DeleteComment)

	r.NoRoute(utils.RouteNotFound)

	return r
}
