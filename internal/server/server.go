package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/openlearn/course-library/internal/config"
	"github.com/openlearn/course-library/internal/middleware"
	"github.com/openlearn/course-library/internal/token"
	"github.com/openlearn/course-library/pkg/ratelimiter"

	commentHttp "github.com/openlearn/course-library/internal/modules/comment/delivery/http"
	commentRepo "github.com/openlearn/course-library/internal/modules/comment/repository"
	commentService "github.com/openlearn/course-library/internal/modules/comment/service"

	courseHttp "github.com/openlearn/course-library/internal/modules/course/delivery/http"
	courseRepo "github.com/openlearn/course-library/internal/modules/course/repository"
	courseService "github.com/openlearn/course-library/internal/modules/course/service"

	resourceHttp "github.com/openlearn/course-library/internal/modules/resource/delivery/http"
	resourceRepo "github.com/openlearn/course-library/internal/modules/resource/repository"
	resourceService "github.com/openlearn/course-library/internal/modules/resource/service"

	userHttp "github.com/openlearn/course-library/internal/modules/user/delivery/http"
	userRepo "github.com/openlearn/course-library/internal/modules/user/repository"
	userService "github.com/openlearn/course-library/internal/modules/user/service"
)

type Server struct {
	engine *gin.Engine
	db     *gorm.DB
}

// New wires the whole application. Construction order matters: middleware and
// shared services first, then module wiring, then routes.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	limiter := ratelimiter.New(redisClient)

	users := userRepo.NewUserRepository(db)
	authSvc := userService.NewAuthService(users, tokens, limiter, cfg.LoginMaxAttempts, cfg.LoginWindow)
	authHandler := userHttp.NewAuthHandler(authSvc, cfg.CookieSecure)

	courses := courseRepo.NewCourseRepository(db)
	courseSvc := courseService.NewCourseService(courses)
	courseHandler := courseHttp.NewCourseHandler(courseSvc)

	resources := resourceRepo.NewResourceRepository(db)
	resourceSvc := resourceService.NewResourceService(resources, courses)
	resourceHandler := resourceHttp.NewResourceHandler(resourceSvc)

	comments := commentRepo.NewCommentRepository(db)
	commentSvc := commentService.NewCommentService(comments, courses, users, limiter, cfg.CommentCooldown)
	commentHandler := commentHttp.NewCommentHandler(commentSvc)

	router := gin.New()
	setupCORS(router, cfg.AllowedOrigins)
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(tokens)

	s := &Server{engine: router, db: db}

	router.GET("/health", s.health)

	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", authMiddleware.RequireAuth(), authHandler.Me)
	}

	// Read-only catalog routes are open to anonymous callers.
	router.GET("/courses", authMiddleware.OptionalAuth(), courseHandler.List)
	router.GET("/courses/:id", authMiddleware.OptionalAuth(), courseHandler.Get)

	protected := router.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/courses", courseHandler.Create)
		protected.PUT("/courses/:id", courseHandler.Update)
		protected.DELETE("/courses/:id", courseHandler.Delete)

		protected.POST("/courses/:id/resources", resourceHandler.Create)
		protected.DELETE("/resources/:id", resourceHandler.Delete)

		protected.POST("/courses/:id/comments", commentHandler.Create)
		protected.DELETE("/comments/:id", commentHandler.Delete)
	}

	// Single-page frontend.
	router.StaticFile("/", "./web/index.html")
	router.StaticFile("/app.js", "./web/app.js")
	router.StaticFile("/styles.css", "./web/styles.css")

	return s
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) health(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	origins := splitOrigins(allowedOrigins)
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

// splitOrigins parses a comma-separated origin list, tolerating whitespace
// around the entries.
func splitOrigins(value string) []string {
	var origins []string
	for _, origin := range strings.Split(value, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
