package server

import (
	"strings"
	"time"

	"titlerate/backend/internal/config"
	"titlerate/backend/internal/middleware"
	"titlerate/backend/internal/token"
	"titlerate/backend/pkg/mailer"

	adminHttp "titlerate/backend/internal/modules/admin/delivery/http"
	adminService "titlerate/backend/internal/modules/admin/service"

	categoryHttp "titlerate/backend/internal/modules/category/delivery/http"
	categoryRepo "titlerate/backend/internal/modules/category/repository"
	categoryService "titlerate/backend/internal/modules/category/service"

	commentHttp "titlerate/backend/internal/modules/comment/delivery/http"
	commentRepo "titlerate/backend/internal/modules/comment/repository"
	commentService "titlerate/backend/internal/modules/comment/service"

	genreHttp "titlerate/backend/internal/modules/genre/delivery/http"
	genreRepo "titlerate/backend/internal/modules/genre/repository"
	genreService "titlerate/backend/internal/modules/genre/service"

	profileHttp "titlerate/backend/internal/modules/profile/delivery/http"
	profileService "titlerate/backend/internal/modules/profile/service"

	reviewHttp "titlerate/backend/internal/modules/review/delivery/http"
	reviewRepo "titlerate/backend/internal/modules/review/repository"
	reviewService "titlerate/backend/internal/modules/review/service"

	titleHttp "titlerate/backend/internal/modules/title/delivery/http"
	titleRepo "titlerate/backend/internal/modules/title/repository"
	titleService "titlerate/backend/internal/modules/title/service"

	userHttp "titlerate/backend/internal/modules/user/delivery/http"
	userRepo "titlerate/backend/internal/modules/user/repository"
	userService "titlerate/backend/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, sink mailer.Sink) *Server {
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	codes := userService.NewRandomCodeSource()

	users := userRepo.NewUserRepository(db)

	authSvc := userService.NewAuthService(users, sink, tokens, codes, redisClient, cfg.RateLimitSignup)
	authHandler := userHttp.NewAuthHandler(authSvc)

	profileSvc := profileService.NewProfileService(users)
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	adminSvc := adminService.NewAdminService(users, sink, codes)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	categories := categoryRepo.NewCategoryRepository(db)
	categorySvc := categoryService.NewCategoryService(categories)
	categoryHandler := categoryHttp.NewCategoryHandler(categorySvc)

	genres := genreRepo.NewGenreRepository(db)
	genreSvc := genreService.NewGenreService(genres)
	genreHandler := genreHttp.NewGenreHandler(genreSvc)

	titles := titleRepo.NewTitleRepository(db)
	titleSvc := titleService.NewTitleService(titles, genres, categories)
	titleHandler := titleHttp.NewTitleHandler(titleSvc)

	reviews := reviewRepo.NewReviewRepository(db)
	reviewSvc := reviewService.NewReviewService(reviews, titles, redisClient, cfg.RateLimitReview)
	reviewHandler := reviewHttp.NewReviewHandler(reviewSvc)

	comments := commentRepo.NewCommentRepository(db)
	commentSvc := commentService.NewCommentService(comments, reviews)
	commentHandler := commentHttp.NewCommentHandler(commentSvc)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	setupCORS(router, cfg)

	authMiddleware := middleware.NewAuthMiddleware(users, tokens)

	api := router.Group("/api/v1")

	// Sign-up and token exchange are the only unauthenticated writes.
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.SignUp)
		auth.POST("/token", authHandler.ExchangeToken)
	}

	// Identity management
	usersGroup := api.Group("/users")
	usersGroup.Use(authMiddleware.RequireAuth())
	{
		usersGroup.GET("/me", profileHandler.GetMe)
		usersGroup.PATCH("/me", profileHandler.UpdateMe)

		adminUsers := usersGroup.Group("")
		adminUsers.Use(authMiddleware.RequireAdmin())
		{
			adminUsers.GET("", adminHandler.ListUsers)
			adminUsers.POST("", adminHandler.CreateUser)
			adminUsers.GET("/:username", adminHandler.GetUser)
			adminUsers.PATCH("/:username", adminHandler.UpdateUser)
			adminUsers.DELETE("/:username", adminHandler.DeleteUser)
		}
	}

	// Open reads resolve the identity when a token is present so anonymous
	// and authenticated clients share one code path.
	public := api.Group("")
	public.Use(authMiddleware.OptionalAuth())

	// Vocabularies: read open, write admin-only
	public.GET("/categories", categoryHandler.GetAllCategories)
	public.GET("/genres", genreHandler.GetAllGenres)

	adminVocab := api.Group("")
	adminVocab.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
	{
		adminVocab.POST("/categories", categoryHandler.CreateCategory)
		adminVocab.DELETE("/categories/:slug", categoryHandler.DeleteCategory)
		adminVocab.POST("/genres", genreHandler.CreateGenre)
		adminVocab.DELETE("/genres/:slug", genreHandler.DeleteGenre)
	}

	// Titles: read open, write admin-only
	public.GET("/titles", titleHandler.GetAllTitles)
	public.GET("/titles/:title_id", titleHandler.GetTitle)

	adminTitles := api.Group("/titles")
	adminTitles.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
	{
		adminTitles.POST("", titleHandler.CreateTitle)
		adminTitles.PATCH("/:title_id", titleHandler.UpdateTitle)
		adminTitles.DELETE("/:title_id", titleHandler.DeleteTitle)
	}

	// Reviews and comments: read open, write authenticated; ownership and
	// moderation checks live in the services.
	public.GET("/titles/:title_id/reviews", reviewHandler.GetReviewsByTitle)
	public.GET("/titles/:title_id/reviews/:review_id", reviewHandler.GetReview)
	public.GET("/titles/:title_id/reviews/:review_id/comments", commentHandler.GetCommentsByReview)
	public.GET("/titles/:title_id/reviews/:review_id/comments/:comment_id", commentHandler.GetComment)

	authed := api.Group("/titles")
	authed.Use(authMiddleware.RequireAuth())
	{
		authed.POST("/:title_id/reviews", reviewHandler.CreateReview)
		authed.PATCH("/:title_id/reviews/:review_id", reviewHandler.UpdateReview)
		authed.DELETE("/:title_id/reviews/:review_id", reviewHandler.DeleteReview)

		authed.POST("/:title_id/reviews/:review_id/comments", commentHandler.CreateComment)
		authed.PATCH("/:title_id/reviews/:review_id/comments/:comment_id", commentHandler.UpdateComment)
		authed.DELETE("/:title_id/reviews/:review_id/comments/:comment_id", commentHandler.DeleteComment)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	var origins []string
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
