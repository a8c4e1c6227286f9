package server

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/zihui-app/zihui/internal/middleware"
	"github.com/zihui-app/zihui/internal/search"

	characterHttp "github.com/zihui-app/zihui/internal/modules/character/delivery/http"
	characterRepo "github.com/zihui-app/zihui/internal/modules/character/repository"
	characterService "github.com/zihui-app/zihui/internal/modules/character/service"

	progressHttp "github.com/zihui-app/zihui/internal/modules/progress/delivery/http"
	progressRepo "github.com/zihui-app/zihui/internal/modules/progress/repository"
	progressService "github.com/zihui-app/zihui/internal/modules/progress/service"

	quizHttp "github.com/zihui-app/zihui/internal/modules/quiz/delivery/http"
	quizService "github.com/zihui-app/zihui/internal/modules/quiz/service"

	settingsHttp "github.com/zihui-app/zihui/internal/modules/settings/delivery/http"
	settingsRepo "github.com/zihui-app/zihui/internal/modules/settings/repository"
	settingsService "github.com/zihui-app/zihui/internal/modules/settings/service"

	userHttp "github.com/zihui-app/zihui/internal/modules/user/delivery/http"
	userRepo "github.com/zihui-app/zihui/internal/modules/user/repository"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client, catalogIndex search.CatalogIndex) *Server {
	userRepository := userRepo.NewUserRepository(db)
	userHandler := userHttp.NewUserHandler(userRepository)

	settingsRepository := settingsRepo.NewSettingsRepository(db)
	settingsSvc := settingsService.NewSettingsService(settingsRepository, userRepository)
	settingsHandler := settingsHttp.NewSettingsHandler(settingsSvc)

	progressRepository := progressRepo.NewProgressRepository(db)
	progressSvc := progressService.NewProgressService(progressRepository, userRepository)
	progressHandler := progressHttp.NewProgressHandler(progressSvc)

	characterRepository := characterRepo.NewCharacterRepository(db)
	characterSvc := characterService.NewCharacterService(characterRepository, progressRepository, catalogIndex, redisClient)
	characterHandler := characterHttp.NewCharacterHandler(characterSvc)

	quizSvc := quizService.NewQuizService(characterSvc)
	quizHandler := quizHttp.NewQuizHandler(quizSvc)

	router := gin.New()

	setupCORS(router)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware()

	api := router.Group("/api")
	api.Use(authMiddleware.RequireAuth())
	{
		api.GET("/auth/user", userHandler.GetCurrentUser)
		api.POST("/auth/user", userHandler.SyncCurrentUser)

		api.GET("/settings", settingsHandler.GetSettings)
		api.PATCH("/settings", settingsHandler.UpdateSettings)

		// Literal character routes must be registered before the generic
		// :index route.
		api.GET("/characters/search", characterHandler.SearchCharacters)
		api.GET("/characters/filtered", characterHandler.GetFilteredCharacters)
		api.GET("/characters/range/:start/:count", characterHandler.GetCharacterRange)
		api.GET("/characters/:index", characterHandler.GetCharacter)

		api.GET("/progress/batch", progressHandler.GetProgressBatch)
		api.GET("/progress/range/:start/:count", progressHandler.GetProgressRange)
		api.GET("/progress/:characterIndex", progressHandler.GetProgress)
		api.POST("/progress", progressHandler.UpsertProgress)

		api.POST("/quiz/grade", quizHandler.GradeAnswer)
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

func setupCORS(router *gin.Engine) {
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
