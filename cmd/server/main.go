package main

import (
	"context"
	"os"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/zihui-app/zihui/internal/config"
	"github.com/zihui-app/zihui/internal/entity"
	characterRepo "github.com/zihui-app/zihui/internal/modules/character/repository"
	"github.com/zihui-app/zihui/internal/search"
	"github.com/zihui-app/zihui/internal/server"
	"github.com/zihui-app/zihui/pkg/database"
	"github.com/zihui-app/zihui/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", logger.ErrorField(err))
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})
	defer logger.Sync()

	db := database.Connect()
	if err := migrate(db); err != nil {
		logger.Error("migration failed", logger.ErrorField(err))
		os.Exit(1)
	}

	redisClient := connectRedis(cfg)
	catalogIndex := connectSearch(cfg, db)

	srv := server.NewServer(db, redisClient, catalogIndex)

	logger.Info("server starting", logger.String("port", cfg.Port), logger.String("env", cfg.AppEnv))
	if err := srv.Run(":" + cfg.Port); err != nil {
		logger.Error("server exited with error", logger.ErrorField(err))
		os.Exit(1)
	}
}

func migrate(db *gorm.DB) error {
	// The character catalog itself is populated by the offline import
	// pipeline; migration only guarantees the schema.
	return db.AutoMigrate(
		&entity.User{},
		&entity.UserSettings{},
		&entity.CharacterProgress{},
		&entity.Character{},
	)
}

// connectRedis returns nil when no Redis is configured or reachable; the
// character cache simply stays disabled.
func connectRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn("invalid REDIS_URL, continuing without cache", logger.ErrorField(err))
		return nil
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis unreachable, continuing without cache", logger.ErrorField(err))
		return nil
	}

	logger.Info("redis connected")
	return client
}

// connectSearch wires the optional Meilisearch catalog index and pushes
// the seeded catalog into it in the background.
func connectSearch(cfg *config.Config, db *gorm.DB) search.CatalogIndex {
	if cfg.MeiliSearchHost == "" {
		return nil
	}

	host := cfg.MeiliSearchHost
	if !strings.HasPrefix(host, "http") {
		host = "http://" + host + ":7700"
	}

	client := meilisearch.New(host, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	catalogIndex := search.NewMeiliCatalogIndex(client)

	go func() {
		characters, err := characterRepo.NewCharacterRepository(db).FindAll(context.Background())
		if err != nil {
			logger.Warn("failed to load catalog for search indexing", logger.ErrorField(err))
			return
		}
		if err := catalogIndex.SyncCharacters(characters); err != nil {
			logger.Warn("failed to push catalog to search index", logger.ErrorField(err))
		}
	}()

	return catalogIndex
}
