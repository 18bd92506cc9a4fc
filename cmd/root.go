package cmd

import (
	"os"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/creatorlens/backend/core/config"
	"github.com/creatorlens/backend/core/database"
	domainCache "github.com/creatorlens/backend/domains/cache"
	domainCollection "github.com/creatorlens/backend/domains/collection"
	domainHealth "github.com/creatorlens/backend/domains/health"
	"github.com/creatorlens/backend/domains/media"
	"github.com/creatorlens/backend/infrastructure/cachestore"
	"github.com/creatorlens/backend/infrastructure/valkey"
	"github.com/creatorlens/backend/integrations/gemini"
	"github.com/creatorlens/backend/integrations/huggingface"
	"github.com/creatorlens/backend/integrations/serpapi"
	"github.com/creatorlens/backend/pkg/fetcher"
	"github.com/creatorlens/backend/pkg/utils"
	"github.com/creatorlens/backend/repository"
	"github.com/creatorlens/backend/usecase"
)

var (
	appConfig *config.Config

	db           *gorm.DB
	valkeyClient *valkey.Client
	cacheStore   domainCache.Store

	searchUsecase     media.ISearchUsecase
	thumbnailUsecase  media.IThumbnailUsecase
	collectionUsecase domainCollection.ICollectionUsecase
	cacheAdminUsecase usecase.ICacheAdminUsecase
	healthUsecase     domainHealth.IHealthUsecase
)

var rootCmd = &cobra.Command{
	Use:   "creatorlens",
	Short: "Media search and AI thumbnail generation backend",
	Long:  `CreatorLens aggregates video/image search results and generates AI thumbnails, fronted by a cache layer.`,
}

func init() {
	utils.LoadConfig(".")

	time.Local = time.UTC
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	cobra.OnInitialize(initApp)
}

func initApp() {
	var err error
	appConfig, err = config.LoadConfig()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	if appConfig.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := os.MkdirAll(appConfig.Paths.Storages, 0755); err != nil {
		logrus.Fatalf("failed to create storage directory: %v", err)
	}

	// Cache store: Valkey when enabled, in-process map otherwise. The app
	// works either way; Valkey only makes repeated reads cheaper.
	if appConfig.Database.ValkeyEnabled {
		valkeyClient, err = valkey.NewClient(valkey.Config{
			Address:   appConfig.Database.ValkeyAddress,
			Password:  appConfig.Database.ValkeyPassword,
			DB:        appConfig.Database.ValkeyDB,
			KeyPrefix: appConfig.Database.ValkeyKeyPrefix,
		})
		if err != nil {
			logrus.Warnf("[CACHE] Valkey unavailable, falling back to in-memory store: %v", err)
			cacheStore = cachestore.NewMemoryStore()
		} else {
			cacheStore = cachestore.NewValkeyStore(valkeyClient)
		}
	} else {
		cacheStore = cachestore.NewMemoryStore()
	}

	db, err = database.NewDatabase(appConfig)
	if err != nil {
		logrus.Fatalf("failed to open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	httpFetcher := fetcher.NewClient()
	serpClient := serpapi.NewClient(appConfig.Serp, httpFetcher)
	hfClient := huggingface.NewClient(appConfig.HuggingFace, httpFetcher)
	geminiClient := gemini.NewClient(appConfig.Gemini)

	// HuggingFace is the primary generation provider; Gemini covers for it
	// when no HuggingFace key is set.
	var generationProvider media.GenerationProvider = hfClient
	generateReady := hfClient.Configured()
	if !generateReady && geminiClient.Configured() {
		generationProvider = geminiClient
		generateReady = true
		logrus.Info("[HF] no HuggingFace key, using Gemini for image generation")
	}
	if !generateReady {
		logrus.Warn("[HF] no generation provider configured, thumbnail generation will fail")
	}
	if appConfig.Serp.APIKey == "" {
		logrus.Warn("[SERP] no SERP API key configured, search endpoints will fail")
	}

	invalidator := usecase.NewInvalidationCoordinator(cacheStore)
	collectionRepo := repository.NewCollectionGormRepository(db)
	thumbnailRepo := repository.NewThumbnailGormRepository(db)

	searchUsecase = usecase.NewSearchService(cacheStore, serpClient, appConfig.Cache.SearchTTL)
	collectionUsecase = usecase.NewCollectionService(collectionRepo, cacheStore, invalidator, appConfig.Cache.CollectionsTTL)
	thumbnailUsecase = usecase.NewThumbnailService(
		cacheStore, generationProvider, thumbnailRepo, collectionUsecase,
		appConfig.Cache.ThumbnailTTL,
		appConfig.HuggingFace.Width, appConfig.HuggingFace.Height,
	)
	cacheAdminUsecase = usecase.NewCacheAdminService(cacheStore)
	healthUsecase = usecase.NewHealthService(cacheStore, db, appConfig.Serp.APIKey != "", generateReady)
}

// StopApp releases the cache and database connections.
func StopApp() {
	if cacheStore != nil {
		cacheStore.Close()
	}
	if valkeyClient != nil {
		valkeyClient.Close()
	}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatalln(err)
	}
}
