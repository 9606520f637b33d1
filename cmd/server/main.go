package main

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	"github.com/AlazarStudio/kchr-tourism-backend/config"
	"github.com/AlazarStudio/kchr-tourism-backend/content"
	"github.com/AlazarStudio/kchr-tourism-backend/filestore"
	"github.com/AlazarStudio/kchr-tourism-backend/server"
	"github.com/AlazarStudio/kchr-tourism-backend/telegram"
	"github.com/AlazarStudio/kchr-tourism-backend/utils"
	"github.com/AlazarStudio/kchr-tourism-backend/utils/dotenv"
	Logger "github.com/AlazarStudio/kchr-tourism-backend/utils/log"
)

func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		Logger.Log.Fatal("configuration error: ", err)
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Env,
			Debug:       cfg.Debug,
		}); err != nil {
			Logger.Log.Fatal("sentry.Init: ", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	db, err := utils.GetDBConnection(cfg.DSN())
	if err != nil {
		Logger.Log.Fatal("cannot connect to DB: ", err)
	}
	if err := utils.DatabaseSetupAndMigration(db); err != nil {
		Logger.Log.Fatal("cannot migrate DB: ", err)
	}

	store := content.NewStore(db)

	bot, err := telegram.NewBot(cfg.BotToken, cfg.Debug)
	if err != nil {
		Logger.Log.Fatal("cannot create telegram bot: ", err)
	}

	files, localDir, err := buildFileStore(cfg)
	if err != nil {
		Logger.Log.Fatal("cannot set up file store: ", err)
	}
	defer files.CleanUp()

	pipeline := telegram.NewPipeline(bot, files, store, cfg.ChatID)
	handlers := server.NewHandlers(store, pipeline, files, cfg.NewsTag, cfg.StoriesTag)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := server.NewRouter(handlers, localDir)

	if cfg.TLSEnabled() {
		Logger.Log.Infof("server starts up with TLS on port %s", cfg.TLSPort)
		if err := router.RunTLS(":"+cfg.TLSPort, cfg.TLSCert, cfg.TLSKey); err != nil {
			Logger.Log.Fatal("server stopped: ", err)
		}
		return
	}

	Logger.Log.Infof("server starts up on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		Logger.Log.Fatal("server stopped: ", err)
	}
}

// buildFileStore picks S3 when a bucket is configured, local disk otherwise.
// The returned dir is non-empty only for local storage and mounts the static
// /uploads route.
func buildFileStore(cfg *config.Config) (filestore.CollectedFileStore, string, error) {
	if cfg.S3Bucket != "" {
		prefix := cfg.S3URLPrefix
		if prefix == "" {
			prefix = fmt.Sprintf("https://%s.s3.amazonaws.com", cfg.S3Bucket)
		}
		s3Store, err := filestore.NewS3FileStore(cfg.S3Bucket, cfg.S3Region, prefix)
		return s3Store, "", err
	}

	localStore, err := filestore.NewLocalFileStore(cfg.UploadsDir)
	if err != nil {
		return nil, "", err
	}
	return localStore, localStore.Dir(), nil
}
