package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"hlsbot/config"
	"hlsbot/ffmpeg"
	"hlsbot/handlers"
	"hlsbot/notify"
	"hlsbot/pipeline"
	"hlsbot/preview"
	"hlsbot/rclone"
	"hlsbot/telegram"
	"hlsbot/translate"
)

func main() {

	// .env is optional; deployments may set the environment directly
	_ = godotenv.Load()

	initLogger()

	if err := config.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	ffmpeg.Init(log)
	preview.Init(log)
	rclone.Init(log)
	pipeline.Init(log)
	telegram.Init(log)
	if err := handlers.Init(log, submitJob); err != nil {
		log.Fatalf("handlers: %v", err)
	}

	publicBase, _ := config.GetPublicBaseURL()
	catalog, _ := config.GetCatalogEndpoint()
	image, _ := config.GetImageEndpoint()
	threads, _ := config.GetThreadsCount()

	if err := os.MkdirAll(config.GetStagingDir(), 0o755); err != nil {
		log.Fatalf("failed to create staging dir %s: %v", config.GetStagingDir(), err)
	}
	if err := os.MkdirAll(config.GetDownloadDir(), 0o755); err != nil {
		log.Fatalf("failed to create download dir %s: %v", config.GetDownloadDir(), err)
	}

	processor = &pipeline.Processor{
		Notifier:        notify.Log{Logger: log},
		Translator:      translate.Client{Endpoint: config.GetTranslateEndpoint()},
		Uploader:        rclone.Uploader{Remote: config.GetRcloneRemote()},
		StagingDir:      config.GetStagingDir(),
		PublicBaseURL:   publicBase,
		CatalogEndpoint: catalog,
		ImageEndpoint:   image,
		Threads:         threads,
		Policy:          pipeline.DefaultPolicy(),
	}

	// the chat transport is optional; without a token the HTTP surface is
	// the only way in
	var bot *telegram.Bot
	if token := config.GetTelegramToken(); token != "" {
		bot = telegram.New(token, config.GetTelegramAPIURL())
		processor.Notifier = bot
	}

	// one worker: the encoder, rewriter, and uploader share the staging
	// tree and must never overlap
	go jobWorker()

	c := cron.New()
	if _, err := c.AddFunc("@hourly", cleanupStaging); err != nil {
		log.Fatalf("cron: %v", err)
	}
	c.Start()

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/healthz", handlers.HealthGet)
	e.GET("/status", handlers.StatusGet)
	e.POST("/process", handlers.ProcessPost)

	// local preview of staged playlists before they land on the remote
	hlsGroup := e.Group("/hls")
	hlsGroup.Static("/", config.GetStagingDir())

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		return e.Start(config.GetListenAddr())
	})
	if bot != nil {
		poller := &telegram.Poller{
			Bot:         bot,
			DownloadDir: config.GetDownloadDir(),
			Submit:      submitChatJob,
		}
		g.Go(func() error {
			return poller.Run(ctx)
		})
	}
	log.Fatal(g.Wait())
}
