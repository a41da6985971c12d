package di

import (
	"context"
	"fmt"

	"docreel/application/serviceimpl"
	"docreel/domain/ports"
	"docreel/domain/repositories"
	"docreel/domain/services"
	"docreel/infrastructure/ai"
	"docreel/infrastructure/composer"
	"docreel/infrastructure/memory"
	"docreel/infrastructure/parser"
	"docreel/infrastructure/storage"
	"docreel/infrastructure/videogen"
	"docreel/interfaces/api/handlers"
	"docreel/pkg/config"
	"docreel/pkg/logger"
	"docreel/pkg/scheduler"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	Storage      ports.StoragePort // Port/Adapter pattern
	Parser       ports.DocumentParserPort
	ScriptAI     ports.ScriptProviderPort
	VideoAI      ports.VideoProviderPort
	Composer     ports.ComposerPort
	JobScheduler scheduler.JobScheduler

	// Repositories
	SessionRepository   repositories.SessionRepository
	VideoJobRepository  repositories.VideoJobRepository
	ExportJobRepository repositories.ExportJobRepository

	// Services
	SessionService services.SessionService
	ScriptService  services.ScriptService
	VideoService   services.VideoService
	ExportService  services.ExportService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Info("Configuration loaded")
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
		"file", c.Config.Log.FilePath,
	)
	return nil
}

func (c *Container) initInfrastructure() error {
	// Document parser
	c.Parser = parser.NewDocumentParser()
	logger.Info("Document parser initialized")

	// Script provider (Gemini) — ไม่มี API key ก็ start ได้ ใช้ fallback แทน
	scriptAI, err := ai.NewGeminiProvider(context.Background(), c.Config.Script)
	if err != nil {
		return fmt.Errorf("failed to initialize script provider: %w", err)
	}
	c.ScriptAI = scriptAI
	if c.Config.Script.GeminiAPIKey == "" {
		logger.Warn("Script provider has no API key (fallback scripts only)")
	} else {
		logger.Info("Script provider initialized", "model", c.Config.Script.Model)
	}

	// Video provider (fal.ai queue) — ไม่มี API key → mock progression
	c.VideoAI = videogen.NewFalClient(c.Config.Video)
	if c.VideoAI.IsConfigured() {
		logger.Info("Video provider initialized", "model", c.Config.Video.Model)
	} else {
		logger.Warn("Video provider not configured (mock progression enabled)")
	}

	// FFmpeg composer
	ffmpegComposer, err := composer.NewFFmpegComposer(c.Config.Storage.FFmpegPath)
	if err != nil {
		return fmt.Errorf("failed to initialize composer: %w", err)
	}
	c.Composer = ffmpegComposer
	logger.Info("FFmpeg composer initialized", "path", c.Config.Storage.FFmpegPath)

	// Storage (Port/Adapter pattern)
	if err := c.initStorage(); err != nil {
		return err
	}

	return nil
}

// initStorage สร้าง storage adapter ตาม config
func (c *Container) initStorage() error {
	switch c.Config.Storage.Type {
	case "s3":
		// S3-Compatible Storage (MinIO / Cloudflare R2)
		s3Config := storage.S3StorageConfig{
			Endpoint:  c.Config.Storage.S3.Endpoint,
			AccessKey: c.Config.Storage.S3.AccessKey,
			SecretKey: c.Config.Storage.S3.SecretKey,
			Bucket:    c.Config.Storage.S3.Bucket,
			UseSSL:    c.Config.Storage.S3.UseSSL,
			Region:    c.Config.Storage.S3.Region,
			PublicURL: c.Config.Storage.S3.PublicURL,
		}
		s3Storage, err := storage.NewS3Storage(s3Config)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		c.Storage = s3Storage
		logger.Info("S3 Storage initialized",
			"endpoint", c.Config.Storage.S3.Endpoint,
			"bucket", c.Config.Storage.S3.Bucket,
		)

	default:
		localConfig := storage.LocalStorageConfig{
			BasePath: c.Config.Storage.BasePath,
			BaseURL:  c.Config.Storage.BaseURL,
		}
		localStorage, err := storage.NewLocalStorage(localConfig)
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
		c.Storage = localStorage
		logger.Info("Local Storage initialized", "path", c.Config.Storage.BasePath)
	}

	return nil
}

func (c *Container) initRepositories() error {
	c.SessionRepository = memory.NewSessionRepository()
	c.VideoJobRepository = memory.NewVideoJobRepository()
	c.ExportJobRepository = memory.NewExportJobRepository()
	logger.Info("In-memory repositories initialized")
	return nil
}

func (c *Container) initServices() error {
	c.SessionService = serviceimpl.NewSessionService(c.SessionRepository, c.Parser)
	c.ScriptService = serviceimpl.NewScriptService(c.SessionRepository, c.ScriptAI, c.Config.Script.Timeout)
	c.VideoService = serviceimpl.NewVideoService(c.SessionRepository, c.VideoJobRepository, c.VideoAI, c.Config.Video.DefaultDuration)
	logger.Info("Core services initialized")
	return nil
}

func (c *Container) initScheduler() error {
	c.JobScheduler = scheduler.NewJobScheduler()
	c.JobScheduler.Start()
	logger.Info("Job scheduler started")

	// ExportService ต้องการ scheduler สำหรับ retention sweep
	c.ExportService = serviceimpl.NewExportService(
		c.SessionRepository,
		c.ExportJobRepository,
		c.VideoAI,
		c.Composer,
		c.Storage,
		c.JobScheduler,
		c.Config.Export,
	)

	if err := c.ExportService.RegisterRetentionJob(); err != nil {
		logger.Warn("Failed to register retention sweep", "error", err)
		return nil
	}
	logger.Info("Retention sweep scheduled",
		"cron", c.Config.Export.SweepCron,
		"window", c.Config.Export.RetentionWindow.String(),
	)
	return nil
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	// Stop scheduler
	if c.JobScheduler != nil {
		if c.JobScheduler.IsRunning() {
			c.JobScheduler.Stop()
			logger.Info("Job scheduler stopped")
		}
	}

	logger.Info("Cleanup completed")
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		SessionService: c.SessionService,
		ScriptService:  c.ScriptService,
		VideoService:   c.VideoService,
		ExportService:  c.ExportService,
		UploadConfig:   c.Config.Upload,
	}
}
