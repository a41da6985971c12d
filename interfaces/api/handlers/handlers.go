package handlers

import (
	"docreel/domain/services"
	"docreel/pkg/config"
)

// Services contains all the services needed for handlers
type Services struct {
	SessionService services.SessionService
	ScriptService  services.ScriptService
	VideoService   services.VideoService
	ExportService  services.ExportService
	UploadConfig   config.UploadConfig
}

// Handlers contains all HTTP handlers
type Handlers struct {
	UploadHandler *UploadHandler
	ChunkHandler  *ChunkHandler
	ScriptHandler *ScriptHandler
	VideoHandler  *VideoHandler
	ExportHandler *ExportHandler
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		UploadHandler: NewUploadHandler(services.SessionService, services.UploadConfig),
		ChunkHandler:  NewChunkHandler(services.SessionService),
		ScriptHandler: NewScriptHandler(services.ScriptService),
		VideoHandler:  NewVideoHandler(services.VideoService),
		ExportHandler: NewExportHandler(services.ExportService),
	}
}
