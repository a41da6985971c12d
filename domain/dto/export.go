package dto

import (
	"time"

	"github.com/google/uuid"
)

// === Requests ===

// StartExportRequest เริ่ม export session เป็นวิดีโอไฟล์เดียว
type StartExportRequest struct {
	SessionID       uuid.UUID `json:"sessionId" validate:"required"`
	IncludeIntro    bool      `json:"includeIntro"`
	IncludeOutro    bool      `json:"includeOutro"`
	BackgroundMusic string    `json:"backgroundMusic" validate:"omitempty,max=100"`
}

// === Responses ===

type ExportJobResponse struct {
	ID          uuid.UUID  `json:"id"`
	SessionID   uuid.UUID  `json:"sessionId"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	DownloadURL string     `json:"downloadUrl,omitempty"`
	Error       string     `json:"error,omitempty"`
	StartTime   time.Time  `json:"startTime"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
