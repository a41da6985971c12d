package dto

import (
	"time"

	"github.com/google/uuid"
)

// === Requests ===

// GenerateVideoRequest ส่ง script เข้า video provider — script ต้อง ready แล้ว
type GenerateVideoRequest struct {
	ChunkID         uuid.UUID `json:"chunkId" validate:"required"`
	Script          string    `json:"script" validate:"required,min=1"`
	CameraDirection string    `json:"camera_direction" validate:"omitempty"`
	Environment     string    `json:"environment" validate:"omitempty"`
	Duration        int       `json:"duration" validate:"omitempty,min=1,max=60"`
}

// === Responses ===

type VideoJobResponse struct {
	ID        uuid.UUID `json:"id"`
	ChunkID   uuid.UUID `json:"chunkId"`
	Status    string    `json:"status"`
	Progress  int       `json:"progress"`
	VideoURL  string    `json:"videoUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
