package dto

import (
	"time"

	"github.com/google/uuid"
)

// === Requests ===

// UploadTextRequest สร้าง session จาก raw text (ไม่ต้องแนบไฟล์)
type UploadTextRequest struct {
	FileName string `json:"fileName" validate:"omitempty,max=255"`
	Text     string `json:"text" validate:"required,min=1"`
}

// === Responses ===

type SessionResponse struct {
	ID        uuid.UUID        `json:"id"`
	FileName  string           `json:"fileName"`
	Status    string           `json:"status"`
	Chunks    []*ChunkResponse `json:"chunks"`
	CreatedAt time.Time        `json:"createdAt"`
}
