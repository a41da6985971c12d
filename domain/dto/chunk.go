package dto

import (
	"github.com/google/uuid"
)

// === Requests ===

// UpdateChunkRequest partial update — nil field = ไม่แก้
type UpdateChunkRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=255"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

// ReorderChunksRequest ลำดับใหม่ทั้งหมดของ chunks ใน session
type ReorderChunksRequest struct {
	ChunkIDs []uuid.UUID `json:"chunkIds" validate:"required,min=1"`
}

// === Responses ===

type ChunkResponse struct {
	ID       uuid.UUID       `json:"id"`
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	Order    int             `json:"order"`
	Status   string          `json:"status"`
	Script   *ScriptResponse `json:"script,omitempty"`
	VideoURL string          `json:"videoUrl,omitempty"`
}
