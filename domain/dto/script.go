package dto

import (
	"github.com/google/uuid"
)

// === Requests ===

// GenerateScriptRequest สั่ง generate script ให้ chunk หนึ่งตัว
// Content ส่งมาด้วยเพื่อให้แก้ text ใน editor แล้ว generate ได้เลยโดยไม่ต้อง save ก่อน
type GenerateScriptRequest struct {
	ChunkID uuid.UUID `json:"chunkId" validate:"required"`
	Content string    `json:"content" validate:"required,min=1"`
}

// UpdateScriptRequest เขียนทับ script ทั้งก้อนด้วยมือ
type UpdateScriptRequest struct {
	Title           string   `json:"title" validate:"required,max=255"`
	ScriptChunks    []string `json:"script_chunks" validate:"required,min=1,dive,max=213"`
	CameraDirection string   `json:"camera_direction" validate:"required"`
	Environment     string   `json:"environment" validate:"required"`
}

// === Responses ===

type ScriptResponse struct {
	Title           string   `json:"title"`
	ScriptChunks    []string `json:"script_chunks"`
	CameraDirection string   `json:"camera_direction"`
	Environment     string   `json:"environment"`
}
