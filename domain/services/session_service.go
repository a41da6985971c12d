package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"docreel/domain/models"
	"docreel/domain/repositories"
)

// Validation/precondition errors — handlers map เป็น 400
var (
	ErrEmptyDocument  = errors.New("document contains no extractable text")
	ErrExportNotReady = errors.New("not all videos are ready for export")
)

// SessionService จัดการ session lifecycle และการแก้ไข chunks
type SessionService interface {
	// CreateFromText segment text แล้วสร้าง session ใหม่
	CreateFromText(ctx context.Context, fileName, text string) (*models.Session, error)

	// CreateFromFile parse ไฟล์เป็น text ก่อนแล้วค่อย segment
	CreateFromFile(ctx context.Context, fileName, contentType string, data []byte) (*models.Session, error)

	// Get ดึง session ตาม id
	Get(ctx context.Context, id uuid.UUID) (*models.Session, error)

	// GetChunk ดึง chunk ตาม chunk id อย่างเดียว
	GetChunk(ctx context.Context, chunkID uuid.UUID) (*models.Chunk, error)

	// UpdateChunkContent แก้ title/content ของ chunk (manual edit)
	UpdateChunkContent(ctx context.Context, chunkID uuid.UUID, update repositories.ChunkUpdate) (*models.Chunk, error)

	// Reorder จัดลำดับ chunks ใหม่ตาม ids ที่ส่งมา
	Reorder(ctx context.Context, sessionID uuid.UUID, chunkIDs []uuid.UUID) ([]*models.Chunk, error)

	// DeleteChunk ลบ chunk หนึ่งตัว
	DeleteChunk(ctx context.Context, chunkID uuid.UUID) error
}
