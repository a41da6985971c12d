package repositories

import (
	"context"

	"github.com/google/uuid"

	"docreel/domain/models"
)

// ChunkUpdate คือ partial update ของ chunk — nil field = ไม่แก้
type ChunkUpdate struct {
	Title    *string
	Content  *string
	Script   *models.Script
	VideoURL *string
	Status   *models.ChunkStatus
}

// SessionRepository เป็น single source of truth ของ session และ chunk ทั้งหมด
// การ mutate chunk ทุกอย่างต้องผ่าน repository — ห้ามแก้ struct ที่อ่านออกมาตรงๆ
// (Get/Find คืน copy เพื่อกัน data race กับ background stages)
type SessionRepository interface {
	// Create เก็บ session ใหม่พร้อม chunks
	Create(ctx context.Context, session *models.Session) error

	// GetByID ดึง session ตาม id (คืน deep copy)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error)

	// FindChunk หา chunk จาก chunk id อย่างเดียว (ผ่าน secondary index)
	// คืน session ที่เป็นเจ้าของด้วย — stage ส่วนใหญ่รู้แค่ chunk id
	FindChunk(ctx context.Context, chunkID uuid.UUID) (*models.Session, *models.Chunk, error)

	// UpdateChunk แก้ field บางส่วนของ chunk แล้วคืน chunk หลังแก้
	UpdateChunk(ctx context.Context, chunkID uuid.UUID, update ChunkUpdate) (*models.Chunk, error)

	// Reorder จัดลำดับ chunk ใหม่ตาม chunkIDs — id ที่ไม่อยู่ใน session
	// ถูกข้ามเงียบๆ แล้ว re-normalize order เป็น 0..N-1
	Reorder(ctx context.Context, sessionID uuid.UUID, chunkIDs []uuid.UUID) ([]*models.Chunk, error)

	// DeleteChunk ลบ chunk แล้ว re-normalize order ของ chunk ที่เหลือ
	DeleteChunk(ctx context.Context, chunkID uuid.UUID) error

	// UpdateStatus อัปเดตสถานะรวมของ session
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.SessionStatus) error
}
