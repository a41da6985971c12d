package repositories

import (
	"context"

	"github.com/google/uuid"

	"docreel/domain/models"
)

// VideoJobRepository คือ registry ของ video generation jobs
// Video Stage เป็นเจ้าของ — stage อื่นอ้างถึง job ผ่าน id เท่านั้น
type VideoJobRepository interface {
	// Save เก็บ job ใหม่
	Save(ctx context.Context, job *models.VideoJob) error

	// GetByID ดึง job ตาม id (คืน copy)
	GetByID(ctx context.Context, id uuid.UUID) (*models.VideoJob, error)

	// Update แก้ job ภายใต้ lock ของ registry — fn ได้ pointer ของจริง
	Update(ctx context.Context, id uuid.UUID, fn func(job *models.VideoJob)) (*models.VideoJob, error)
}
