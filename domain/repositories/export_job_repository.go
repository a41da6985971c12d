package repositories

import (
	"context"

	"github.com/google/uuid"

	"docreel/domain/models"
)

// ExportJobRepository คือ registry ของ export jobs — Export Stage เป็นเจ้าของ
type ExportJobRepository interface {
	// Save เก็บ job ใหม่
	Save(ctx context.Context, job *models.ExportJob) error

	// GetByID ดึง job ตาม id (คืน copy)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ExportJob, error)

	// Update แก้ job ภายใต้ lock ของ registry
	Update(ctx context.Context, id uuid.UUID, fn func(job *models.ExportJob)) (*models.ExportJob, error)

	// List ดึง jobs ทั้งหมด (copy) — ใช้โดย retention sweep
	List(ctx context.Context) ([]*models.ExportJob, error)

	// Delete ลบ job record ออกจาก registry
	Delete(ctx context.Context, id uuid.UUID) error
}
