package services

import (
	"context"

	"github.com/google/uuid"

	"docreel/domain/models"
)

// ScriptService ขับ chunk จาก pending ไป script_ready
type ScriptService interface {
	// GenerateForChunk generate script ให้ chunk — ไม่มีวัน fail จาก provider
	// (timeout/error → deterministic fallback) คืน error เฉพาะ chunk not found
	GenerateForChunk(ctx context.Context, chunkID uuid.UUID, content string) (*models.Script, error)

	// GetScript ดึง script ของ chunk (not found ถ้ายังไม่มี)
	GetScript(ctx context.Context, chunkID uuid.UUID) (*models.Script, error)

	// UpdateScript เขียนทับ script ด้วยมือ — chunk ไป script_ready
	UpdateScript(ctx context.Context, chunkID uuid.UUID, script *models.Script) error

	// TestConnection probe primary provider — false ไม่ block การ generate
	TestConnection(ctx context.Context) bool
}
