package services

import (
	"context"

	"github.com/google/uuid"

	"docreel/domain/models"
	"docreel/domain/ports"
)

// VideoService ขับ chunk จาก script_ready ไป video_ready ผ่าน provider ภายนอก
// การ generate เป็น long-running — caller ต้อง poll ด้วย job id
type VideoService interface {
	// RequestVideo ส่ง request ไป provider แล้วคืน VideoJob
	// provider ล่มหรือไม่ได้ config → job เข้าสู่ mock progression แทน ไม่ error
	RequestVideo(ctx context.Context, chunkID uuid.UUID, req ports.VideoRequest) (*models.VideoJob, error)

	// PollStatus ดึงสถานะล่าสุดของ job — idempotent, terminal state sticky
	// เมื่อเห็น completed จะ propagate videoUrl/video_ready ไปที่ chunk
	PollStatus(ctx context.Context, jobID uuid.UUID) (*models.VideoJob, error)

	// TestConnection probe provider
	TestConnection(ctx context.Context) bool
}
