package ports

import (
	"context"
	"io"
)

// Provider status vocabulary (raw) — core map เป็น JobStatus อีกที
const (
	ProviderStatusInQueue    = "IN_QUEUE"
	ProviderStatusInProgress = "IN_PROGRESS"
	ProviderStatusCompleted  = "COMPLETED"
	ProviderStatusFailed     = "FAILED"
)

// VideoRequest คือ input ของการ generate video หนึ่ง clip
type VideoRequest struct {
	Script          string
	CameraDirection string
	Environment     string
	Duration        int // วินาที, 0 = ใช้ default ของ provider
}

// VideoGenerationResult คือผลจาก provider — status ยังเป็น vocabulary ของ provider
type VideoGenerationResult struct {
	RequestID string // opaque id ที่ provider ออกให้ ใช้ poll ภายหลัง
	Status    string
	VideoURL  string
}

// VideoProviderPort คือ interface ของ video generation service ภายนอก
// การ generate เป็น long-running — submit แล้ว poll ด้วย RequestID
type VideoProviderPort interface {
	// Generate ส่ง request เข้า queue ของ provider
	Generate(ctx context.Context, req VideoRequest) (*VideoGenerationResult, error)

	// GetStatus ดึงสถานะล่าสุดของ request — ต้อง idempotent
	GetStatus(ctx context.Context, requestID string) (*VideoGenerationResult, error)

	// Download ดึงไฟล์วิดีโอจาก URL ที่ provider คืนมา
	Download(ctx context.Context, videoURL string) (io.ReadCloser, error)

	// IsConfigured ตรวจสอบว่ามี credentials ครบ — ถ้า false core ใช้ mock progression
	IsConfigured() bool

	// TestConnection ตรวจสอบว่า API เข้าถึงได้จริง
	TestConnection(ctx context.Context) bool
}
