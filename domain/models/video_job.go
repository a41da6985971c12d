package models

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus สถานะของ async job (video generation / export)
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// IsTerminal completed/failed เป็น terminal — ไม่มี transition ออก
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// VideoJob คือ job การ generate video ของหนึ่ง chunk
// แยก key จาก Chunk เพราะ provider ออก request id ของตัวเองที่ต้องเก็บไว้ poll
// ChunkID เป็น weak reference — chunk อาจถูกลบไปแล้วตอน poll
type VideoJob struct {
	ID                uuid.UUID
	ChunkID           uuid.UUID
	Status            JobStatus
	Progress          int // 0-100
	VideoURL          string
	ProviderRequestID string
	CreatedAt         time.Time
}
