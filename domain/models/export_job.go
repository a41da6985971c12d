package models

import (
	"time"

	"github.com/google/uuid"
)

// ExportOptions ตัวเลือกของการ export
type ExportOptions struct {
	IncludeIntro    bool
	IncludeOutro    bool
	BackgroundMusic string // ชื่อ track, "" = ไม่ใส่เพลง
}

// ExportJob คือหนึ่งครั้งของการ export session เป็นวิดีโอไฟล์เดียว
// State machine: pending → processing → completed|failed (terminal sticky)
// SessionID เป็น weak reference เช่นเดียวกับ VideoJob.ChunkID
type ExportJob struct {
	ID          uuid.UUID
	SessionID   uuid.UUID
	Status      JobStatus
	Progress    int // monotonic 0-100
	Options     ExportOptions
	OutputPath  string
	DownloadURL string
	StartTime   time.Time
	CompletedAt *time.Time
	Error       string
}
