package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus สถานะของ processing session (ทั้ง document)
type SessionStatus string

const (
	SessionStatusChunking   SessionStatus = "chunking"
	SessionStatusScripting  SessionStatus = "scripting"
	SessionStatusGenerating SessionStatus = "generating"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusError      SessionStatus = "error"
)

// Session คือหนึ่งรอบการประมวลผล document — เป็นเจ้าของ chunks ทั้งหมด
// ลำดับใน Chunks เป็นลำดับจริงของ script/video/export (load-bearing)
type Session struct {
	ID        uuid.UUID
	FileName  string
	Chunks    []*Chunk
	CreatedAt time.Time
	Status    SessionStatus
}
