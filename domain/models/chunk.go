package models

import (
	"github.com/google/uuid"
)

// ChunkStatus สถานะของ chunk ในแต่ละ stage ของ pipeline
type ChunkStatus string

const (
	ChunkStatusPending         ChunkStatus = "pending"
	ChunkStatusScripting       ChunkStatus = "scripting"
	ChunkStatusScriptReady     ChunkStatus = "script_ready"
	ChunkStatusGeneratingVideo ChunkStatus = "generating_video"
	ChunkStatusVideoReady      ChunkStatus = "video_ready"
	ChunkStatusError           ChunkStatus = "error"
)

// Script คือ narration script ของหนึ่ง chunk
// แต่ละ segment ใน ScriptChunks ต้องไม่เกิน 210 ตัวอักษร
type Script struct {
	Title           string   `json:"title"`
	ScriptChunks    []string `json:"script_chunks"`
	CameraDirection string   `json:"camera_direction"`
	Environment     string   `json:"environment"`
}

// Chunk คือหนึ่งส่วนของ document — หน่วยของการ generate script/video
// Invariant: Order ต้องเป็น dense 0..N-1 ตรงกับตำแหน่งใน session เสมอ
// Invariant: status script_ready ⇒ Script != nil, video_ready ⇒ VideoURL != ""
type Chunk struct {
	ID       uuid.UUID
	Title    string
	Content  string
	Order    int
	Script   *Script
	VideoURL string
	Status   ChunkStatus
}
