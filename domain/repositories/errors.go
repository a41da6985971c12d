package repositories

import "errors"

// Not-found errors ของแต่ละ registry — ปลอดภัยเสมอ ไม่ใช่ fault
// handlers map เป็น 404, services ใช้ errors.Is ตรวจสอบ
var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrChunkNotFound     = errors.New("chunk not found")
	ErrVideoJobNotFound  = errors.New("video job not found")
	ErrExportJobNotFound = errors.New("export job not found")
)
