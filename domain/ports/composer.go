package ports

import "context"

// ComposerPort คือ interface ของ media composition utility (FFmpeg)
// ทุก operation รับ local file paths และเขียน output เป็นไฟล์เดียว —
// สำเร็จ (ไฟล์มีอยู่) หรือ fail เท่านั้น ไม่มี partial output
type ComposerPort interface {
	// Concat ต่อวิดีโอตามลำดับ inputs เป็นไฟล์เดียว
	Concat(ctx context.Context, inputs []string, outputPath string) error

	// SynthesizeIntro สร้าง intro clip จากชื่อ document
	SynthesizeIntro(ctx context.Context, title string, outputPath string) error

	// SynthesizeOutro สร้าง outro clip
	SynthesizeOutro(ctx context.Context, outputPath string) error

	// MixAudio ผสม background music เข้ากับ video
	MixAudio(ctx context.Context, videoPath, audioPath, outputPath string) error

	// IsAvailable ตรวจสอบว่า binary พร้อมใช้งาน
	IsAvailable() bool
}
