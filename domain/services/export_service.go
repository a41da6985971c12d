package services

import (
	"context"
	"io"

	"github.com/google/uuid"

	"docreel/domain/models"
)

// ExportService รวมวิดีโอทุก chunk ของ session เป็นไฟล์เดียว
type ExportService interface {
	// StartExport ตรวจ precondition (ทุก chunk ต้อง video_ready + มี videoUrl)
	// แล้วเริ่ม process แบบ async — reject ด้วย ErrExportNotReady ถ้ายังไม่พร้อม
	StartExport(ctx context.Context, sessionID uuid.UUID, opts models.ExportOptions) (*models.ExportJob, error)

	// GetStatus ดึงสถานะ/progress ของ export job
	GetStatus(ctx context.Context, exportID uuid.UUID) (*models.ExportJob, error)

	// OpenArtifact เปิดไฟล์ผลลัพธ์สำหรับ download (เฉพาะ job ที่ completed)
	// return: reader, suggested file name, error
	OpenArtifact(ctx context.Context, exportID uuid.UUID) (io.ReadCloser, string, error)

	// RunRetentionSweep ลบ artifact + job record ที่เก่ากว่า retention window
	RunRetentionSweep(ctx context.Context)

	// RegisterRetentionJob ลงทะเบียน sweep กับ scheduler (รายชั่วโมง)
	RegisterRetentionJob() error
}
