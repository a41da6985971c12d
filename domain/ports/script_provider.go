package ports

import (
	"context"

	"docreel/domain/models"
)

// ScriptProviderPort คือ interface ของ LLM script generator ภายนอก
// ทำให้เปลี่ยน provider ได้ง่าย (Gemini, Claude, local model)
type ScriptProviderPort interface {
	// GenerateScript แปลง content เป็น narration script
	// error = upstream failure — caller ต้อง fallback เอง ห้าม propagate ถึง API
	GenerateScript(ctx context.Context, content string) (*models.Script, error)

	// TestConnection ตรวจสอบว่า provider พร้อมใช้งาน
	// ผลลัพธ์เป็นแค่ข้อมูล — ต่อให้ false การ generate ก็ยังทำงานผ่าน fallback
	TestConnection(ctx context.Context) bool
}
