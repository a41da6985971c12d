package ports

import "errors"

// Parser errors — handlers map เป็น validation error
var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrParseFailed     = errors.New("failed to parse document")
)

// DocumentParserPort แปลงไฟล์ดิบเป็น plain text
// core ใช้แค่ผลลัพธ์ text — รายละเอียด format อยู่หลัง port นี้ทั้งหมด
type DocumentParserPort interface {
	// Parse รับ raw bytes + declared media type คืน extracted text
	// media type ที่ไม่รองรับ → ErrUnsupportedType, parse พัง → ErrParseFailed
	Parse(fileName string, contentType string, data []byte) (string, error)
}
