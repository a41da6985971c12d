package utils

import (
	"fmt"
)

// DiskInfo ข้อมูลพื้นที่ disk
type DiskInfo struct {
	Total       uint64  // พื้นที่ทั้งหมด (bytes)
	Free        uint64  // พื้นที่ว่าง (bytes)
	Used        uint64  // พื้นที่ที่ใช้ (bytes)
	UsedPercent float64 // % ที่ใช้
}

// CheckDiskSpace ตรวจสอบว่ามีพื้นที่ว่างเพียงพอสำหรับงาน export หรือไม่
// requiredBytes: พื้นที่ที่ต้องการ (bytes)
func CheckDiskSpace(path string, requiredBytes int64) (bool, *DiskInfo, error) {
	info, err := GetDiskInfo(path)
	if err != nil {
		return false, nil, err
	}

	if int64(info.Free) < requiredBytes {
		return false, info, nil
	}

	return true, info, nil
}

// FormatBytes แปลง bytes เป็น human-readable format
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// DiskSpaceError error สำหรับ disk space ไม่พอ
type DiskSpaceError struct {
	Required  int64
	Available uint64
}

func (e *DiskSpaceError) Error() string {
	return fmt.Sprintf("insufficient disk space: required %s, available %s",
		FormatBytes(uint64(e.Required)),
		FormatBytes(e.Available),
	)
}

func NewDiskSpaceError(required int64, available uint64) *DiskSpaceError {
	return &DiskSpaceError{Required: required, Available: available}
}
