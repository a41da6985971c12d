package segmenter

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"docreel/domain/models"
)

// budget สูงสุดของ chunk เมื่อแบ่งตาม paragraph
const paragraphBudget = 1000

// heading ต้องสั้นกว่านี้
const headingMaxLen = 100

var (
	// ขึ้นต้นตัวใหญ่ ไม่ลงท้ายด้วย period
	capitalNoPeriodRe = regexp.MustCompile(`^[A-Z][^.]*[^.]$`)
	// ขึ้นต้นด้วยตัวเลขตามด้วย period เช่น "1. Introduction"
	numberedRe = regexp.MustCompile(`^\d+\.`)
	// ตัวใหญ่ทั้งบรรทัด
	allCapsRe = regexp.MustCompile(`^[A-Z\s]+$`)

	sentenceSplitRe  = regexp.MustCompile(`[.!?]+`)
	paragraphSplitRe = regexp.MustCompile(`\n\s*\n`)
)

// Segment แบ่งเอกสารเป็น chunks ตามโครงสร้าง heading ก่อน
// ถ้าไม่เจอ heading เลยจะ fallback เป็นการแบ่งตาม paragraph แทน
// ทุก chunk เริ่มที่ status pending และ order เรียง 0..N-1 เสมอ
func Segment(text string) []*models.Chunk {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	var chunks []*models.Chunk
	var currentContent strings.Builder
	currentTitle := ""
	chunkIndex := 0

	flush := func() {
		content := strings.TrimSpace(currentContent.String())
		if content == "" {
			return
		}
		title := currentTitle
		if title == "" {
			title = ExtractTitle(content)
		}
		chunks = append(chunks, &models.Chunk{
			ID:      uuid.New(),
			Title:   title,
			Content: content,
			Order:   chunkIndex,
			Status:  models.ChunkStatusPending,
		})
		chunkIndex++
	}

	headingSeen := false
	for _, line := range lines {
		if IsHeading(line) {
			headingSeen = true
			flush()
			currentTitle = line
			currentContent.Reset()
			continue
		}
		if currentContent.Len() > 0 {
			currentContent.WriteString("\n")
		}
		currentContent.WriteString(line)
	}
	flush()

	// ไม่เจอ heading สักบรรทัด = เอกสารไม่มีโครงสร้าง — ใช้ paragraph budget แทน
	// (เช็ค len(chunks) อย่างเดียวไม่พอ เพราะ content ทั้งไฟล์จะกองเป็น chunk เดียว)
	if headingSeen && len(chunks) > 0 {
		return chunks
	}
	return segmentByParagraphs(text)
}

// segmentByParagraphs แบ่งตาม paragraph (คั่นด้วยบรรทัดว่าง)
// สะสม paragraph จนเกือบเกิน budget แล้วค่อย flush
func segmentByParagraphs(text string) []*models.Chunk {
	var paragraphs []string
	for _, p := range paragraphSplitRe.Split(text, -1) {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}

	var chunks []*models.Chunk
	current := ""
	chunkIndex := 0

	flush := func() {
		content := strings.TrimSpace(current)
		if content == "" {
			return
		}
		chunks = append(chunks, &models.Chunk{
			ID:      uuid.New(),
			Title:   ExtractTitle(content),
			Content: content,
			Order:   chunkIndex,
			Status:  models.ChunkStatusPending,
		})
		chunkIndex++
	}

	for _, paragraph := range paragraphs {
		if len(current)+len(paragraph) > paragraphBudget && len(current) > 0 {
			flush()
			current = paragraph
		} else {
			if current != "" {
				current += "\n\n"
			}
			current += paragraph
		}
	}
	flush()

	return chunks
}

// ExtractTitle ใช้ประโยคแรกเป็น title ถ้าสั้นพอ ไม่งั้นตัด 50 ตัวอักษรแรก
func ExtractTitle(text string) string {
	sentences := sentenceSplitRe.Split(text, -1)
	if len(sentences) > 0 {
		first := strings.TrimSpace(sentences[0])
		if first != "" && len([]rune(first)) <= 60 {
			return first
		}
	}

	runes := []rune(text)
	if len(runes) <= 50 {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(string(runes[:50])) + "..."
}

// IsHeading ตรวจว่าบรรทัดนี้ดูเป็น heading หรือไม่
func IsHeading(line string) bool {
	if len(line) >= headingMaxLen {
		return false
	}
	return capitalNoPeriodRe.MatchString(line) ||
		numberedRe.MatchString(line) ||
		allCapsRe.MatchString(line)
}
