package serviceimpl

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"docreel/domain/models"
	"docreel/infrastructure/memory"
)

func TestGenerateFallbackScriptProperties(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"normal prose", "Saving early matters. Compound interest does the heavy lifting. Start with whatever you can. Consistency beats timing. Review yearly."},
		{"empty content", ""},
		{"only terminators", "...!!!???"},
		{"single long sentence", strings.Repeat("word ", 100)},
		{"many short sentences", strings.Repeat("Short one. ", 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := GenerateFallbackScript(tt.content)

			if script.Title == "" {
				t.Error("fallback title must never be empty")
			}
			if len(script.ScriptChunks) > fallbackMaxChunks {
				t.Errorf("got %d segments, cap is %d", len(script.ScriptChunks), fallbackMaxChunks)
			}
			if script.CameraDirection != fallbackCameraDirection {
				t.Errorf("unexpected camera direction: %q", script.CameraDirection)
			}
			if script.Environment != fallbackEnvironment {
				t.Errorf("unexpected environment: %q", script.Environment)
			}
			for i, segment := range script.ScriptChunks {
				// flush rule: segment = สิ่งที่สะสมไว้ (≤200 ตอน flush) + ประโยคสุดท้ายที่เกิน budget ไม่ได้
				// ประโยคเดี่ยวยาวกว่า budget เป็นข้อยกเว้นเดียว
				if len(segment) > fallbackSegmentMax+1 && strings.Count(segment, ".") > 1 {
					t.Errorf("segment %d too long (%d chars): %q", i, len(segment), segment)
				}
			}
		})
	}
}

func TestGenerateFallbackScriptTitle(t *testing.T) {
	script := GenerateFallbackScript("")
	if script.Title != "Main Topic" {
		t.Errorf("empty content title = %q, want Main Topic", script.Title)
	}

	long := strings.Repeat("a", 80) + ". second sentence."
	script = GenerateFallbackScript(long)
	if len([]rune(script.Title)) != fallbackTitleMax {
		t.Errorf("long first sentence title length = %d, want %d", len([]rune(script.Title)), fallbackTitleMax)
	}

	script = GenerateFallbackScript("Hello there. This is great.")
	if script.Title != "Hello there" {
		t.Errorf("title = %q, want %q", script.Title, "Hello there")
	}
}

func TestGenerateFallbackScriptPacking(t *testing.T) {
	// สองประโยค ~150 ตัวอักษร — รวมกันเกิน 200 ต้องแยก segment
	a := strings.Repeat("x", 150)
	b := strings.Repeat("y", 150)
	script := GenerateFallbackScript(a + ". " + b + ".")

	if len(script.ScriptChunks) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(script.ScriptChunks))
	}
	if script.ScriptChunks[0] != a+"." {
		t.Errorf("first segment = %q", script.ScriptChunks[0])
	}
	if script.ScriptChunks[1] != b+"." {
		t.Errorf("second segment = %q", script.ScriptChunks[1])
	}
}

func TestGenerateForChunkFallsBackOnProviderError(t *testing.T) {
	repo := memory.NewSessionRepository()
	chunk := &models.Chunk{
		ID:      uuid.New(),
		Title:   "Intro",
		Content: "Hello there. This is great.",
		Order:   0,
		Status:  models.ChunkStatusPending,
	}
	session := seedSession(t, repo, chunk)

	svc := NewScriptService(repo, &fakeScriptProvider{err: errors.New("provider down")}, time.Second)

	script, err := svc.GenerateForChunk(context.Background(), chunk.ID, "")
	if err != nil {
		t.Fatalf("GenerateForChunk must not surface provider errors: %v", err)
	}
	if script.Title != "Hello there" {
		t.Errorf("fallback title = %q", script.Title)
	}

	_, got, err := repo.FindChunk(context.Background(), chunk.ID)
	if err != nil {
		t.Fatalf("FindChunk failed: %v", err)
	}
	if got.Status != models.ChunkStatusScriptReady {
		t.Errorf("chunk status = %s, want script_ready", got.Status)
	}
	if got.Script == nil {
		t.Fatal("chunk script not persisted")
	}

	// session เข้า scripting ตั้งแต่ chunk แรกที่ generate
	updated, err := repo.GetByID(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if updated.Status != models.SessionStatusScripting {
		t.Errorf("session status = %s, want %s", updated.Status, models.SessionStatusScripting)
	}
}

func TestGenerateForChunkUsesPrimaryWhenAvailable(t *testing.T) {
	repo := memory.NewSessionRepository()
	chunk := &models.Chunk{
		ID:      uuid.New(),
		Title:   "Intro",
		Content: "Some content here.",
		Order:   0,
		Status:  models.ChunkStatusPending,
	}
	seedSession(t, repo, chunk)

	primary := &models.Script{
		Title:           "From Provider",
		ScriptChunks:    []string{"segment"},
		CameraDirection: "cd",
		Environment:     "env",
	}
	svc := NewScriptService(repo, &fakeScriptProvider{script: primary}, time.Second)

	script, err := svc.GenerateForChunk(context.Background(), chunk.ID, "")
	if err != nil {
		t.Fatalf("GenerateForChunk failed: %v", err)
	}
	if script.Title != "From Provider" {
		t.Errorf("expected primary script, got %q", script.Title)
	}
}

func TestUpdateScriptMarksChunkReady(t *testing.T) {
	repo := memory.NewSessionRepository()
	chunk := &models.Chunk{
		ID:      uuid.New(),
		Title:   "Intro",
		Content: "Some content here.",
		Order:   0,
		Status:  models.ChunkStatusPending,
	}
	seedSession(t, repo, chunk)

	svc := NewScriptService(repo, &fakeScriptProvider{err: errors.New("unused")}, time.Second)

	manual := &models.Script{
		Title:           "Manual",
		ScriptChunks:    []string{"edited segment"},
		CameraDirection: "cd",
		Environment:     "env",
	}
	if err := svc.UpdateScript(context.Background(), chunk.ID, manual); err != nil {
		t.Fatalf("UpdateScript failed: %v", err)
	}

	_, got, _ := repo.FindChunk(context.Background(), chunk.ID)
	if got.Status != models.ChunkStatusScriptReady {
		t.Errorf("chunk status = %s, want script_ready", got.Status)
	}
	if got.Script.Title != "Manual" {
		t.Errorf("script not overwritten: %q", got.Script.Title)
	}
}
