package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"docreel/domain/models"
	"docreel/domain/repositories"
)

func newTestSession(chunkCount int) *models.Session {
	session := &models.Session{
		ID:        uuid.New(),
		FileName:  "test.txt",
		CreatedAt: time.Now(),
		Status:    models.SessionStatusChunking,
	}
	for i := 0; i < chunkCount; i++ {
		session.Chunks = append(session.Chunks, &models.Chunk{
			ID:      uuid.New(),
			Title:   "chunk",
			Content: "content",
			Order:   i,
			Status:  models.ChunkStatusPending,
		})
	}
	return session
}

func assertDenseOrder(t *testing.T, chunks []*models.Chunk) {
	t.Helper()
	for i, chunk := range chunks {
		if chunk.Order != i {
			t.Errorf("chunk at position %d has order %d", i, chunk.Order)
		}
	}
}

func TestSessionRepositoryCreateAndGet(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	session := newTestSession(3)
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(got.Chunks))
	}

	// ต้องเป็น copy — แก้ผลลัพธ์แล้ว store ไม่เปลี่ยน
	got.Chunks[0].Title = "mutated"
	again, _ := repo.GetByID(ctx, session.ID)
	if again.Chunks[0].Title == "mutated" {
		t.Error("GetByID must return a deep copy")
	}

	_, err = repo.GetByID(ctx, uuid.New())
	if !errors.Is(err, repositories.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionRepositoryFindChunk(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	session := newTestSession(2)
	repo.Create(ctx, session)

	owner, chunk, err := repo.FindChunk(ctx, session.Chunks[1].ID)
	if err != nil {
		t.Fatalf("FindChunk failed: %v", err)
	}
	if owner.ID != session.ID {
		t.Errorf("wrong owning session: %s", owner.ID)
	}
	if chunk.ID != session.Chunks[1].ID {
		t.Errorf("wrong chunk returned: %s", chunk.ID)
	}

	_, _, err = repo.FindChunk(ctx, uuid.New())
	if !errors.Is(err, repositories.ErrChunkNotFound) {
		t.Errorf("expected ErrChunkNotFound, got %v", err)
	}
}

func TestSessionRepositoryUpdateChunk(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	session := newTestSession(1)
	repo.Create(ctx, session)
	chunkID := session.Chunks[0].ID

	status := models.ChunkStatusScriptReady
	script := &models.Script{
		Title:           "Updated",
		ScriptChunks:    []string{"segment one"},
		CameraDirection: "direct",
		Environment:     "office",
	}
	updated, err := repo.UpdateChunk(ctx, chunkID, repositories.ChunkUpdate{
		Script: script,
		Status: &status,
	})
	if err != nil {
		t.Fatalf("UpdateChunk failed: %v", err)
	}
	if updated.Status != models.ChunkStatusScriptReady {
		t.Errorf("status not updated: %s", updated.Status)
	}
	if updated.Script == nil || updated.Script.Title != "Updated" {
		t.Error("script not updated")
	}

	// field ที่เป็น nil ต้องไม่ถูกแตะ
	if updated.Content != "content" {
		t.Errorf("content changed unexpectedly: %q", updated.Content)
	}
}

func TestSessionRepositoryReorder(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	session := newTestSession(3)
	repo.Create(ctx, session)
	a, b, c := session.Chunks[0].ID, session.Chunks[1].ID, session.Chunks[2].ID

	// สลับลำดับ พร้อมแทรก id แปลกปลอมที่ต้องถูกข้าม
	chunks, err := repo.Reorder(ctx, session.ID, []uuid.UUID{c, uuid.New(), a, b})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	want := []uuid.UUID{c, a, b}
	for i, chunk := range chunks {
		if chunk.ID != want[i] {
			t.Errorf("position %d: got %s, want %s", i, chunk.ID, want[i])
		}
	}
	assertDenseOrder(t, chunks)

	// list ใหม่คือ input ที่ filter แล้วเท่านั้น — chunk ที่ไม่ถูกอ้างถึงหายไป
	chunks, err = repo.Reorder(ctx, session.ID, []uuid.UUID{b})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk after narrowing reorder, got %d", len(chunks))
	}
	if chunks[0].ID != b {
		t.Errorf("expected %s, got %s", b, chunks[0].ID)
	}
	assertDenseOrder(t, chunks)

	got, _ := repo.GetByID(ctx, session.ID)
	if len(got.Chunks) != 1 {
		t.Fatalf("session kept %d chunks, want 1", len(got.Chunks))
	}

	// chunk ที่หลุดจาก list ต้องหายจาก index ด้วย
	if _, _, err := repo.FindChunk(ctx, a); err != repositories.ErrChunkNotFound {
		t.Errorf("dropped chunk still findable: %v", err)
	}
	if _, _, err := repo.FindChunk(ctx, c); err != repositories.ErrChunkNotFound {
		t.Errorf("dropped chunk still findable: %v", err)
	}
}

func TestSessionRepositoryDeleteChunk(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	session := newTestSession(3)
	repo.Create(ctx, session)
	middle := session.Chunks[1].ID

	if err := repo.DeleteChunk(ctx, middle); err != nil {
		t.Fatalf("DeleteChunk failed: %v", err)
	}

	got, _ := repo.GetByID(ctx, session.ID)
	if len(got.Chunks) != 2 {
		t.Fatalf("expected 2 chunks after delete, got %d", len(got.Chunks))
	}
	assertDenseOrder(t, got.Chunks)

	// ลบแล้ว index ต้องหายด้วย
	_, _, err := repo.FindChunk(ctx, middle)
	if !errors.Is(err, repositories.ErrChunkNotFound) {
		t.Errorf("expected ErrChunkNotFound after delete, got %v", err)
	}

	if err := repo.DeleteChunk(ctx, middle); !errors.Is(err, repositories.ErrChunkNotFound) {
		t.Errorf("double delete should return ErrChunkNotFound, got %v", err)
	}
}
