package serviceimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"docreel/domain/models"
	"docreel/domain/ports"
	"docreel/infrastructure/memory"
	"docreel/infrastructure/parser"
	"docreel/pkg/config"
)

// เดินทั้ง pipeline จริงตั้งแต่ upload ถึง export
// provider ล่มทุกตัว — fallback script + mock video progression ต้องพาไปจนจบ
func TestPipelineEndToEnd(t *testing.T) {
	ctx := context.Background()

	sessionRepo := memory.NewSessionRepository()
	videoJobRepo := memory.NewVideoJobRepository()
	exportRepo := memory.NewExportJobRepository()

	sessionSvc := NewSessionService(sessionRepo, parser.NewDocumentParser())
	scriptSvc := NewScriptService(sessionRepo, &fakeScriptProvider{err: errors.New("provider down")}, time.Second)
	videoSvc := NewVideoService(sessionRepo, videoJobRepo, &fakeVideoProvider{configured: false}, 5).(*VideoServiceImpl)
	exportSvc := NewExportService(
		sessionRepo, exportRepo,
		&fakeVideoProvider{configured: false},
		&fakeComposer{},
		&fakeStorage{},
		nil,
		config.ExportConfig{TempPath: t.TempDir(), RetentionWindow: 24 * time.Hour},
	).(*ExportServiceImpl)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	videoSvc.now = func() time.Time { return base }

	// 1. upload
	text := "Intro\nHello there. This is great.\n\nChapter One\nMore content here."
	session, err := sessionSvc.CreateFromText(ctx, "doc.txt", text)
	if err != nil {
		t.Fatalf("CreateFromText failed: %v", err)
	}
	if len(session.Chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(session.Chunks))
	}
	if session.Chunks[0].Title != "Intro" || session.Chunks[1].Title != "Chapter One" {
		t.Fatalf("unexpected titles: %q, %q", session.Chunks[0].Title, session.Chunks[1].Title)
	}

	// 2. scripts ผ่าน fallback
	for _, chunk := range session.Chunks {
		if _, err := scriptSvc.GenerateForChunk(ctx, chunk.ID, ""); err != nil {
			t.Fatalf("GenerateForChunk failed: %v", err)
		}
		_, got, _ := sessionRepo.FindChunk(ctx, chunk.ID)
		if got.Status != models.ChunkStatusScriptReady {
			t.Fatalf("chunk %s status = %s, want script_ready", chunk.ID, got.Status)
		}
	}

	// 3. videos ผ่าน mock progression — นาฬิกาเดินใหม่ relative กับแต่ละ job
	for _, chunk := range session.Chunks {
		created := base
		videoSvc.now = func() time.Time { return created }
		job, err := videoSvc.RequestVideo(ctx, chunk.ID, ports.VideoRequest{Script: "hi"})
		if err != nil {
			t.Fatalf("RequestVideo failed: %v", err)
		}
		videoSvc.now = func() time.Time { return created.Add(150 * time.Second) }
		if _, err := videoSvc.PollStatus(ctx, job.ID); err != nil {
			t.Fatalf("PollStatus failed: %v", err)
		}
		_, got, _ := sessionRepo.FindChunk(ctx, chunk.ID)
		if got.Status != models.ChunkStatusVideoReady || got.VideoURL == "" {
			t.Fatalf("chunk %s not video_ready: (%s, %q)", chunk.ID, got.Status, got.VideoURL)
		}
	}

	// 4. export
	job, err := exportSvc.StartExport(ctx, session.ID, models.ExportOptions{})
	if err != nil {
		t.Fatalf("StartExport failed: %v", err)
	}
	final := waitForTerminal(t, exportSvc, job.ID)
	if final.Status != models.JobStatusCompleted {
		t.Fatalf("export status = %s (error: %s), want completed", final.Status, final.Error)
	}
	if final.DownloadURL == "" {
		t.Fatal("completed export must have a download URL")
	}
}
