package serviceimpl

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"

	"docreel/domain/models"
	"docreel/domain/repositories"
	"docreel/domain/services"
	"docreel/infrastructure/memory"
	"docreel/pkg/config"
)

func newExportFixture(t *testing.T) (repositories.SessionRepository, repositories.ExportJobRepository, *ExportServiceImpl) {
	t.Helper()
	sessionRepo := memory.NewSessionRepository()
	exportRepo := memory.NewExportJobRepository()

	svc := NewExportService(
		sessionRepo,
		exportRepo,
		&fakeVideoProvider{configured: false},
		&fakeComposer{},
		&fakeStorage{},
		nil,
		config.ExportConfig{
			TempPath:        t.TempDir(),
			RetentionWindow: 24 * time.Hour,
		},
	).(*ExportServiceImpl)

	return sessionRepo, exportRepo, svc
}

// waitForTerminal poll จน job ถึง terminal state พร้อมเช็คว่า progress ไม่ถอยหลัง
func waitForTerminal(t *testing.T, svc services.ExportService, id uuid.UUID) *models.ExportJob {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	lastProgress := -1
	for time.Now().Before(deadline) {
		job, err := svc.GetStatus(context.Background(), id)
		if err != nil {
			t.Fatalf("GetStatus failed: %v", err)
		}
		if job.Progress < lastProgress {
			t.Fatalf("progress went backwards: %d -> %d", lastProgress, job.Progress)
		}
		lastProgress = job.Progress
		if job.Status.IsTerminal() {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("export job did not reach a terminal state")
	return nil
}

func TestStartExportRejectsUnreadySession(t *testing.T) {
	sessionRepo, exportRepo, svc := newExportFixture(t)

	notReady := readyChunk(2)
	notReady.Status = models.ChunkStatusGeneratingVideo
	session := seedSession(t, sessionRepo, readyChunk(0), readyChunk(1), notReady)

	_, err := svc.StartExport(context.Background(), session.ID, models.ExportOptions{})
	if !errors.Is(err, services.ErrExportNotReady) {
		t.Fatalf("expected ErrExportNotReady, got %v", err)
	}

	// reject ต้องไม่สร้าง job
	jobs, _ := exportRepo.List(context.Background())
	if len(jobs) != 0 {
		t.Errorf("expected no jobs after rejection, got %d", len(jobs))
	}
}

func TestStartExportRejectsMissingVideoURL(t *testing.T) {
	sessionRepo, _, svc := newExportFixture(t)

	chunk := readyChunk(0)
	chunk.VideoURL = ""
	session := seedSession(t, sessionRepo, chunk)

	_, err := svc.StartExport(context.Background(), session.ID, models.ExportOptions{})
	if !errors.Is(err, services.ErrExportNotReady) {
		t.Fatalf("expected ErrExportNotReady, got %v", err)
	}
}

func TestExportCompletesWithDownloadURL(t *testing.T) {
	sessionRepo, _, svc := newExportFixture(t)
	session := seedSession(t, sessionRepo, readyChunk(0), readyChunk(1))

	job, err := svc.StartExport(context.Background(), session.ID, models.ExportOptions{
		IncludeIntro: true,
		IncludeOutro: true,
	})
	if err != nil {
		t.Fatalf("StartExport failed: %v", err)
	}

	final := waitForTerminal(t, svc, job.ID)
	if final.Status != models.JobStatusCompleted {
		t.Fatalf("job status = %s (error: %s), want completed", final.Status, final.Error)
	}
	if final.DownloadURL == "" {
		t.Error("completed export must carry a download URL")
	}
	if final.Progress != 100 {
		t.Errorf("completed progress = %d, want 100", final.Progress)
	}
	if final.CompletedAt == nil {
		t.Error("completed export must record completion time")
	}

	// session จบ lifecycle พร้อมกับ export
	updated, err := sessionRepo.GetByID(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if updated.Status != models.SessionStatusCompleted {
		t.Errorf("session status = %s, want %s", updated.Status, models.SessionStatusCompleted)
	}

	// artifact ต้องเปิดอ่านได้
	reader, name, err := svc.OpenArtifact(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("OpenArtifact failed: %v", err)
	}
	defer reader.Close()
	if name != "report.mp4" {
		t.Errorf("artifact name = %q, want report.mp4", name)
	}
	if _, err := io.ReadAll(reader); err != nil {
		t.Errorf("artifact unreadable: %v", err)
	}
}

func TestExportFailureIsSticky(t *testing.T) {
	sessionRepo := memory.NewSessionRepository()
	exportRepo := memory.NewExportJobRepository()

	svc := NewExportService(
		sessionRepo,
		exportRepo,
		&fakeVideoProvider{configured: false},
		&fakeComposer{concatErr: errors.New("encoder crashed")},
		&fakeStorage{},
		nil,
		config.ExportConfig{TempPath: t.TempDir(), RetentionWindow: 24 * time.Hour},
	).(*ExportServiceImpl)

	session := seedSession(t, sessionRepo, readyChunk(0))

	job, err := svc.StartExport(context.Background(), session.ID, models.ExportOptions{})
	if err != nil {
		t.Fatalf("StartExport failed: %v", err)
	}

	final := waitForTerminal(t, svc, job.ID)
	if final.Status != models.JobStatusFailed {
		t.Fatalf("job status = %s, want failed", final.Status)
	}
	if final.Error == "" {
		t.Error("failed export must retain the error message")
	}

	// failed job ห้ามเปิด artifact ได้
	if _, _, err := svc.OpenArtifact(context.Background(), job.ID); err == nil {
		t.Error("OpenArtifact must reject a failed job")
	}

	updated, err := sessionRepo.GetByID(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if updated.Status != models.SessionStatusError {
		t.Errorf("session status = %s, want %s", updated.Status, models.SessionStatusError)
	}
}

func TestRetentionSweep(t *testing.T) {
	_, exportRepo, svc := newExportFixture(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	oldJob := &models.ExportJob{
		ID:        uuid.New(),
		SessionID: uuid.New(),
		Status:    models.JobStatusCompleted,
		StartTime: base.Add(-25 * time.Hour),
	}
	freshJob := &models.ExportJob{
		ID:        uuid.New(),
		SessionID: uuid.New(),
		Status:    models.JobStatusCompleted,
		StartTime: base.Add(-1 * time.Hour),
	}
	exportRepo.Save(context.Background(), oldJob)
	exportRepo.Save(context.Background(), freshJob)

	svc.RunRetentionSweep(context.Background())

	if _, err := exportRepo.GetByID(context.Background(), oldJob.ID); !errors.Is(err, repositories.ErrExportJobNotFound) {
		t.Errorf("job older than the retention window must be removed, got %v", err)
	}
	if _, err := exportRepo.GetByID(context.Background(), freshJob.ID); err != nil {
		t.Errorf("job inside the retention window must survive: %v", err)
	}
}
