package serviceimpl

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"docreel/domain/models"
	"docreel/domain/ports"
	"docreel/domain/repositories"
)

// ========== script provider fakes ==========

type fakeScriptProvider struct {
	script *models.Script
	err    error
}

func (f *fakeScriptProvider) GenerateScript(ctx context.Context, content string) (*models.Script, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.script, nil
}

func (f *fakeScriptProvider) TestConnection(ctx context.Context) bool {
	return f.err == nil
}

// ========== video provider fakes ==========

type fakeVideoProvider struct {
	configured   bool
	generateErr  error
	statusResult *ports.VideoGenerationResult
	statusErr    error
	downloadData string
}

func (f *fakeVideoProvider) Generate(ctx context.Context, req ports.VideoRequest) (*ports.VideoGenerationResult, error) {
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return &ports.VideoGenerationResult{
		RequestID: "req-1",
		Status:    ports.ProviderStatusInQueue,
	}, nil
}

func (f *fakeVideoProvider) GetStatus(ctx context.Context, requestID string) (*ports.VideoGenerationResult, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	if f.statusResult == nil {
		return nil, errors.New("no status configured")
	}
	return f.statusResult, nil
}

func (f *fakeVideoProvider) Download(ctx context.Context, videoURL string) (io.ReadCloser, error) {
	data := f.downloadData
	if data == "" {
		data = "video-bytes"
	}
	return io.NopCloser(strings.NewReader(data)), nil
}

func (f *fakeVideoProvider) IsConfigured() bool {
	return f.configured
}

func (f *fakeVideoProvider) TestConnection(ctx context.Context) bool {
	return f.configured
}

// ========== composer fake ==========

// fakeComposer เขียน output file จริงเพื่อให้ verify/rename ของ export ทำงาน
type fakeComposer struct {
	concatErr error
}

func (f *fakeComposer) Concat(ctx context.Context, inputs []string, outputPath string) error {
	if f.concatErr != nil {
		return f.concatErr
	}
	return os.WriteFile(outputPath, []byte("concat"), 0644)
}

func (f *fakeComposer) SynthesizeIntro(ctx context.Context, title, outputPath string) error {
	return os.WriteFile(outputPath, []byte("intro"), 0644)
}

func (f *fakeComposer) SynthesizeOutro(ctx context.Context, outputPath string) error {
	return os.WriteFile(outputPath, []byte("outro"), 0644)
}

func (f *fakeComposer) MixAudio(ctx context.Context, videoPath, audioPath, outputPath string) error {
	return os.WriteFile(outputPath, []byte("mixed"), 0644)
}

func (f *fakeComposer) IsAvailable() bool { return true }

// ========== storage fake ==========

type fakeStorage struct {
	uploads []string
	deletes []string
}

func (f *fakeStorage) UploadFile(file io.Reader, path, contentType string) (string, error) {
	io.Copy(io.Discard, file)
	f.uploads = append(f.uploads, path)
	return "http://localhost/files/" + path, nil
}

func (f *fakeStorage) DeleteFile(path string) error {
	f.deletes = append(f.deletes, path)
	return nil
}

func (f *fakeStorage) GetFileURL(path string) string {
	return "http://localhost/files/" + path
}

func (f *fakeStorage) GetProviderName() string { return "local" }

// ========== shared setup ==========

// seedSession สร้าง session พร้อม chunks ใน repo แล้วคืน session (copy)
func seedSession(t *testing.T, repo repositories.SessionRepository, chunks ...*models.Chunk) *models.Session {
	t.Helper()
	session := &models.Session{
		ID:        uuid.New(),
		FileName:  "report.txt",
		Chunks:    chunks,
		CreatedAt: time.Now(),
		Status:    models.SessionStatusChunking,
	}
	if err := repo.Create(context.Background(), session); err != nil {
		t.Fatalf("seed session failed: %v", err)
	}
	got, err := repo.GetByID(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("seed session lookup failed: %v", err)
	}
	return got
}

func readyChunk(order int) *models.Chunk {
	return &models.Chunk{
		ID:       uuid.New(),
		Title:    "chunk",
		Content:  "content",
		Order:    order,
		VideoURL: "https://cdn.example.com/clip.mp4",
		Status:   models.ChunkStatusVideoReady,
	}
}
