package serviceimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"docreel/domain/models"
	"docreel/domain/ports"
	"docreel/domain/repositories"
	"docreel/domain/services"
	"docreel/pkg/logger"
	"docreel/pkg/progress"
)

// progress โดยประมาณเมื่อ provider บอกแค่ว่า "กำลังทำ"
const inProgressEstimate = 50

type VideoServiceImpl struct {
	sessionRepo repositories.SessionRepository
	jobRepo     repositories.VideoJobRepository
	provider    ports.VideoProviderPort
	duration    int

	// เปลี่ยนได้ใน test เพื่อคุม mock progression
	now func() time.Time
}

func NewVideoService(
	sessionRepo repositories.SessionRepository,
	jobRepo repositories.VideoJobRepository,
	provider ports.VideoProviderPort,
	defaultDuration int,
) services.VideoService {
	if defaultDuration <= 0 {
		defaultDuration = 5
	}
	return &VideoServiceImpl{
		sessionRepo: sessionRepo,
		jobRepo:     jobRepo,
		provider:    provider,
		duration:    defaultDuration,
		now:         time.Now,
	}
}

// RequestVideo ส่งงานเข้า provider แล้วคืน job สำหรับ poll
// provider ล่ม/ไม่ได้ config → job เข้าสู่ mock progression แทน ไม่ error
func (s *VideoServiceImpl) RequestVideo(ctx context.Context, chunkID uuid.UUID, req ports.VideoRequest) (*models.VideoJob, error) {
	session, _, err := s.sessionRepo.FindChunk(ctx, chunkID)
	if err != nil {
		return nil, err
	}

	if req.Duration <= 0 {
		req.Duration = s.duration
	}

	generating := models.ChunkStatusGeneratingVideo
	if _, err := s.sessionRepo.UpdateChunk(ctx, chunkID, repositories.ChunkUpdate{Status: &generating}); err != nil {
		return nil, err
	}

	if err := s.sessionRepo.UpdateStatus(ctx, session.ID, models.SessionStatusGenerating); err != nil {
		logger.WarnContext(ctx, "Failed to update session status", "session_id", session.ID, "error", err)
	}

	job := &models.VideoJob{
		ID:        uuid.New(),
		ChunkID:   chunkID,
		Status:    models.JobStatusPending,
		Progress:  0,
		CreatedAt: s.now(),
	}

	if s.provider.IsConfigured() {
		result, err := s.provider.Generate(ctx, req)
		if err != nil {
			// ปล่อยให้ job เข้าสู่ mock progression
			logger.WarnContext(ctx, "Video provider submit failed, using mock progression",
				"chunk_id", chunkID,
				"error", err,
			)
		} else {
			job.ProviderRequestID = result.RequestID
			status, prog := MapProviderStatus(result.Status)
			job.Status = status
			job.Progress = prog
			if status == models.JobStatusCompleted {
				job.VideoURL = result.VideoURL
			}
		}
	}

	if err := s.jobRepo.Save(ctx, job); err != nil {
		return nil, err
	}

	tracker := progress.GetTracker()
	tracker.Start(session.ID.String(), chunkID.String(), progress.ProgressStageVideo, "Generating video")

	// provider ตอบ completed ทันที (synchronous) ก็ propagate เลย
	if job.Status == models.JobStatusCompleted {
		s.propagateCompletion(ctx, job)
	}

	return job, nil
}

// PollStatus ดึงสถานะล่าสุด — idempotent, terminal state sticky
func (s *VideoServiceImpl) PollStatus(ctx context.Context, jobID uuid.UUID) (*models.VideoJob, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status.IsTerminal() {
		return job, nil
	}

	status, prog, videoURL := s.observe(ctx, job)

	updated, err := s.jobRepo.Update(ctx, jobID, func(j *models.VideoJob) {
		// terminal แล้วห้ามแก้ — poll อื่นอาจชิงปิดไปก่อน
		if j.Status.IsTerminal() {
			return
		}
		j.Status = status
		if prog > j.Progress {
			j.Progress = prog
		}
		if videoURL != "" {
			j.VideoURL = videoURL
		}
	})
	if err != nil {
		return nil, err
	}

	if updated.Status == models.JobStatusCompleted {
		s.propagateCompletion(ctx, updated)
	}

	return updated, nil
}

// observe ถาม provider ถ้า poll ได้ ไม่งั้นใช้ mock progression
func (s *VideoServiceImpl) observe(ctx context.Context, job *models.VideoJob) (models.JobStatus, int, string) {
	if s.provider.IsConfigured() && job.ProviderRequestID != "" {
		result, err := s.provider.GetStatus(ctx, job.ProviderRequestID)
		if err == nil {
			status, prog := MapProviderStatus(result.Status)
			return status, prog, result.VideoURL
		}
		logger.WarnContext(ctx, "Video provider status check failed, using mock progression",
			"job_id", job.ID,
			"error", err,
		)
	}
	return s.mockProgression(job)
}

// mockProgression จำลอง progress ~1% ต่อวินาทีจากเวลาสร้าง job
func (s *VideoServiceImpl) mockProgression(job *models.VideoJob) (models.JobStatus, int, string) {
	elapsed := int(s.now().Sub(job.CreatedAt).Seconds())
	if elapsed >= 100 {
		return models.JobStatusCompleted, 100,
			fmt.Sprintf("https://mock-cdn.example.com/videos/%s.mp4", job.ID)
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return models.JobStatusProcessing, elapsed, ""
}

// propagateCompletion เขียน videoUrl/video_ready กลับไปที่ chunk
// chunk อาจถูกลบไปแล้ว — not found ไม่ใช่ fault
func (s *VideoServiceImpl) propagateCompletion(ctx context.Context, job *models.VideoJob) {
	ready := models.ChunkStatusVideoReady
	_, err := s.sessionRepo.UpdateChunk(ctx, job.ChunkID, repositories.ChunkUpdate{
		VideoURL: &job.VideoURL,
		Status:   &ready,
	})
	if err != nil {
		logger.Warn("Chunk gone before video completion propagated",
			"chunk_id", job.ChunkID,
			"job_id", job.ID,
		)
		return
	}

	progress.GetTracker().Complete(job.ChunkID.String(), "Video ready")
}

func (s *VideoServiceImpl) TestConnection(ctx context.Context) bool {
	return s.provider.TestConnection(ctx)
}

// MapProviderStatus map vocabulary ของ provider เป็นสถานะ canonical
func MapProviderStatus(providerStatus string) (models.JobStatus, int) {
	switch providerStatus {
	case ports.ProviderStatusInProgress:
		return models.JobStatusProcessing, inProgressEstimate
	case ports.ProviderStatusCompleted:
		return models.JobStatusCompleted, 100
	case ports.ProviderStatusFailed:
		return models.JobStatusFailed, 0
	default:
		return models.JobStatusPending, 0
	}
}
