package serviceimpl

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"docreel/domain/models"
	"docreel/domain/ports"
	"docreel/domain/repositories"
	"docreel/domain/services"
	"docreel/pkg/config"
	"docreel/pkg/logger"
	"docreel/pkg/progress"
	"docreel/pkg/scheduler"
	"docreel/pkg/utils"
)

const retentionJobID = "export-retention-sweep"

// พื้นที่ขั้นต่ำโดยประมาณต่อหนึ่ง export
const bytesPerGB = 1024 * 1024 * 1024

type ExportServiceImpl struct {
	sessionRepo repositories.SessionRepository
	exportRepo  repositories.ExportJobRepository
	provider    ports.VideoProviderPort
	composer    ports.ComposerPort
	storage     ports.StoragePort
	scheduler   scheduler.JobScheduler
	cfg         config.ExportConfig

	// เปลี่ยนได้ใน test เพื่อคุม retention sweep
	now func() time.Time
}

func NewExportService(
	sessionRepo repositories.SessionRepository,
	exportRepo repositories.ExportJobRepository,
	provider ports.VideoProviderPort,
	composer ports.ComposerPort,
	storage ports.StoragePort,
	jobScheduler scheduler.JobScheduler,
	cfg config.ExportConfig,
) services.ExportService {
	if cfg.RetentionWindow <= 0 {
		cfg.RetentionWindow = 24 * time.Hour
	}
	if cfg.SweepCron == "" {
		cfg.SweepCron = "0 * * * *"
	}
	return &ExportServiceImpl{
		sessionRepo: sessionRepo,
		exportRepo:  exportRepo,
		provider:    provider,
		composer:    composer,
		storage:     storage,
		scheduler:   jobScheduler,
		cfg:         cfg,
		now:         time.Now,
	}
}

// StartExport ตรวจ precondition ก่อน — ไม่ผ่านคือ reject โดยไม่สร้าง job
// ผ่านแล้วงานจริงวิ่งใน goroutine, caller ได้ job กลับไป poll เอง
func (s *ExportServiceImpl) StartExport(ctx context.Context, sessionID uuid.UUID, opts models.ExportOptions) (*models.ExportJob, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// ทุก chunk ต้อง video_ready และมี videoUrl จริง
	for _, chunk := range session.Chunks {
		if chunk.Status != models.ChunkStatusVideoReady || chunk.VideoURL == "" {
			return nil, services.ErrExportNotReady
		}
	}
	if len(session.Chunks) == 0 {
		return nil, services.ErrExportNotReady
	}

	// ตรวจพื้นที่ disk ก่อนเริ่ม — ตรวจไม่ได้ไม่ถือว่า fail
	if s.cfg.MinFreeSpaceGB > 0 {
		required := int64(s.cfg.MinFreeSpaceGB) * bytesPerGB
		ok, info, err := utils.CheckDiskSpace(s.cfg.TempPath, required)
		if err != nil {
			logger.WarnContext(ctx, "Disk space check failed, continuing", "error", err)
		} else if !ok {
			return nil, utils.NewDiskSpaceError(required, info.Free)
		}
	}

	job := &models.ExportJob{
		ID:        uuid.New(),
		SessionID: sessionID,
		Status:    models.JobStatusPending,
		Progress:  0,
		Options:   opts,
		StartTime: s.now(),
	}
	if err := s.exportRepo.Save(ctx, job); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Export started",
		"export_id", job.ID,
		"session_id", sessionID,
		"chunks", len(session.Chunks),
	)

	progress.GetTracker().Start(sessionID.String(), job.ID.String(), progress.ProgressStageExport, "Export started")

	go s.process(job.ID, session, opts)

	return job, nil
}

// process ทำงานทั้งหมดของ export job หนึ่งตัว
// panic ที่ไหนก็ตามจบที่ status failed — process หลักห้ามล้ม
func (s *ExportServiceImpl) process(jobID uuid.UUID, session *models.Session, opts models.ExportOptions) {
	ctx := context.Background()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Export panicked", "export_id", jobID, "panic", r)
			s.fail(ctx, jobID, session.ID, fmt.Sprintf("internal error: %v", r))
		}
	}()

	s.setStatus(ctx, jobID, models.JobStatusProcessing)

	// working directory เฉพาะของ job นี้
	workDir := s.workDir(jobID)
	if err := os.MkdirAll(workDir, 0755); err != nil {
		s.fail(ctx, jobID, session.ID, fmt.Sprintf("failed to create working directory: %v", err))
		return
	}
	s.setProgress(ctx, jobID, 10, "Working directory ready")

	// ดึงวิดีโอของทุก chunk ตามลำดับใน session
	staged := make([]string, 0, len(session.Chunks))
	for i, chunk := range session.Chunks {
		localPath := filepath.Join(workDir, fmt.Sprintf("segment_%03d.mp4", i))
		if err := s.stageVideo(ctx, chunk.VideoURL, localPath); err != nil {
			s.fail(ctx, jobID, session.ID, fmt.Sprintf("failed to fetch video for chunk %s: %v", chunk.ID, err))
			s.cleanupWorkDir(workDir)
			return
		}
		staged = append(staged, localPath)
	}
	s.setProgress(ctx, jobID, 20, "Chunk videos staged")

	// intro/outro แทรกหัวท้าย playlist
	playlist := staged
	if opts.IncludeIntro {
		introPath := filepath.Join(workDir, "intro.mp4")
		title := strings.TrimSuffix(session.FileName, filepath.Ext(session.FileName))
		if err := s.composer.SynthesizeIntro(ctx, title, introPath); err != nil {
			s.fail(ctx, jobID, session.ID, fmt.Sprintf("intro synthesis failed: %v", err))
			s.cleanupWorkDir(workDir)
			return
		}
		playlist = append([]string{introPath}, playlist...)
	}
	s.setProgress(ctx, jobID, 50, "Playlist assembled")

	if opts.IncludeOutro {
		outroPath := filepath.Join(workDir, "outro.mp4")
		if err := s.composer.SynthesizeOutro(ctx, outroPath); err != nil {
			s.fail(ctx, jobID, session.ID, fmt.Sprintf("outro synthesis failed: %v", err))
			s.cleanupWorkDir(workDir)
			return
		}
		playlist = append(playlist, outroPath)
	}
	s.setProgress(ctx, jobID, 60, "Intro/outro ready")

	concatPath := filepath.Join(workDir, "concat.mp4")
	if err := s.composer.Concat(ctx, playlist, concatPath); err != nil {
		s.fail(ctx, jobID, session.ID, fmt.Sprintf("concatenation failed: %v", err))
		s.cleanupWorkDir(workDir)
		return
	}
	s.setProgress(ctx, jobID, 70, "Videos concatenated")

	finalPath := concatPath
	if opts.BackgroundMusic != "" {
		if musicPath, ok := s.findMusicTrack(opts.BackgroundMusic); ok {
			mixedPath := filepath.Join(workDir, "mixed.mp4")
			if err := s.composer.MixAudio(ctx, concatPath, musicPath, mixedPath); err != nil {
				s.fail(ctx, jobID, session.ID, fmt.Sprintf("audio mix failed: %v", err))
				s.cleanupWorkDir(workDir)
				return
			}
			finalPath = mixedPath
		} else {
			logger.Warn("Background music track not found, skipping mix",
				"export_id", jobID,
				"track", opts.BackgroundMusic,
			)
		}
	}
	s.setProgress(ctx, jobID, 90, "Composition finished")

	// ย้าย artifact ไปชื่อสุดท้ายแล้วส่งขึ้น storage
	artifactName := s.artifactName(session.FileName)
	artifactPath := filepath.Join(workDir, artifactName)
	if finalPath != artifactPath {
		if err := os.Rename(finalPath, artifactPath); err != nil {
			s.fail(ctx, jobID, session.ID, fmt.Sprintf("failed to finalize artifact: %v", err))
			s.cleanupWorkDir(workDir)
			return
		}
	}

	downloadURL, err := s.publishArtifact(jobID, artifactPath, artifactName)
	if err != nil {
		s.fail(ctx, jobID, session.ID, fmt.Sprintf("failed to publish artifact: %v", err))
		s.cleanupWorkDir(workDir)
		return
	}

	completedAt := s.now()
	s.exportRepo.Update(ctx, jobID, func(j *models.ExportJob) {
		if j.Status.IsTerminal() {
			return
		}
		j.Status = models.JobStatusCompleted
		j.Progress = 100
		j.OutputPath = artifactPath
		j.DownloadURL = downloadURL
		j.CompletedAt = &completedAt
	})

	// session จบ lifecycle ที่ completed เมื่อ export สำเร็จ
	if err := s.sessionRepo.UpdateStatus(ctx, session.ID, models.SessionStatusCompleted); err != nil {
		logger.Warn("Failed to update session status", "session_id", session.ID, "error", err)
	}

	progress.GetTracker().Complete(jobID.String(), "Export completed")
	logger.Info("Export completed", "export_id", jobID, "artifact", artifactPath)
}

func (s *ExportServiceImpl) GetStatus(ctx context.Context, exportID uuid.UUID) (*models.ExportJob, error) {
	return s.exportRepo.GetByID(ctx, exportID)
}

// OpenArtifact เปิดไฟล์ผลลัพธ์ — ใช้ได้เฉพาะ job ที่ completed แล้ว
func (s *ExportServiceImpl) OpenArtifact(ctx context.Context, exportID uuid.UUID) (io.ReadCloser, string, error) {
	job, err := s.exportRepo.GetByID(ctx, exportID)
	if err != nil {
		return nil, "", err
	}
	if job.Status != models.JobStatusCompleted || job.OutputPath == "" {
		return nil, "", services.ErrExportNotReady
	}

	f, err := os.Open(job.OutputPath)
	if err != nil {
		return nil, "", fmt.Errorf("artifact missing: %w", err)
	}
	return f, filepath.Base(job.OutputPath), nil
}

// RunRetentionSweep ลบ jobs ที่เก่ากว่า retention window พร้อม artifacts
// deletion error แค่ log — sweep รอบถัดไปลองใหม่เอง
func (s *ExportServiceImpl) RunRetentionSweep(ctx context.Context) {
	jobs, err := s.exportRepo.List(ctx)
	if err != nil {
		logger.Error("Retention sweep could not list export jobs", "error", err)
		return
	}

	cutoff := s.now().Add(-s.cfg.RetentionWindow)
	removed := 0
	for _, job := range jobs {
		if !job.StartTime.Before(cutoff) {
			continue
		}

		// ลบ artifact บน storage (best-effort)
		if job.OutputPath != "" {
			key := s.storageKey(job.ID, filepath.Base(job.OutputPath))
			if err := s.storage.DeleteFile(key); err != nil {
				logger.Warn("Failed to delete stored artifact", "export_id", job.ID, "error", err)
			}
		}
		s.cleanupWorkDir(s.workDir(job.ID))

		if err := s.exportRepo.Delete(ctx, job.ID); err != nil {
			logger.Warn("Failed to delete export job record", "export_id", job.ID, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		logger.Info("Retention sweep finished", "removed", removed, "scanned", len(jobs))
	}
}

// RegisterRetentionJob ลงทะเบียน sweep กับ scheduler ตาม cron ใน config
func (s *ExportServiceImpl) RegisterRetentionJob() error {
	return s.scheduler.AddJob(retentionJobID, s.cfg.SweepCron, func() {
		s.RunRetentionSweep(context.Background())
	})
}

// ========== helpers ==========

func (s *ExportServiceImpl) workDir(jobID uuid.UUID) string {
	return filepath.Join(s.cfg.TempPath, jobID.String())
}

func (s *ExportServiceImpl) artifactName(fileName string) string {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	name := slug.Make(base)
	if name == "" {
		name = "export"
	}
	return name + ".mp4"
}

func (s *ExportServiceImpl) storageKey(jobID uuid.UUID, artifactName string) string {
	return fmt.Sprintf("exports/%s/%s", jobID, artifactName)
}

// stageVideo ดึงวิดีโอจาก provider URL มาไว้ใน working directory
func (s *ExportServiceImpl) stageVideo(ctx context.Context, videoURL, localPath string) error {
	body, err := s.provider.Download(ctx, videoURL)
	if err != nil {
		return err
	}
	defer body.Close()

	f, err := os.Create(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(localPath)
		return err
	}
	return nil
}

// publishArtifact ส่ง artifact ขึ้น storage แล้วคืน download URL
// local storage เสิร์ฟผ่าน download endpoint, s3 ใช้ URL ของ storage ตรงๆ
func (s *ExportServiceImpl) publishArtifact(jobID uuid.UUID, artifactPath, artifactName string) (string, error) {
	f, err := os.Open(artifactPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	url, err := s.storage.UploadFile(f, s.storageKey(jobID, artifactName), "video/mp4")
	if err != nil {
		return "", err
	}

	if s.storage.GetProviderName() == "s3" {
		return url, nil
	}
	return fmt.Sprintf("/api/v1/exports/download/%s", jobID), nil
}

// findMusicTrack หาไฟล์เพลงใน music directory จากชื่อ track
func (s *ExportServiceImpl) findMusicTrack(track string) (string, bool) {
	name := slug.Make(track)
	for _, ext := range []string{".mp3", ".m4a", ".wav"} {
		candidate := filepath.Join(s.cfg.MusicPath, name+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

func (s *ExportServiceImpl) setStatus(ctx context.Context, jobID uuid.UUID, status models.JobStatus) {
	s.exportRepo.Update(ctx, jobID, func(j *models.ExportJob) {
		if j.Status.IsTerminal() {
			return
		}
		j.Status = status
	})
}

// setProgress เดินหน้าอย่างเดียว — ค่าต่ำกว่าเดิมถูกทิ้ง
func (s *ExportServiceImpl) setProgress(ctx context.Context, jobID uuid.UUID, value int, message string) {
	s.exportRepo.Update(ctx, jobID, func(j *models.ExportJob) {
		if j.Status.IsTerminal() {
			return
		}
		if value > j.Progress {
			j.Progress = value
		}
	})
	progress.GetTracker().Update(jobID.String(), value, message)
}

func (s *ExportServiceImpl) fail(ctx context.Context, jobID, sessionID uuid.UUID, message string) {
	s.exportRepo.Update(ctx, jobID, func(j *models.ExportJob) {
		if j.Status.IsTerminal() {
			return
		}
		j.Status = models.JobStatusFailed
		j.Error = message
	})
	if err := s.sessionRepo.UpdateStatus(ctx, sessionID, models.SessionStatusError); err != nil {
		logger.Warn("Failed to update session status", "session_id", sessionID, "error", err)
	}
	progress.GetTracker().Fail(jobID.String(), message)
	logger.Error("Export failed", "export_id", jobID, "error", message)
}

func (s *ExportServiceImpl) cleanupWorkDir(workDir string) {
	if err := os.RemoveAll(workDir); err != nil {
		logger.Warn("Failed to remove export working directory", "dir", workDir, "error", err)
	}
}
