package serviceimpl

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"docreel/domain/models"
	"docreel/domain/ports"
	"docreel/domain/repositories"
	"docreel/domain/services"
	"docreel/pkg/logger"
	"docreel/pkg/progress"
)

// Fallback script constants
const (
	fallbackTitleMax   = 50
	fallbackSegmentMax = 200
	fallbackMaxChunks  = 5

	fallbackCameraDirection = "Direct eye contact with camera, natural gestures when emphasizing points"
	fallbackEnvironment     = "Well-lit office or home setting with soft, natural lighting"
)

type ScriptServiceImpl struct {
	sessionRepo repositories.SessionRepository
	provider    ports.ScriptProviderPort
	timeout     time.Duration
}

func NewScriptService(
	sessionRepo repositories.SessionRepository,
	provider ports.ScriptProviderPort,
	timeout time.Duration,
) services.ScriptService {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ScriptServiceImpl{
		sessionRepo: sessionRepo,
		provider:    provider,
		timeout:     timeout,
	}
}

// GenerateForChunk ลอง primary provider ก่อน ถ้า fail/timeout ใช้ fallback
// error จาก provider ไม่มีวันไปถึง caller — มีแค่ chunk not found เท่านั้น
func (s *ScriptServiceImpl) GenerateForChunk(ctx context.Context, chunkID uuid.UUID, content string) (*models.Script, error) {
	session, chunk, err := s.sessionRepo.FindChunk(ctx, chunkID)
	if err != nil {
		return nil, err
	}
	if content == "" {
		content = chunk.Content
	}

	scripting := models.ChunkStatusScripting
	if _, err := s.sessionRepo.UpdateChunk(ctx, chunkID, repositories.ChunkUpdate{Status: &scripting}); err != nil {
		return nil, err
	}

	// session เข้าสู่ script stage ตั้งแต่ chunk แรกที่ generate
	if err := s.sessionRepo.UpdateStatus(ctx, session.ID, models.SessionStatusScripting); err != nil {
		logger.WarnContext(ctx, "Failed to update session status", "session_id", session.ID, "error", err)
	}

	tracker := progress.GetTracker()
	tracker.Start(session.ID.String(), chunkID.String(), progress.ProgressStageScript, "Generating script")

	script := s.generate(ctx, content)

	ready := models.ChunkStatusScriptReady
	if _, err := s.sessionRepo.UpdateChunk(ctx, chunkID, repositories.ChunkUpdate{
		Script: script,
		Status: &ready,
	}); err != nil {
		tracker.Fail(chunkID.String(), err.Error())
		return nil, err
	}

	tracker.Complete(chunkID.String(), "Script ready")
	return script, nil
}

func (s *ScriptServiceImpl) generate(ctx context.Context, content string) *models.Script {
	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	script, err := s.provider.GenerateScript(genCtx, content)
	if err != nil {
		logger.WarnContext(ctx, "Primary script generation failed, using fallback", "error", err)
		return GenerateFallbackScript(content)
	}
	return script
}

func (s *ScriptServiceImpl) GetScript(ctx context.Context, chunkID uuid.UUID) (*models.Script, error) {
	_, chunk, err := s.sessionRepo.FindChunk(ctx, chunkID)
	if err != nil {
		return nil, err
	}
	if chunk.Script == nil {
		return nil, repositories.ErrChunkNotFound
	}
	return chunk.Script, nil
}

// UpdateScript เขียนทับ script ด้วยมือ — chunk ไป script_ready เสมอ
func (s *ScriptServiceImpl) UpdateScript(ctx context.Context, chunkID uuid.UUID, script *models.Script) error {
	ready := models.ChunkStatusScriptReady
	_, err := s.sessionRepo.UpdateChunk(ctx, chunkID, repositories.ChunkUpdate{
		Script: script,
		Status: &ready,
	})
	return err
}

func (s *ScriptServiceImpl) TestConnection(ctx context.Context) bool {
	return s.provider.TestConnection(ctx)
}

// GenerateFallbackScript สร้าง script แบบ deterministic จาก content ตรงๆ
// ใช้เมื่อ primary path ล้มเหลว — ผลลัพธ์ต้อง valid เสมอ ไม่ว่า input เป็นอะไร
func GenerateFallbackScript(content string) *models.Script {
	var sentences []string
	for _, s := range splitSentences(content) {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}

	title := "Main Topic"
	if len(sentences) > 0 {
		runes := []rune(sentences[0])
		if len(runes) > fallbackTitleMax {
			runes = runes[:fallbackTitleMax]
		}
		if t := strings.TrimSpace(string(runes)); t != "" {
			title = t
		}
	}

	// pack ประโยคแบบ greedy — flush ก่อนจะเกิน budget เสมอ
	var chunks []string
	current := ""
	for _, sentence := range sentences {
		if len(current)+len(sentence) > fallbackSegmentMax && len(current) > 0 {
			chunks = append(chunks, strings.TrimSpace(current)+".")
			current = sentence
		} else {
			if current != "" {
				current += " "
			}
			current += sentence
		}
	}
	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, strings.TrimSpace(current)+".")
	}

	if len(chunks) > fallbackMaxChunks {
		chunks = chunks[:fallbackMaxChunks]
	}

	return &models.Script{
		Title:           title,
		ScriptChunks:    chunks,
		CameraDirection: fallbackCameraDirection,
		Environment:     fallbackEnvironment,
	}
}

func splitSentences(content string) []string {
	return strings.FieldsFunc(content, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
}
