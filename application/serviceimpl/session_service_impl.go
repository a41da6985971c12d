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
	"docreel/pkg/segmenter"
)

type SessionServiceImpl struct {
	sessionRepo repositories.SessionRepository
	parser      ports.DocumentParserPort
}

func NewSessionService(
	sessionRepo repositories.SessionRepository,
	parser ports.DocumentParserPort,
) services.SessionService {
	return &SessionServiceImpl{
		sessionRepo: sessionRepo,
		parser:      parser,
	}
}

func (s *SessionServiceImpl) CreateFromText(ctx context.Context, fileName, text string) (*models.Session, error) {
	if strings.TrimSpace(text) == "" {
		return nil, services.ErrEmptyDocument
	}

	chunks := segmenter.Segment(text)
	if len(chunks) == 0 {
		return nil, services.ErrEmptyDocument
	}

	session := &models.Session{
		ID:        uuid.New(),
		FileName:  fileName,
		Chunks:    chunks,
		CreatedAt: time.Now(),
		Status:    models.SessionStatusChunking,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Session created",
		"session_id", session.ID,
		"file_name", fileName,
		"chunks", len(chunks),
	)

	return s.sessionRepo.GetByID(ctx, session.ID)
}

func (s *SessionServiceImpl) CreateFromFile(ctx context.Context, fileName, contentType string, data []byte) (*models.Session, error) {
	text, err := s.parser.Parse(fileName, contentType, data)
	if err != nil {
		return nil, err
	}
	return s.CreateFromText(ctx, fileName, text)
}

func (s *SessionServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	return s.sessionRepo.GetByID(ctx, id)
}

func (s *SessionServiceImpl) GetChunk(ctx context.Context, chunkID uuid.UUID) (*models.Chunk, error) {
	_, chunk, err := s.sessionRepo.FindChunk(ctx, chunkID)
	if err != nil {
		return nil, err
	}
	return chunk, nil
}

func (s *SessionServiceImpl) UpdateChunkContent(ctx context.Context, chunkID uuid.UUID, update repositories.ChunkUpdate) (*models.Chunk, error) {
	// manual edit แก้ได้แค่ title/content — script/video/status เป็นของ stage อื่น
	return s.sessionRepo.UpdateChunk(ctx, chunkID, repositories.ChunkUpdate{
		Title:   update.Title,
		Content: update.Content,
	})
}

func (s *SessionServiceImpl) Reorder(ctx context.Context, sessionID uuid.UUID, chunkIDs []uuid.UUID) ([]*models.Chunk, error) {
	chunks, err := s.sessionRepo.Reorder(ctx, sessionID, chunkIDs)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Chunks reordered",
		"session_id", sessionID,
		"chunks", len(chunks),
	)
	return chunks, nil
}

func (s *SessionServiceImpl) DeleteChunk(ctx context.Context, chunkID uuid.UUID) error {
	if err := s.sessionRepo.DeleteChunk(ctx, chunkID); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Chunk deleted", "chunk_id", chunkID)
	return nil
}
