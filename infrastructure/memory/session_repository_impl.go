package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"docreel/domain/models"
	"docreel/domain/repositories"
)

// SessionRepositoryImpl เก็บ session ทั้งหมดใน memory (process-lifetime)
// มี secondary index chunkID → sessionID เพื่อให้ FindChunk ไม่ต้อง scan ทุก session
// index ต้องอัปเดตพร้อมกันกับทุก mutation ของ chunk ภายใต้ lock เดียวกัน
type SessionRepositoryImpl struct {
	mu         sync.RWMutex
	sessions   map[uuid.UUID]*models.Session
	chunkIndex map[uuid.UUID]uuid.UUID // chunkID → sessionID
}

func NewSessionRepository() repositories.SessionRepository {
	return &SessionRepositoryImpl{
		sessions:   make(map[uuid.UUID]*models.Session),
		chunkIndex: make(map[uuid.UUID]uuid.UUID),
	}
}

func (r *SessionRepositoryImpl) Create(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = session
	for _, chunk := range session.Chunks {
		r.chunkIndex[chunk.ID] = session.ID
	}
	return nil
}

func (r *SessionRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	return copySession(session), nil
}

func (r *SessionRepositoryImpl) FindChunk(ctx context.Context, chunkID uuid.UUID) (*models.Session, *models.Chunk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessionID, ok := r.chunkIndex[chunkID]
	if !ok {
		return nil, nil, repositories.ErrChunkNotFound
	}
	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, nil, repositories.ErrChunkNotFound
	}

	for _, chunk := range session.Chunks {
		if chunk.ID == chunkID {
			return copySession(session), copyChunk(chunk), nil
		}
	}
	return nil, nil, repositories.ErrChunkNotFound
}

func (r *SessionRepositoryImpl) UpdateChunk(ctx context.Context, chunkID uuid.UUID, update repositories.ChunkUpdate) (*models.Chunk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	chunk, err := r.findChunkLocked(chunkID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		chunk.Title = *update.Title
	}
	if update.Content != nil {
		chunk.Content = *update.Content
	}
	if update.Script != nil {
		chunk.Script = copyScript(update.Script)
	}
	if update.VideoURL != nil {
		chunk.VideoURL = *update.VideoURL
	}
	if update.Status != nil {
		chunk.Status = *update.Status
	}

	return copyChunk(chunk), nil
}

func (r *SessionRepositoryImpl) Reorder(ctx context.Context, sessionID uuid.UUID, chunkIDs []uuid.UUID) ([]*models.Chunk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}

	byID := make(map[uuid.UUID]*models.Chunk, len(session.Chunks))
	for _, chunk := range session.Chunks {
		byID[chunk.ID] = chunk
	}

	// เรียงใหม่ตาม input เฉพาะ id ที่มีจริง — id แปลกปลอมถูกข้ามเงียบๆ
	// list ใหม่คือ input ที่ filter แล้วเท่านั้น: chunk ที่ไม่ถูกอ้างถึงหายไปเลย
	reordered := make([]*models.Chunk, 0, len(chunkIDs))
	seen := make(map[uuid.UUID]bool, len(chunkIDs))
	for _, id := range chunkIDs {
		if chunk, ok := byID[id]; ok && !seen[id] {
			reordered = append(reordered, chunk)
			seen[id] = true
		}
	}
	for _, chunk := range session.Chunks {
		if !seen[chunk.ID] {
			delete(r.chunkIndex, chunk.ID)
		}
	}

	for i, chunk := range reordered {
		chunk.Order = i
	}
	session.Chunks = reordered

	result := make([]*models.Chunk, len(reordered))
	for i, chunk := range reordered {
		result[i] = copyChunk(chunk)
	}
	return result, nil
}

func (r *SessionRepositoryImpl) DeleteChunk(ctx context.Context, chunkID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessionID, ok := r.chunkIndex[chunkID]
	if !ok {
		return repositories.ErrChunkNotFound
	}
	session, ok := r.sessions[sessionID]
	if !ok {
		return repositories.ErrChunkNotFound
	}

	remaining := make([]*models.Chunk, 0, len(session.Chunks))
	found := false
	for _, chunk := range session.Chunks {
		if chunk.ID == chunkID {
			found = true
			continue
		}
		remaining = append(remaining, chunk)
	}
	if !found {
		return repositories.ErrChunkNotFound
	}

	for i, chunk := range remaining {
		chunk.Order = i
	}
	session.Chunks = remaining
	delete(r.chunkIndex, chunkID)

	return nil
}

func (r *SessionRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status models.SessionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return repositories.ErrSessionNotFound
	}
	session.Status = status
	return nil
}

// findChunkLocked ต้องเรียกภายใต้ write lock เท่านั้น
func (r *SessionRepositoryImpl) findChunkLocked(chunkID uuid.UUID) (*models.Chunk, error) {
	sessionID, ok := r.chunkIndex[chunkID]
	if !ok {
		return nil, repositories.ErrChunkNotFound
	}
	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, repositories.ErrChunkNotFound
	}
	for _, chunk := range session.Chunks {
		if chunk.ID == chunkID {
			return chunk, nil
		}
	}
	return nil, repositories.ErrChunkNotFound
}

// ========== copy helpers ==========
// คืน deep copy เสมอ — caller ห้ามเห็น pointer ของจริงใน store

func copySession(s *models.Session) *models.Session {
	out := *s
	out.Chunks = make([]*models.Chunk, len(s.Chunks))
	for i, chunk := range s.Chunks {
		out.Chunks[i] = copyChunk(chunk)
	}
	return &out
}

func copyChunk(c *models.Chunk) *models.Chunk {
	out := *c
	out.Script = copyScript(c.Script)
	return &out
}

func copyScript(s *models.Script) *models.Script {
	if s == nil {
		return nil
	}
	out := *s
	out.ScriptChunks = append([]string(nil), s.ScriptChunks...)
	return &out
}
