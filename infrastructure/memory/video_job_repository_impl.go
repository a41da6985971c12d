package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"docreel/domain/models"
	"docreel/domain/repositories"
)

// VideoJobRepositoryImpl คือ in-memory registry ของ video generation jobs
type VideoJobRepositoryImpl struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*models.VideoJob
}

func NewVideoJobRepository() repositories.VideoJobRepository {
	return &VideoJobRepositoryImpl{
		jobs: make(map[uuid.UUID]*models.VideoJob),
	}
}

func (r *VideoJobRepositoryImpl) Save(ctx context.Context, job *models.VideoJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs[job.ID] = job
	return nil
}

func (r *VideoJobRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.VideoJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, repositories.ErrVideoJobNotFound
	}
	out := *job
	return &out, nil
}

func (r *VideoJobRepositoryImpl) Update(ctx context.Context, id uuid.UUID, fn func(job *models.VideoJob)) (*models.VideoJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, repositories.ErrVideoJobNotFound
	}
	fn(job)
	out := *job
	return &out, nil
}
