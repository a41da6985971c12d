package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"docreel/domain/models"
	"docreel/domain/repositories"
)

// ExportJobRepositoryImpl คือ in-memory registry ของ export jobs
type ExportJobRepositoryImpl struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*models.ExportJob
}

func NewExportJobRepository() repositories.ExportJobRepository {
	return &ExportJobRepositoryImpl{
		jobs: make(map[uuid.UUID]*models.ExportJob),
	}
}

func (r *ExportJobRepositoryImpl) Save(ctx context.Context, job *models.ExportJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs[job.ID] = job
	return nil
}

func (r *ExportJobRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.ExportJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, repositories.ErrExportJobNotFound
	}
	return copyExportJob(job), nil
}

func (r *ExportJobRepositoryImpl) Update(ctx context.Context, id uuid.UUID, fn func(job *models.ExportJob)) (*models.ExportJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, repositories.ErrExportJobNotFound
	}
	fn(job)
	return copyExportJob(job), nil
}

func (r *ExportJobRepositoryImpl) List(ctx context.Context) ([]*models.ExportJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	jobs := make([]*models.ExportJob, 0, len(r.jobs))
	for _, job := range r.jobs {
		jobs = append(jobs, copyExportJob(job))
	}
	return jobs, nil
}

func (r *ExportJobRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[id]; !ok {
		return repositories.ErrExportJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func copyExportJob(j *models.ExportJob) *models.ExportJob {
	out := *j
	if j.CompletedAt != nil {
		completedAt := *j.CompletedAt
		out.CompletedAt = &completedAt
	}
	return &out
}
