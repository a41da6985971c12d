package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"docreel/pkg/logger"
)

// JobScheduler จัดการ background jobs ตาม cron expression
// ใช้สำหรับ retention sweep ของ export jobs
type JobScheduler interface {
	Start()
	Stop()
	AddJob(id, cronExpr string, task func()) error
	RemoveJob(id string) error
	ListJobs() map[string]*JobInfo
	IsRunning() bool
}

type JobInfo struct {
	ID       string
	CronExpr string
	LastRun  *time.Time
	NextRun  *time.Time
}

type gocronScheduler struct {
	scheduler *gocron.Scheduler
	jobs      map[string]*jobEntry
	mu        sync.RWMutex
	running   bool
}

type jobEntry struct {
	cronExpr string
	job      *gocron.Job
	lastRun  *time.Time
}

func NewJobScheduler() JobScheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	return &gocronScheduler{
		scheduler: s,
		jobs:      make(map[string]*jobEntry),
	}
}

func (s *gocronScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	s.scheduler.StartAsync()
	s.running = true
	logger.Info("Job scheduler started")
}

func (s *gocronScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.scheduler.Stop()
	s.running = false
	logger.Info("Job scheduler stopped")
}

func (s *gocronScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *gocronScheduler) AddJob(id, cronExpr string, task func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; exists {
		return fmt.Errorf("job with ID %s already exists", id)
	}

	job, err := s.scheduler.Cron(cronExpr).Do(func() {
		now := time.Now()
		logger.Info("Executing scheduled job", "job_id", id, "at", now.Format(time.RFC3339))

		s.mu.Lock()
		if entry, exists := s.jobs[id]; exists {
			entry.lastRun = &now
		}
		s.mu.Unlock()

		task()
	})
	if err != nil {
		return fmt.Errorf("failed to create job: %v", err)
	}

	s.jobs[id] = &jobEntry{
		cronExpr: cronExpr,
		job:      job,
	}

	logger.Info("Scheduled job added",
		"job_id", id,
		"cron_expr", cronExpr,
		"next_run", job.NextRun().Format(time.RFC3339))
	return nil
}

func (s *gocronScheduler) RemoveJob(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.jobs[id]
	if !exists {
		return fmt.Errorf("job with ID %s not found", id)
	}

	if entry.job != nil {
		s.scheduler.RemoveByReference(entry.job)
	}

	delete(s.jobs, id)
	return nil
}

func (s *gocronScheduler) ListJobs() map[string]*JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make(map[string]*JobInfo, len(s.jobs))
	for id, entry := range s.jobs {
		info := &JobInfo{
			ID:       id,
			CronExpr: entry.cronExpr,
		}
		if entry.lastRun != nil {
			lastRun := *entry.lastRun
			info.LastRun = &lastRun
		}
		if entry.job != nil {
			nextRun := entry.job.NextRun()
			info.NextRun = &nextRun
		}
		jobs[id] = info
	}
	return jobs
}
