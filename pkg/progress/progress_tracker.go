package progress

import (
	"sync"

	websocketManager "docreel/infrastructure/websocket"
	"docreel/pkg/logger"
)

// ProgressStage ขั้นตอนของ pipeline
type ProgressStage string

const (
	ProgressStageScript ProgressStage = "script"
	ProgressStageVideo  ProgressStage = "video"
	ProgressStageExport ProgressStage = "export"
)

// ProgressStatus สถานะของ progress
type ProgressStatus string

const (
	ProgressStatusStarted    ProgressStatus = "started"
	ProgressStatusProcessing ProgressStatus = "processing"
	ProgressStatusCompleted  ProgressStatus = "completed"
	ProgressStatusFailed     ProgressStatus = "failed"
)

// ProgressData ข้อมูล progress ที่ส่งไปให้ client ผ่าน WebSocket
type ProgressData struct {
	SessionID    string         `json:"sessionId"`
	ChunkID      string         `json:"chunkId,omitempty"`
	JobID        string         `json:"jobId,omitempty"`
	Stage        ProgressStage  `json:"stage"`
	Status       ProgressStatus `json:"status"`
	Progress     int            `json:"progress"` // 0-100
	Message      string         `json:"message"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
}

// ProgressTracker เก็บ progress ล่าสุดของแต่ละงานและ broadcast ไปยัง session room
type ProgressTracker struct {
	mutex    sync.RWMutex
	progress map[string]*ProgressData // key: chunkID หรือ jobID
}

var tracker *ProgressTracker
var once sync.Once

// GetTracker returns singleton instance of ProgressTracker
func GetTracker() *ProgressTracker {
	once.Do(func() {
		tracker = &ProgressTracker{
			progress: make(map[string]*ProgressData),
		}
	})
	return tracker
}

// Start เริ่มต้น tracking งานของ stage หนึ่ง
func (t *ProgressTracker) Start(sessionID, key string, stage ProgressStage, message string) {
	data := &ProgressData{
		SessionID: sessionID,
		Stage:     stage,
		Status:    ProgressStatusStarted,
		Progress:  0,
		Message:   message,
	}
	switch stage {
	case ProgressStageExport:
		data.JobID = key
	default:
		data.ChunkID = key
	}

	t.mutex.Lock()
	t.progress[key] = data
	snapshot := *data
	t.mutex.Unlock()

	t.notify(snapshot)
}

// Update อัพเดท progress ระหว่างทำงาน
func (t *ProgressTracker) Update(key string, progress int, message string) {
	t.mutex.Lock()
	data, ok := t.progress[key]
	var snapshot ProgressData
	if ok {
		data.Progress = progress
		data.Status = ProgressStatusProcessing
		data.Message = message
		snapshot = *data
	}
	t.mutex.Unlock()

	if ok {
		t.notify(snapshot)
	}
}

// Complete งานเสร็จสิ้น
func (t *ProgressTracker) Complete(key, message string) {
	t.mutex.Lock()
	data, ok := t.progress[key]
	var snapshot ProgressData
	if ok {
		data.Progress = 100
		data.Status = ProgressStatusCompleted
		data.Message = message
		snapshot = *data
	}
	t.mutex.Unlock()

	if ok {
		t.notify(snapshot)
	}

	t.cleanup(key)
}

// Fail บันทึกความล้มเหลวและ broadcast ครั้งสุดท้าย
func (t *ProgressTracker) Fail(key, errorMessage string) {
	t.mutex.Lock()
	data, ok := t.progress[key]
	var snapshot ProgressData
	if ok {
		data.Status = ProgressStatusFailed
		data.ErrorMessage = errorMessage
		data.Message = "failed"
		snapshot = *data
	}
	t.mutex.Unlock()

	if ok {
		t.notify(snapshot)
	}

	t.cleanup(key)
}

// GetProgress ดึง progress ปัจจุบัน (คืน copy กันผู้เรียกแก้ state ใน map)
func (t *ProgressTracker) GetProgress(key string) *ProgressData {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	if data, ok := t.progress[key]; ok {
		snapshot := *data
		return &snapshot
	}
	return nil
}

// notify broadcast ไปยัง room ของ session ที่เป็นเจ้าของงาน
// รับ copy มาเสมอ — struct ใน map ถูก mutate ใต้ mutex ตลอดเวลา
func (t *ProgressTracker) notify(data ProgressData) {
	if websocketManager.Manager == nil {
		logger.Warn("WebSocket Manager is nil, cannot broadcast progress",
			"session_id", data.SessionID,
		)
		return
	}

	logger.Debug("Broadcasting pipeline progress",
		"session_id", data.SessionID,
		"stage", data.Stage,
		"status", data.Status,
		"progress", data.Progress,
	)

	websocketManager.Manager.BroadcastToSession(data.SessionID, "pipeline_progress", data)
}

// cleanup ลบ progress data หลังจากเสร็จหรือ fail
func (t *ProgressTracker) cleanup(key string) {
	go func() {
		t.mutex.Lock()
		delete(t.progress, key)
		t.mutex.Unlock()
	}()
}
