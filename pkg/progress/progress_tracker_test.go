package progress

import (
	"fmt"
	"sync"
	"testing"
)

func TestTrackerSnapshotsAreDecoupled(t *testing.T) {
	tr := GetTracker()
	key := "chunk-snapshot"

	tr.Start("session-1", key, ProgressStageVideo, "started")

	before := tr.GetProgress(key)
	if before == nil {
		t.Fatal("expected progress data after Start")
	}

	tr.Update(key, 50, "halfway")

	// snapshot เดิมต้องไม่ขยับตาม state ใน map
	if before.Progress != 0 || before.Status != ProgressStatusStarted {
		t.Errorf("earlier snapshot mutated: progress=%d status=%s", before.Progress, before.Status)
	}

	after := tr.GetProgress(key)
	if after.Progress != 50 || after.Status != ProgressStatusProcessing {
		t.Errorf("unexpected current state: progress=%d status=%s", after.Progress, after.Status)
	}

	// mutate ฝั่งผู้เรียกต้องไม่ทะลุกลับเข้า tracker
	after.Progress = 99
	if got := tr.GetProgress(key); got.Progress != 50 {
		t.Errorf("caller mutation leaked into tracker: %d", got.Progress)
	}
}

func TestTrackerConcurrentUpdates(t *testing.T) {
	tr := GetTracker()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		key := fmt.Sprintf("chunk-concurrent-%d", i)
		tr.Start("session-2", key, ProgressStageScript, "started")

		wg.Add(2)
		go func(key string) {
			defer wg.Done()
			for p := 1; p <= 100; p++ {
				tr.Update(key, p, "working")
			}
		}(key)
		go func(key string) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if data := tr.GetProgress(key); data != nil && data.SessionID != "session-2" {
					t.Errorf("corrupted session id: %q", data.SessionID)
				}
			}
		}(key)
	}
	wg.Wait()
}
