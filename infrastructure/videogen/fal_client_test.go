package videogen

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"docreel/domain/ports"
	"docreel/pkg/config"
)

func videoRequestFixture() ports.VideoRequest {
	return ports.VideoRequest{
		Script:          "Hello world",
		CameraDirection: "Direct eye contact",
		Environment:     "Office",
		Duration:        5,
	}
}

func newTestClient(baseURL string) *FalClient {
	return NewFalClient(config.VideoConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "fal-ai/veo3",
	}).(*FalClient)
}

func TestGenerateSubmitsToQueue(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"request_id":"req-42","status":"IN_QUEUE"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.Generate(context.Background(), videoRequestFixture())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.RequestID != "req-42" || result.Status != "IN_QUEUE" {
		t.Errorf("unexpected result: %+v", result)
	}
	if gotPath != "/fal-ai/veo3" {
		t.Errorf("submitted to %q", gotPath)
	}
	if gotAuth != "Key test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
}

func TestDownloadStreamsWithoutAuth(t *testing.T) {
	payload := make([]byte, 64*1024)
	for i := range payload {
		payload[i] = byte(i % 251)
	}

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write(payload)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	body, err := client.Download(context.Background(), server.URL+"/videos/clip.mp4")
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	defer body.Close()

	got, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("reading body failed: %v", err)
	}
	if len(got) != len(payload) {
		t.Errorf("read %d bytes, want %d", len(got), len(payload))
	}
	// CDN URL ไม่ต้องมี credentials ติดไป
	if gotAuth != "" {
		t.Errorf("download sent auth header %q", gotAuth)
	}
}

func TestDownloadClientHasNoOverallTimeout(t *testing.T) {
	client := newTestClient("https://queue.fal.run")

	// ไฟล์ใหญ่ stream นานกว่า 30 วิได้ — ตัดได้ทาง context เท่านั้น
	if client.downloadClient.Timeout != 0 {
		t.Errorf("download client timeout = %s, want none", client.downloadClient.Timeout)
	}
	if client.httpClient.Timeout == 0 {
		t.Error("API client should keep its request timeout")
	}
}

func TestDownloadHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(server.URL)
	if _, err := client.Download(ctx, server.URL); err == nil {
		t.Error("expected error for cancelled context")
	}
}
