package videogen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"docreel/domain/ports"
	"docreel/pkg/config"
	"docreel/pkg/logger"
)

// FalClient คุยกับ fal.ai queue API ตรงๆ ผ่าน HTTP
// submit ที่ POST {base}/{model} แล้ว poll ผ่าน request id ที่ได้กลับมา
type FalClient struct {
	baseURL        string
	apiKey         string
	model          string
	httpClient     *http.Client
	downloadClient *http.Client
}

func NewFalClient(cfg config.VideoConfig) ports.VideoProviderPort {
	return &FalClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		// Client.Timeout ครอบการอ่าน body ทั้งก้อน — ไฟล์วิดีโอใหญ่
		// stream เกิน 30 วิแน่ๆ เลยต้องใช้ client แยกที่พึ่ง context แทน
		downloadClient: &http.Client{},
	}
}

type submitRequest struct {
	Prompt      string `json:"prompt"`
	Duration    int    `json:"duration"`
	AspectRatio string `json:"aspect_ratio"`
}

type submitResponse struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type resultResponse struct {
	Video struct {
		URL string `json:"url"`
	} `json:"video"`
}

func (c *FalClient) Generate(ctx context.Context, req ports.VideoRequest) (*ports.VideoGenerationResult, error) {
	prompt := fmt.Sprintf("%s. Camera: %s. Setting: %s", req.Script, req.CameraDirection, req.Environment)

	duration := req.Duration
	if duration <= 0 {
		duration = 5
	}

	body, err := json.Marshal(submitRequest{
		Prompt:      prompt,
		Duration:    duration,
		AspectRatio: "16:9",
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("submit request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return nil, fmt.Errorf("submit request returned status %d", resp.StatusCode)
	}

	var submitted submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&submitted); err != nil {
		return nil, fmt.Errorf("failed to decode submit response: %w", err)
	}

	logger.Info("Video generation request submitted",
		"request_id", submitted.RequestID,
		"model", c.model,
	)

	return &ports.VideoGenerationResult{
		RequestID: submitted.RequestID,
		Status:    submitted.Status,
	}, nil
}

func (c *FalClient) GetStatus(ctx context.Context, requestID string) (*ports.VideoGenerationResult, error) {
	url := fmt.Sprintf("%s/%s/requests/%s/status", c.baseURL, c.model, requestID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status request returned status %d", resp.StatusCode)
	}

	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode status response: %w", err)
	}

	result := &ports.VideoGenerationResult{
		RequestID: requestID,
		Status:    status.Status,
	}

	// เสร็จแล้วต้องไปดึง result อีก endpoint เพื่อเอา video URL
	if status.Status == ports.ProviderStatusCompleted {
		videoURL, err := c.fetchResult(ctx, requestID)
		if err != nil {
			return nil, err
		}
		result.VideoURL = videoURL
	}

	return result, nil
}

func (c *FalClient) fetchResult(ctx context.Context, requestID string) (string, error) {
	url := fmt.Sprintf("%s/%s/requests/%s", c.baseURL, c.model, requestID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("result request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("result request returned status %d", resp.StatusCode)
	}

	var result resultResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode result response: %w", err)
	}
	return result.Video.URL, nil
}

func (c *FalClient) Download(ctx context.Context, videoURL string) (io.ReadCloser, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		return nil, err
	}

	// ไม่ใส่ auth header — video URL เป็น CDN URL
	resp, err := c.downloadClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("video download failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("video download returned status %d", resp.StatusCode)
	}

	return resp.Body, nil
}

func (c *FalClient) IsConfigured() bool {
	return c.apiKey != ""
}

// TestConnection ยิง status ของ request id ปลอม
// ได้ 404 ก็ถือว่า API ใช้งานได้ (request ไม่มีจริงแต่ endpoint ตอบ)
func (c *FalClient) TestConnection(ctx context.Context) bool {
	if !c.IsConfigured() {
		return false
	}

	url := fmt.Sprintf("%s/%s/requests/connection-probe/status", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Warn("Video provider not reachable, mock progression will be used", "error", err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNotFound
}

func (c *FalClient) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Key "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
}
