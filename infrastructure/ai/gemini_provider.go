package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"docreel/domain/models"
	"docreel/domain/ports"
	"docreel/pkg/config"
	"docreel/pkg/logger"
)

// segment ยาวได้ไม่เกินนี้ — เกินจะถูกตัดแล้วเติม ellipsis
const maxSegmentLen = 210

const ellipsis = "..."

var errNoJSON = errors.New("no JSON object found in model response")

// GeminiProvider คือ primary path ของ script generation
// ตอบกลับอาจมี text ห่อ JSON มาด้วย เลยต้อง parse แบบ defensive
// error ทุกชนิดจาก provider จบที่ fallback ของ service — ไม่โยนถึง caller
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, cfg config.ScriptConfig) (ports.ScriptProviderPort, error) {
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, script generation will use fallback only")
		return &GeminiProvider{model: cfg.Model}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  cfg.Model,
	}, nil
}

func (p *GeminiProvider) GenerateScript(ctx context.Context, content string) (*models.Script, error) {
	if p.client == nil {
		return nil, errors.New("script provider not configured")
	}

	prompt := buildPrompt(content)

	model := p.client.GenerativeModel(p.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("generate content failed: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return nil, errors.New("empty model response")
	}

	script, err := parseScriptResponse(text)
	if err != nil {
		return nil, err
	}
	return script, nil
}

// TestConnection รายงานว่า primary path ใช้ได้หรือไม่
// ผลลัพธ์ไม่มีผลต่อ generation — fallback ทำงานเสมอ
func (p *GeminiProvider) TestConnection(ctx context.Context) bool {
	if p.client == nil {
		return false
	}
	model := p.client.GenerativeModel(p.model)
	_, err := model.CountTokens(ctx, genai.Text("ping"))
	if err != nil {
		logger.Warn("Script provider connection test failed", "error", err)
		return false
	}
	return true
}

func buildPrompt(content string) string {
	return fmt.Sprintf(`Rewrite this paragraph into a natural, human-sounding video script in under 210 characters per paragraph.
Tone: Warm, conversational, like an advisor speaking to a smart client.
Avoid jargon, sound natural.
Also suggest a short title and one camera or gesture direction for realism.
Return the result in JSON with "title", "script_chunks", "camera_direction", and "environment".

Content:
%s

Requirements:
- Each script chunk should be under 210 characters
- Break into 3-5 natural speaking segments
- Sound conversational and warm
- Avoid sales-speak or jargon
- Include realistic camera directions
- Suggest appropriate environment setting

Return only valid JSON.`, content)
}

func extractText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}

// rawScript รับ script_chunks เป็น raw ก่อน — model บางทีตอบมาเป็น string เดี่ยว
type rawScript struct {
	Title           string          `json:"title"`
	ScriptChunks    json.RawMessage `json:"script_chunks"`
	CameraDirection string          `json:"camera_direction"`
	Environment     string          `json:"environment"`
}

// parseScriptResponse ดึง JSON object แรกออกจาก text ตอบกลับ
// field ไหนขาดถือว่า invalid ทั้งก้อน (ให้ fallback ทำงานแทน)
func parseScriptResponse(text string) (*models.Script, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, errNoJSON
	}

	var raw rawScript
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON in model response: %w", err)
	}

	if raw.Title == "" || len(raw.ScriptChunks) == 0 || raw.CameraDirection == "" || raw.Environment == "" {
		return nil, errors.New("missing required fields in model response")
	}

	chunks, err := coerceChunks(raw.ScriptChunks)
	if err != nil {
		return nil, err
	}

	for i, chunk := range chunks {
		chunks[i] = TruncateSegment(chunk)
	}

	return &models.Script{
		Title:           raw.Title,
		ScriptChunks:    chunks,
		CameraDirection: raw.CameraDirection,
		Environment:     raw.Environment,
	}, nil
}

// coerceChunks แปลง scalar เป็น singleton list
func coerceChunks(raw json.RawMessage) ([]string, error) {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}, nil
	}

	return nil, errors.New("script_chunks is neither a list nor a string")
}

// TruncateSegment ตัด segment ที่เกิน 210 ตัวอักษรให้เหลือ 210 + ellipsis พอดี
func TruncateSegment(segment string) string {
	runes := []rune(segment)
	if len(runes) <= maxSegmentLen {
		return segment
	}
	return string(runes[:maxSegmentLen]) + ellipsis
}
