package ai

import (
	"strings"
	"testing"
)

func TestParseScriptResponse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name: "plain JSON",
			input: `{"title":"Savings","script_chunks":["Let's talk about saving."],
				"camera_direction":"Direct eye contact","environment":"Bright office"}`,
		},
		{
			name: "JSON wrapped in prose",
			input: "Here is your script:\n```json\n" +
				`{"title":"Savings","script_chunks":["One","Two"],"camera_direction":"cd","environment":"env"}` +
				"\n```\nHope this helps!",
		},
		{
			name:    "no JSON at all",
			input:   "I could not produce a script for this content.",
			wantErr: true,
		},
		{
			name:    "missing field",
			input:   `{"title":"Savings","script_chunks":["One"],"camera_direction":"cd"}`,
			wantErr: true,
		},
		{
			name:    "empty title",
			input:   `{"title":"","script_chunks":["One"],"camera_direction":"cd","environment":"env"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, err := parseScriptResponse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if script.Title != "Savings" {
				t.Errorf("unexpected title: %q", script.Title)
			}
			if len(script.ScriptChunks) == 0 {
				t.Error("expected script chunks")
			}
		})
	}
}

func TestParseScriptResponseCoercesScalarChunks(t *testing.T) {
	input := `{"title":"T","script_chunks":"just one segment","camera_direction":"cd","environment":"env"}`

	script, err := parseScriptResponse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(script.ScriptChunks) != 1 || script.ScriptChunks[0] != "just one segment" {
		t.Errorf("scalar script_chunks not coerced: %v", script.ScriptChunks)
	}
}

func TestTruncateSegment(t *testing.T) {
	short := "a short segment"
	if got := TruncateSegment(short); got != short {
		t.Errorf("short segment must be untouched, got %q", got)
	}

	long := strings.Repeat("x", 300)
	got := TruncateSegment(long)
	if len([]rune(got)) != maxSegmentLen+len(ellipsis) {
		t.Errorf("truncated length = %d, want exactly %d", len([]rune(got)), maxSegmentLen+len(ellipsis))
	}
	if !strings.HasSuffix(got, ellipsis) {
		t.Error("truncated segment must end with ellipsis")
	}

	exact := strings.Repeat("y", maxSegmentLen)
	if got := TruncateSegment(exact); got != exact {
		t.Error("segment at exactly the limit must be untouched")
	}
}
