package segmenter

import (
	"strings"
	"testing"

	"docreel/domain/models"
)

func TestSegmentHeadingBased(t *testing.T) {
	text := "Intro\nHello there. This is great.\n\nChapter One\nMore content here."

	chunks := Segment(text)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Title != "Intro" {
		t.Errorf("expected first title %q, got %q", "Intro", chunks[0].Title)
	}
	if chunks[1].Title != "Chapter One" {
		t.Errorf("expected second title %q, got %q", "Chapter One", chunks[1].Title)
	}
	if chunks[0].Content != "Hello there. This is great." {
		t.Errorf("unexpected first chunk content: %q", chunks[0].Content)
	}
	if chunks[1].Content != "More content here." {
		t.Errorf("unexpected second chunk content: %q", chunks[1].Content)
	}
}

func TestSegmentOrderIsDense(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "heading based",
			text: "First Section\ncontent one.\nSecond Section\ncontent two.\nThird Section\ncontent three.",
		},
		{
			name: "paragraph fallback",
			text: strings.Repeat("some lowercase paragraph text here. ", 20) + "\n\n" +
				strings.Repeat("another lowercase paragraph with more text. ", 20),
		},
		{
			name: "single line",
			text: "just one plain line of text.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Segment(tt.text)
			if len(chunks) == 0 {
				t.Fatal("expected at least one chunk for non-empty input")
			}
			for i, chunk := range chunks {
				if chunk.Order != i {
					t.Errorf("chunk %d has order %d", i, chunk.Order)
				}
				if chunk.Status != models.ChunkStatusPending {
					t.Errorf("chunk %d has status %s, want pending", i, chunk.Status)
				}
				if chunk.Script != nil || chunk.VideoURL != "" {
					t.Errorf("chunk %d should start without script or video", i)
				}
			}
		})
	}
}

func TestSegmentParagraphFallbackBudget(t *testing.T) {
	// ไม่มี heading เลย ต้อง fallback เป็น paragraph-based
	paragraph := strings.Repeat("lowercase sentence filler text. ", 20) // ~640 chars
	text := paragraph + "\n\n" + paragraph + "\n\n" + paragraph

	chunks := Segment(text)

	if len(chunks) < 2 {
		t.Fatalf("expected budget to force multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		// แต่ละ chunk ไม่ควรเกิน budget + ขนาด paragraph เดียว
		if len(chunk.Content) > paragraphBudget+len(paragraph) {
			t.Errorf("chunk %d exceeds budget: %d chars", i, len(chunk.Content))
		}
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "short first sentence",
			text: "a quick overview. then more detail follows here.",
			want: "a quick overview",
		},
		{
			name: "long first sentence truncates to 50",
			text: strings.Repeat("x", 80) + ". rest",
			want: strings.Repeat("x", 50) + "...",
		},
		{
			name: "short text without terminator",
			text: "plain fragment",
			want: "plain fragment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTitle(tt.text)
			if got != tt.want {
				t.Errorf("ExtractTitle(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsHeading(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Introduction", true},
		{"Chapter One", true},
		{"1. Getting Started", true},
		{"SUMMARY", true},
		{"This is a normal sentence that ends with a period.", false},
		{"lowercase line without structure", false},
		{strings.Repeat("A", 120), false},
	}

	for _, tt := range tests {
		if got := IsHeading(tt.line); got != tt.want {
			t.Errorf("IsHeading(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
