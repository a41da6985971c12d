package parser

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"docreel/domain/ports"
)

func TestParsePlainTextPassthrough(t *testing.T) {
	p := NewDocumentParser()

	text, err := p.Parse("notes.txt", "text/plain", []byte("Hello world.\n\nSecond paragraph."))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if text != "Hello world.\n\nSecond paragraph." {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestParseExtensionFallback(t *testing.T) {
	p := NewDocumentParser()

	// client ส่ง octet-stream มา ต้องเดาจากนามสกุล
	text, err := p.Parse("README.md", "application/octet-stream", []byte("# Title"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if text != "# Title" {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestParseUnsupportedType(t *testing.T) {
	p := NewDocumentParser()

	_, err := p.Parse("image.png", "image/png", []byte{0x89, 0x50})
	if !errors.Is(err, ports.ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestParseDocx(t *testing.T) {
	p := NewDocumentParser()

	docx := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	text, err := p.Parse("report.docx", mimeDocx, docx)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !strings.Contains(text, "First paragraph.") || !strings.Contains(text, "Second paragraph.") {
		t.Errorf("missing paragraph text: %q", text)
	}
	// ขอบเขต paragraph ต้องรอดมาเป็น blank line
	if !strings.Contains(text, "First paragraph.\n\n") {
		t.Errorf("expected paragraph break after first paragraph: %q", text)
	}
}

func TestParseDocxMissingDocument(t *testing.T) {
	p := NewDocumentParser()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("<styles/>")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	_, err = p.Parse("broken.docx", mimeDocx, buf.Bytes())
	if !errors.Is(err, ports.ErrParseFailed) {
		t.Errorf("expected ErrParseFailed, got %v", err)
	}
}

func TestParseDocxCorruptArchive(t *testing.T) {
	p := NewDocumentParser()

	_, err := p.Parse("corrupt.docx", mimeDocx, []byte("not a zip"))
	if !errors.Is(err, ports.ErrParseFailed) {
		t.Errorf("expected ErrParseFailed, got %v", err)
	}
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
