package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"docreel/domain/ports"
)

const (
	mimePDF  = "application/pdf"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText = "text/plain"
)

// DocumentParserImpl แปลงไฟล์ document เป็น plain text
// รองรับ PDF, DOCX และ plain text เท่านั้น
type DocumentParserImpl struct{}

func NewDocumentParser() ports.DocumentParserPort {
	return &DocumentParserImpl{}
}

func (p *DocumentParserImpl) Parse(fileName, contentType string, data []byte) (string, error) {
	switch resolveType(fileName, contentType) {
	case mimePDF:
		return p.parsePDF(data)
	case mimeDocx:
		return p.parseDocx(data)
	case mimeText:
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", ports.ErrUnsupportedType, contentType)
	}
}

// resolveType บาง client ส่ง content type มาเป็น octet-stream
// เลยต้องเดาจากนามสกุลไฟล์ด้วย
func resolveType(fileName, contentType string) string {
	switch contentType {
	case mimePDF, mimeDocx, mimeText:
		return contentType
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return mimePDF
	case ".docx":
		return mimeDocx
	case ".txt", ".md":
		return mimeText
	}
	return contentType
}

func (p *DocumentParserImpl) parsePDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ports.ErrParseFailed, err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ports.ErrParseFailed, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, textReader); err != nil {
		return "", fmt.Errorf("%w: %v", ports.ErrParseFailed, err)
	}
	return buf.String(), nil
}

// parseDocx อ่าน word/document.xml จาก zip archive แล้วดึงเฉพาะ text nodes
// ใส่ newline ท้ายทุก w:p เพื่อรักษาขอบเขต paragraph ไว้ให้ segmenter
func (p *DocumentParserImpl) parseDocx(data []byte) (string, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ports.ErrParseFailed, err)
	}

	var docFile *zip.File
	for _, f := range zipReader.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("%w: missing word/document.xml", ports.ErrParseFailed)
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ports.ErrParseFailed, err)
	}
	defer rc.Close()

	var sb strings.Builder
	decoder := xml.NewDecoder(rc)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ports.ErrParseFailed, err)
		}

		switch t := token.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" {
				sb.WriteString("\n\n")
			}
		}
	}

	return sb.String(), nil
}
