package dto

import (
	"docreel/domain/models"
)

// === Mappers ===

func SessionToSessionResponse(s *models.Session) *SessionResponse {
	if s == nil {
		return nil
	}
	chunks := make([]*ChunkResponse, 0, len(s.Chunks))
	for _, c := range s.Chunks {
		chunks = append(chunks, ChunkToChunkResponse(c))
	}
	return &SessionResponse{
		ID:        s.ID,
		FileName:  s.FileName,
		Status:    string(s.Status),
		Chunks:    chunks,
		CreatedAt: s.CreatedAt,
	}
}

func ChunkToChunkResponse(c *models.Chunk) *ChunkResponse {
	if c == nil {
		return nil
	}
	return &ChunkResponse{
		ID:       c.ID,
		Title:    c.Title,
		Content:  c.Content,
		Order:    c.Order,
		Status:   string(c.Status),
		Script:   ScriptToScriptResponse(c.Script),
		VideoURL: c.VideoURL,
	}
}

func ScriptToScriptResponse(s *models.Script) *ScriptResponse {
	if s == nil {
		return nil
	}
	return &ScriptResponse{
		Title:           s.Title,
		ScriptChunks:    s.ScriptChunks,
		CameraDirection: s.CameraDirection,
		Environment:     s.Environment,
	}
}

func VideoJobToVideoJobResponse(j *models.VideoJob) *VideoJobResponse {
	if j == nil {
		return nil
	}
	return &VideoJobResponse{
		ID:        j.ID,
		ChunkID:   j.ChunkID,
		Status:    string(j.Status),
		Progress:  j.Progress,
		VideoURL:  j.VideoURL,
		CreatedAt: j.CreatedAt,
	}
}

func ExportJobToExportJobResponse(j *models.ExportJob) *ExportJobResponse {
	if j == nil {
		return nil
	}
	return &ExportJobResponse{
		ID:          j.ID,
		SessionID:   j.SessionID,
		Status:      string(j.Status),
		Progress:    j.Progress,
		DownloadURL: j.DownloadURL,
		Error:       j.Error,
		StartTime:   j.StartTime,
		CompletedAt: j.CompletedAt,
	}
}
