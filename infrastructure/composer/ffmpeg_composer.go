package composer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"docreel/domain/ports"
	"docreel/pkg/logger"
)

// ความยาว intro/outro ที่ synthesize ขึ้นมา (วินาที)
const bumperDuration = 3

// FFmpegComposer ต่อวิดีโอและ synthesize intro/outro ด้วย ffmpeg
// ทุก operation เป็น opaque process invocation — สำเร็จ (ไฟล์มีจริง) หรือ fail
type FFmpegComposer struct {
	ffmpegPath string
}

func NewFFmpegComposer(ffmpegPath string) (ports.ComposerPort, error) {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}

	composer := &FFmpegComposer{ffmpegPath: ffmpegPath}

	// ตรวจสอบว่า ffmpeg ใช้งานได้
	if !composer.IsAvailable() {
		return nil, fmt.Errorf("ffmpeg not available at path: %s", ffmpegPath)
	}

	return composer, nil
}

// IsAvailable ตรวจสอบว่า ffmpeg พร้อมใช้งาน
func (c *FFmpegComposer) IsAvailable() bool {
	cmd := exec.Command(c.ffmpegPath, "-version")
	err := cmd.Run()
	return err == nil
}

// Concat ต่อวิดีโอตามลำดับด้วย concat demuxer
// input แต่ละไฟล์ต้อง encode เหมือนกัน (provider เดียวกันทั้ง session)
func (c *FFmpegComposer) Concat(ctx context.Context, inputs []string, outputPath string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no input files to concatenate")
	}

	// เขียน playlist file สำหรับ concat demuxer
	playlistPath := filepath.Join(filepath.Dir(outputPath), "playlist.txt")
	var sb strings.Builder
	for _, input := range inputs {
		// escape single quote ตามรูปแบบของ concat demuxer
		escaped := strings.ReplaceAll(input, "'", `'\''`)
		sb.WriteString(fmt.Sprintf("file '%s'\n", escaped))
	}
	if err := os.WriteFile(playlistPath, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write playlist: %w", err)
	}

	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", playlistPath,
		"-c", "copy",
		outputPath,
	}

	if err := c.run(ctx, args); err != nil {
		// copy ไม่ได้ (เช่น timestamp ไม่ต่อเนื่อง) ลอง re-encode
		logger.WarnContext(ctx, "Stream copy concat failed, retrying with re-encode", "error", err)
		args = []string{
			"-y",
			"-f", "concat",
			"-safe", "0",
			"-i", playlistPath,
			"-c:v", "libx264",
			"-preset", "fast",
			"-c:a", "aac",
			outputPath,
		}
		if err := c.run(ctx, args); err != nil {
			return fmt.Errorf("concat failed: %w", err)
		}
	}

	return c.verifyOutput(outputPath)
}

// SynthesizeIntro สร้าง title card จากชื่อ document ด้วย lavfi
func (c *FFmpegComposer) SynthesizeIntro(ctx context.Context, title string, outputPath string) error {
	drawtext := fmt.Sprintf(
		"drawtext=text='%s':fontcolor=white:fontsize=64:x=(w-text_w)/2:y=(h-text_h)/2",
		escapeDrawtext(title),
	)

	args := []string{
		"-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=black:s=1920x1080:d=%d", bumperDuration),
		"-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=channel_layout=stereo:sample_rate=44100:d=%d", bumperDuration),
		"-vf", drawtext,
		"-c:v", "libx264",
		"-preset", "fast",
		"-c:a", "aac",
		"-shortest",
		outputPath,
	}

	if err := c.run(ctx, args); err != nil {
		return fmt.Errorf("intro synthesis failed: %w", err)
	}
	return c.verifyOutput(outputPath)
}

// SynthesizeOutro สร้าง closing card
func (c *FFmpegComposer) SynthesizeOutro(ctx context.Context, outputPath string) error {
	args := []string{
		"-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=black:s=1920x1080:d=%d", bumperDuration),
		"-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=channel_layout=stereo:sample_rate=44100:d=%d", bumperDuration),
		"-vf", "drawtext=text='Thanks for watching':fontcolor=white:fontsize=48:x=(w-text_w)/2:y=(h-text_h)/2",
		"-c:v", "libx264",
		"-preset", "fast",
		"-c:a", "aac",
		"-shortest",
		outputPath,
	}

	if err := c.run(ctx, args); err != nil {
		return fmt.Errorf("outro synthesis failed: %w", err)
	}
	return c.verifyOutput(outputPath)
}

// MixAudio ผสม background music เบาๆ ใต้เสียงหลัก วน loop ให้ยาวเท่าวิดีโอ
func (c *FFmpegComposer) MixAudio(ctx context.Context, videoPath, audioPath, outputPath string) error {
	args := []string{
		"-y",
		"-i", videoPath,
		"-stream_loop", "-1",
		"-i", audioPath,
		"-filter_complex", "[1:a]volume=0.2[bg];[0:a][bg]amix=inputs=2:duration=first[aout]",
		"-map", "0:v",
		"-map", "[aout]",
		"-c:v", "copy",
		"-c:a", "aac",
		"-shortest",
		outputPath,
	}

	if err := c.run(ctx, args); err != nil {
		return fmt.Errorf("audio mix failed: %w", err)
	}
	return c.verifyOutput(outputPath)
}

func (c *FFmpegComposer) run(ctx context.Context, args []string) error {
	logger.InfoContext(ctx, "Executing ffmpeg", "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, c.ffmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		logger.ErrorContext(ctx, "ffmpeg failed",
			"error", err,
			"output", tail(string(output), 2000),
		)
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}

// verifyOutput สำเร็จ = ไฟล์มีอยู่และไม่ว่าง
func (c *FFmpegComposer) verifyOutput(outputPath string) error {
	info, err := os.Stat(outputPath)
	if err != nil {
		return fmt.Errorf("output file missing: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("output file is empty: %s", outputPath)
	}
	return nil
}

func escapeDrawtext(text string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`:`, `\:`,
		`%`, `\%`,
	)
	return replacer.Replace(text)
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
