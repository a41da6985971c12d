package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Log     LogConfig
	Upload  UploadConfig
	Script  ScriptConfig
	Video   VideoConfig
	Export  ExportConfig
	Storage StorageConfig
}

type AppConfig struct {
	Name string
	Port string
	Env  string
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, file, both
	FilePath   string // logs/app.log
	MaxSize    int    // MB
	MaxBackups int    // จำนวน backup files
	MaxAge     int    // วัน
	Compress   bool   // บีบอัด backup
}

// UploadConfig สำหรับ document upload
type UploadConfig struct {
	MaxUploadSize int64 // ขนาดไฟล์สูงสุด (bytes)
}

// ScriptConfig สำหรับ script generation provider (Gemini)
type ScriptConfig struct {
	GeminiAPIKey string
	Model        string
	Timeout      time.Duration // timeout ของ primary path ก่อน fallback
}

// VideoConfig สำหรับ video generation provider
type VideoConfig struct {
	BaseURL         string // endpoint ของ provider queue API
	APIKey          string // "" = ใช้ mock progression
	Model           string
	DefaultDuration int // วินาที
}

// ExportConfig สำหรับ export stage
type ExportConfig struct {
	TempPath        string        // working directories ของ export jobs
	MusicPath       string        // โฟลเดอร์ background music tracks
	RetentionWindow time.Duration // อายุสูงสุดของ export job ก่อนถูกลบ
	SweepCron       string        // cron ของ retention sweep
	MinFreeSpaceGB  int           // พื้นที่ว่างขั้นต่ำก่อนเริ่ม export
}

// StorageConfig สำหรับเก็บ export artifacts
type StorageConfig struct {
	Type       string // local, s3
	BasePath   string // สำหรับ local: ./exports
	BaseURL    string // URL สำหรับเข้าถึงไฟล์
	FFmpegPath string // path ถึง ffmpeg binary
	S3         S3Config
}

type S3Config struct {
	Endpoint  string // minio:9000 หรือ xxx.r2.cloudflarestorage.com
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
	PublicURL string // URL สำหรับเข้าถึงไฟล์ public (optional)
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		// ไม่ error ถ้าไม่มี .env file (ใช้ environment variables แทน)
	}

	logMaxSize, _ := strconv.Atoi(getEnv("LOG_MAX_SIZE", "100"))
	logMaxBackups, _ := strconv.Atoi(getEnv("LOG_MAX_BACKUPS", "5"))
	logMaxAge, _ := strconv.Atoi(getEnv("LOG_MAX_AGE", "30"))
	logCompress := getEnv("LOG_COMPRESS", "true") == "true"

	maxUploadSize, _ := strconv.ParseInt(getEnv("UPLOAD_MAX_SIZE", "10485760"), 10, 64) // 10MB default
	scriptTimeout, _ := strconv.Atoi(getEnv("SCRIPT_TIMEOUT_SECONDS", "60"))
	videoDuration, _ := strconv.Atoi(getEnv("VIDEO_DEFAULT_DURATION", "5"))
	retentionHours, _ := strconv.Atoi(getEnv("EXPORT_RETENTION_HOURS", "24"))
	minFreeSpace, _ := strconv.Atoi(getEnv("EXPORT_MIN_FREE_SPACE_GB", "5"))
	s3UseSSL := getEnv("S3_USE_SSL", "false") == "true"

	config := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "Docreel"),
			Port: getEnv("APP_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			FilePath:   getEnv("LOG_FILE", "logs/app.log"),
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAge,
			Compress:   logCompress,
		},
		Upload: UploadConfig{
			MaxUploadSize: maxUploadSize,
		},
		Script: ScriptConfig{
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			Model:        getEnv("SCRIPT_MODEL", "gemini-1.5-flash"),
			Timeout:      time.Duration(scriptTimeout) * time.Second,
		},
		Video: VideoConfig{
			BaseURL:         getEnv("VIDEO_API_URL", "https://queue.fal.run"),
			APIKey:          getEnv("VIDEO_API_KEY", ""),
			Model:           getEnv("VIDEO_MODEL", "fal-ai/veo3"),
			DefaultDuration: videoDuration,
		},
		Export: ExportConfig{
			TempPath:        getEnv("EXPORT_TEMP_PATH", "./temp"),
			MusicPath:       getEnv("EXPORT_MUSIC_PATH", "./music"),
			RetentionWindow: time.Duration(retentionHours) * time.Hour,
			SweepCron:       getEnv("EXPORT_SWEEP_CRON", "0 * * * *"), // ทุกชั่วโมง
			MinFreeSpaceGB:  minFreeSpace,
		},
		Storage: StorageConfig{
			Type:       getEnv("STORAGE_TYPE", "local"),
			BasePath:   getEnv("STORAGE_BASE_PATH", "./exports"),
			BaseURL:    getEnv("STORAGE_BASE_URL", "http://localhost:8080/files"),
			FFmpegPath: getEnv("FFMPEG_PATH", "ffmpeg"),
			S3: S3Config{
				Endpoint:  getEnv("S3_ENDPOINT", "localhost:9000"),
				AccessKey: getEnv("S3_ACCESS_KEY", "minioadmin"),
				SecretKey: getEnv("S3_SECRET_KEY", "minioadmin"),
				Bucket:    getEnv("S3_BUCKET", "exports"),
				UseSSL:    s3UseSSL,
				Region:    getEnv("S3_REGION", "auto"),
				PublicURL: getEnv("S3_PUBLIC_URL", ""),
			},
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// IsDevelopment ตรวจสอบว่าเป็น development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction ตรวจสอบว่าเป็น production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
