package common

import (
	"os"
	"strconv"
	"time"

	"github.com/hqplabs/idcard-ocr/constants"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Redis   RedisConfig
	OCR     OCRConfig
	LLM     LLMConfig
	Extract ExtractConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// StorageConfig holds the file-backed corpus paths
type StorageConfig struct {
	CSVPath      string
	SnapshotPath string
}

// RedisConfig holds the key-value mirror configuration. An empty Addr means
// the mirror is not configured; the corpus then reports MirrorAvailable=false.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// OCRConfig holds OCR engine configuration
type OCRConfig struct {
	Engine        string // "tesseract" (exec) | "gosseract" (in-process)
	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	Languages     string // default "eng+hin"
	TessdataDir   string
	PSM           int
	OEM           int
	RetryRotation bool // drive the 0/90/180/270 orientation retry
}

// LLMConfig holds the optional language-model collaborator configuration.
// Provider "none" disables the LLM pass entirely.
type LLMConfig struct {
	Provider    string // "none" | "ollama" | "openai"
	Model       string
	Endpoint    string // ollama chat endpoint
	APIKey      string // openai
	Temperature float32
	Timeout     time.Duration
}

// ExtractConfig holds the heuristic-engine behavior switches
type ExtractConfig struct {
	Strategy           constants.StrategyName
	OnMissingEssential constants.MissingEssentialPolicy
	DualKeyDuplicate   bool // also treat a VID collision as a duplicate
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			ReadTimeout:     getEnvAsDuration("HTTP_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("HTTP_WRITE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Storage: StorageConfig{
			CSVPath:      getEnv("CSV_PATH", "./aadhaar_data.csv"),
			SnapshotPath: getEnv("SNAPSHOT_PATH", "./aadhaar_data.jsonl"),
		},
		Redis: RedisConfig{
			Addr:        getEnv("REDIS_ADDR", ""),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvAsInt("REDIS_DB", 0),
			DialTimeout: getEnvAsDuration("REDIS_DIAL_TIMEOUT", 3*time.Second),
		},
		OCR: OCRConfig{
			Engine:        getEnv("OCR_ENGINE", "tesseract"),
			Tesseract:     getEnv("TESSERACT_BIN", ""),
			Languages:     getEnv("OCR_LANGUAGES", "eng+hin"),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
			PSM:           getEnvAsInt("OCR_PSM", 6),
			OEM:           getEnvAsInt("OCR_OEM", 0),
			RetryRotation: getEnvAsBool("OCR_RETRY_ROTATION", true),
		},
		LLM: LLMConfig{
			Provider:    getEnv("LLM_PROVIDER", "none"),
			Model:       getEnv("LLM_MODEL", "llama3.2"),
			Endpoint:    getEnv("OLLAMA_ENDPOINT", "http://localhost:11434/api/chat"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Temperature: getEnvAsFloat32("LLM_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("LLM_TIMEOUT", 45*time.Second),
		},
		Extract: ExtractConfig{
			Strategy:           constants.StrategyName(getEnv("EXTRACT_STRATEGY", string(constants.StrategyKeyword))),
			OnMissingEssential: constants.MissingEssentialPolicy(getEnv("ON_MISSING_ESSENTIAL", string(constants.PolicyReject))),
			DualKeyDuplicate:   getEnvAsBool("DUAL_KEY_DUPLICATE", false),
		},
	}
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Storage.CSVPath == "" || c.Storage.SnapshotPath == "" {
		return NewAppError("CONFIG_ERROR", "CSV_PATH and SNAPSHOT_PATH are required", ErrInvalidInput)
	}
	switch c.Extract.Strategy {
	case constants.StrategyRegex, constants.StrategyKeyword, constants.StrategyLLM:
	default:
		return NewAppError("CONFIG_ERROR", "EXTRACT_STRATEGY must be regex|keyword|llm", ErrInvalidInput)
	}
	switch c.Extract.OnMissingEssential {
	case constants.PolicyReject, constants.PolicyPersistPartial:
	default:
		return NewAppError("CONFIG_ERROR", "ON_MISSING_ESSENTIAL must be reject|persist-partial", ErrInvalidInput)
	}
	if c.Extract.Strategy == constants.StrategyLLM && c.LLM.Provider == "none" {
		return NewAppError("CONFIG_ERROR", "EXTRACT_STRATEGY=llm requires LLM_PROVIDER", ErrInvalidInput)
	}
	if c.LLM.Provider == "openai" && c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required for LLM_PROVIDER=openai", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
