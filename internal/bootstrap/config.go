package bootstrap

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// ConfigFileName is looked up in the XDG config dirs when no explicit file
// is present.
const ConfigFileName = "goboard/goboard.env"

type Config struct {
	ServerPort        string `mapstructure:"SERVER_PORT"`
	GrpcPort          string `mapstructure:"GRPC_PORT"`
	StorageBackend    string `mapstructure:"STORAGE_BACKEND"`
	RedisUrl          string `mapstructure:"REDIS_URL"`
	MongoUri          string `mapstructure:"MONGO_URI"`
	MongoDatabase     string `mapstructure:"MONGO_DATABASE"`
	DataDir           string `mapstructure:"DATA_DIR"`
	AIDelayMs         int    `mapstructure:"AI_DELAY_MS"`
	IsLocalCors       bool   `mapstructure:"LOCAL_CORS"`
	DefaultHumanColor string `mapstructure:"DEFAULT_HUMAN_COLOR"`
	LogFile           string `mapstructure:"LOG_FILE"`
}

// Storage backends.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageMongo  = "mongo"
)

var defaults = map[string]any{
	"SERVER_PORT":         ":8080",
	"GRPC_PORT":           ":8082",
	"STORAGE_BACKEND":     StorageFile,
	"REDIS_URL":           "localhost:6379",
	"MONGO_URI":           "mongodb://localhost:27017",
	"MONGO_DATABASE":      "goboard",
	"DATA_DIR":            "",
	"AI_DELAY_MS":         600,
	"LOCAL_CORS":          false,
	"DEFAULT_HUMAN_COLOR": "black",
	"LOG_FILE":            "",
}

// Setup reads cfgPath (an env-style file) over the defaults. A missing
// cfgPath falls back to the XDG config file, and a missing XDG file leaves
// the defaults in place. Environment variables override both.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path, ok := resolveConfigFile(cfgPath); ok {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AIDelay is the artificial thinking time before an AI move.
func (c *Config) AIDelay() time.Duration {
	if c.AIDelayMs < 0 {
		return 0
	}
	return time.Duration(c.AIDelayMs) * time.Millisecond
}

func resolveConfigFile(cfgPath string) (string, bool) {
	if cfgPath != "" {
		if _, err := os.Stat(cfgPath); err == nil {
			return cfgPath, true
		} else if !errors.Is(err, fs.ErrNotExist) {
			return cfgPath, true
		}
	}
	path, err := xdg.SearchConfigFile(ConfigFileName)
	if err != nil {
		return "", false
	}
	return path, true
}
