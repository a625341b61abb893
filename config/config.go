package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Environment string
	ServerPort  int

	DatabaseDbPath       string
	DatabaseCacheAddress string
	DatabaseCachePort    int

	LegacyStorePath string

	// AssetStorage selects the placement policy for uploaded images:
	// "s3", "local" or "inline". One policy per deployment.
	AssetStorage   string
	AssetUploadDir string
	S3Bucket       string
	S3Region       string
	S3PublicURL    string

	// PromoteOnToggle makes ToggleShowImages migrate lower-tier records to
	// the durable store the same way UpdatePoll does. Off by default.
	PromoteOnToggle bool
}

func InitConfig() (Config, error) {
	v := viper.New()

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DATABASE_DB_PATH", "data/polls.db")
	v.SetDefault("DATABASE_CACHE_ADDRESS", "localhost")
	v.SetDefault("DATABASE_CACHE_PORT", 6379)
	v.SetDefault("LEGACY_STORE_PATH", "data/polls.json")
	v.SetDefault("ASSET_STORAGE", "inline")
	v.SetDefault("ASSET_UPLOAD_DIR", "public/uploads")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_REGION", "")
	v.SetDefault("S3_PUBLIC_URL", "")
	v.SetDefault("PROMOTE_ON_TOGGLE", false)

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()
	v.AutomaticEnv()

	config := Config{
		Environment:          v.GetString("ENVIRONMENT"),
		ServerPort:           v.GetInt("SERVER_PORT"),
		DatabaseDbPath:       v.GetString("DATABASE_DB_PATH"),
		DatabaseCacheAddress: v.GetString("DATABASE_CACHE_ADDRESS"),
		DatabaseCachePort:    v.GetInt("DATABASE_CACHE_PORT"),
		LegacyStorePath:      v.GetString("LEGACY_STORE_PATH"),
		AssetStorage:         v.GetString("ASSET_STORAGE"),
		AssetUploadDir:       v.GetString("ASSET_UPLOAD_DIR"),
		S3Bucket:             v.GetString("S3_BUCKET"),
		S3Region:             v.GetString("S3_REGION"),
		S3PublicURL:          v.GetString("S3_PUBLIC_URL"),
		PromoteOnToggle:      v.GetBool("PROMOTE_ON_TOGGLE"),
	}

	return config, nil
}
