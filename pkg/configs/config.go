// Package configs manages application configuration: database, object
// storage, share, quota, trash and server settings. Multiple formats are
// supported (YAML, JSON, TOML, dotenv) with optional hot reload.
//
// Example:
//
//	if err := configs.InitConfig("./"); err != nil {
//		log.Fatal(err)
//	}
//
//	cfg := configs.GetConfig()
//	fmt.Println(cfg.Server.Port)
package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// AppVersion is reported to external collaborators (object storage app info).
const AppVersion = "0.3.0"

type (
	// AppConfig is the root application configuration.
	AppConfig struct {
		DB        DBConfig        `mapstructure:"db"`
		S3        S3Config        `mapstructure:"s3"`
		KV        KVConfig        `mapstructure:"kv"`
		Server    ServerConfig    `mapstructure:"server"`
		Log       LogConfig       `mapstructure:"log"`
		Share     ShareConfig     `mapstructure:"share"`
		Quota     QuotaConfig     `mapstructure:"quota"`
		Trash     TrashConfig     `mapstructure:"trash"`
		Metrics   MetricsConfig   `mapstructure:"metrics"`
		RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	}
)

var (
	// globalConfig is the resolved configuration instance.
	globalConfig AppConfig
	// appViper is the global viper instance.
	appViper *viper.Viper
)

// InitConfig loads the application configuration from a file or directory,
// supporting yaml/json/toml/dotenv and optional hot reload.
func InitConfig(path string) error {
	appViper = viper.New()
	setAllDefaults(appViper)

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		// A concrete file; viper detects the format from the extension.
		appViper.SetConfigFile(path)
	} else {
		appViper.SetConfigName("config")
		appViper.AddConfigPath(path)
		appViper.AddConfigPath(filepath.Join(path, "configs"))

		exts := []string{"yaml", "yml", "json", "toml", "env", "dotenv"}
		for _, ext := range exts {
			cfg := filepath.Join(path, "config."+ext)
			if _, err := os.Stat(cfg); err == nil {
				appViper.SetConfigFile(cfg)

				break
			}
		}
	}

	appViper.AutomaticEnv()
	appViper.SetEnvPrefix("DRIVEVAULT")

	if err := appViper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	if err := appViper.Unmarshal(&globalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	reloadConfigs(appViper, globalConfig.Server.ReloadConfig)

	return nil
}

// setAllDefaults applies the defaults of every config section.
func setAllDefaults(v *viper.Viper) {
	var (
		serverConfig    ServerConfig
		dbConfig        DBConfig
		s3Config        S3Config
		kvConfig        KVConfig
		logConfig       LogConfig
		shareConfig     ShareConfig
		quotaConfig     QuotaConfig
		trashConfig     TrashConfig
		metricsConfig   MetricsConfig
		rateLimitConfig RateLimitConfig
	)

	serverConfig.setDefaults(v)
	dbConfig.setDefaults(v)
	s3Config.setDefaults(v)
	kvConfig.setDefaults(v)
	logConfig.setDefaults(v)
	shareConfig.setDefaults(v)
	quotaConfig.setDefaults(v)
	trashConfig.setDefaults(v)
	metricsConfig.setDefaults(v)
	rateLimitConfig.setDefaults(v)
}

func reloadConfigs(v *viper.Viper, isHotReload bool) {
	if !isHotReload {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("Config file changed:", e.Name)

		if err := v.Unmarshal(&globalConfig); err != nil {
			fmt.Printf("Error reloading config: %v\n", err)
		}
	})
	v.WatchConfig()
}

// GetConfig returns the resolved global configuration.
func GetConfig() *AppConfig {
	return &globalConfig
}

func GetViper() *viper.Viper {
	return appViper
}
