package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/VihaanSom/karaoke-cli/internal/domain"
	"github.com/VihaanSom/karaoke-cli/internal/logger"
	"github.com/VihaanSom/karaoke-cli/internal/ports"

	"github.com/spf13/viper"
)

type ViperConfigService struct{}

func NewViperConfigService() ports.ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Could not find user config directory, using current directory")
	}

	if configDir != "" {
		karaokeConfigDir := filepath.Join(configDir, "karaoke")
		if err := os.MkdirAll(karaokeConfigDir, 0755); err != nil {
			logger.Log.Error().Err(err).Msg("Could not create karaoke config directory")
		} else {
			viper.AddConfigPath(karaokeConfigDir)
		}
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")

	viper.SetDefault("offset", 0.0)
	viper.SetDefault("pollIntervalMs", 50)
	viper.SetDefault("backend", "auto")
	viper.SetDefault("volume", 0.5)
	viper.SetDefault("tailSeconds", 5)
	viper.SetDefault("plain", false)

	return &ViperConfigService{}
}

func (s *ViperConfigService) Load() (domain.Config, error) {
	var cfg domain.Config

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			logger.Log.Info().Msg("Config file not found, creating with default values.")
			if err := viper.SafeWriteConfig(); err != nil {
				return cfg, err
			}
		} else {
			return cfg, err
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
