package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Logger LoggerConfig
	Gemini GeminiConfig
	Audio  AudioConfig
	Video  VideoConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
}

type GeminiConfig struct {
	APIKey      string  `yaml:"api_key"`
	ChatModel   string  `yaml:"chat_model"`
	SpeechModel string  `yaml:"speech_model"`
	VideoModel  string  `yaml:"video_model"`
	Temperature float64 `yaml:"temperature"`
	VoiceName   string  `yaml:"voice_name"`
}

type AudioConfig struct {
	SampleRate    int           `yaml:"sample_rate"`
	AutoPlay      bool          `yaml:"auto_play"`
	AutoPlayDelay time.Duration `yaml:"auto_play_delay"`
}

type VideoConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	MaxAttempts  int           `yaml:"max_attempts"`
	Resolution   string        `yaml:"resolution"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		// For test environment, look for config in the project root
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		// For production/development environment
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	viper.SetDefault("gemini.chat_model", "gemini-2.5-flash")
	viper.SetDefault("gemini.speech_model", "gemini-2.5-flash-preview-tts")
	viper.SetDefault("gemini.video_model", "veo-3.1-fast-generate-preview")
	viper.SetDefault("gemini.temperature", 0.7)
	viper.SetDefault("gemini.voice_name", "Fenrir")
	viper.SetDefault("audio.sample_rate", 24000)
	viper.SetDefault("audio.auto_play_delay", "100ms")
	viper.SetDefault("video.poll_interval", "10s")
	viper.SetDefault("video.max_attempts", 30)
	viper.SetDefault("video.resolution", "720p")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Log the config file being used
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		Gemini: GeminiConfig{
			APIKey:      viper.GetString("gemini.api_key"),
			ChatModel:   viper.GetString("gemini.chat_model"),
			SpeechModel: viper.GetString("gemini.speech_model"),
			VideoModel:  viper.GetString("gemini.video_model"),
			Temperature: viper.GetFloat64("gemini.temperature"),
			VoiceName:   viper.GetString("gemini.voice_name"),
		},
		Audio: AudioConfig{
			SampleRate:    viper.GetInt("audio.sample_rate"),
			AutoPlay:      viper.GetBool("audio.auto_play"),
			AutoPlayDelay: viper.GetDuration("audio.auto_play_delay"),
		},
		Video: VideoConfig{
			PollInterval: viper.GetDuration("video.poll_interval"),
			MaxAttempts:  viper.GetInt("video.max_attempts"),
			Resolution:   viper.GetString("video.resolution"),
		},
	}

	// Override with environment variables if set
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if env := os.Getenv("LOGGER_ENV"); env != "" {
		config.Logger.Env = env
	}

	return config, nil
}
