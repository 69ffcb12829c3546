package config

import (
	"fmt"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/natsumerinchan/GPTDictEditor/internal/dictionary"
	"github.com/natsumerinchan/GPTDictEditor/internal/dictionary/remote"
	"github.com/spf13/viper"
)

type Config struct {
	Conversion ConversionConfig `mapstructure:"conversion"`
	Remote     RemoteConfig     `mapstructure:"remote"`
	Batch      BatchConfig      `mapstructure:"batch"`
}

type ConversionConfig struct {
	InputFormat  string `mapstructure:"input_format" validate:"format_key"`
	OutputFormat string `mapstructure:"output_format" validate:"target_format_key"`
}

// Input returns the configured input format, which may be dictionary.Auto.
func (c ConversionConfig) Input() dictionary.FormatKey {
	key, _ := dictionary.Resolve(c.InputFormat)
	return key
}

func (c ConversionConfig) Output() dictionary.FormatKey {
	key, _ := dictionary.Resolve(c.OutputFormat)
	return key
}

type RemoteConfig struct {
	// CacheDirectory is optional; downloads are not cached when it is empty.
	CacheDirectory string `mapstructure:"cache_directory"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=1"`
	RetryAttempts  uint   `mapstructure:"retry_attempts" validate:"lte=10"`
}

func (c RemoteConfig) ReaderConfig() remote.Config {
	return remote.Config{
		CacheDirectory: c.CacheDirectory,
		Timeout:        time.Duration(c.TimeoutSeconds) * time.Second,
		RetryAttempts:  c.RetryAttempts,
	}
}

type BatchConfig struct {
	Jobs int `mapstructure:"jobs" validate:"gte=1,lte=64"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/gptdict")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("conversion.input_format", string(dictionary.Auto))
	v.SetDefault("conversion.output_format", string(dictionary.FormatGPPGUITOML))
	v.SetDefault("remote.cache_directory", "")
	v.SetDefault("remote.timeout_seconds", 30)
	v.SetDefault("remote.retry_attempts", 2)
	v.SetDefault("batch.jobs", 4)

	if err := v.BindEnv("remote.cache_directory", "GPTDICT_CACHE_DIR"); err != nil {
		return nil, fmt.Errorf("failed to bind GPTDICT_CACHE_DIR environment variable: %w", err)
	}
	if err := v.BindEnv("conversion.output_format", "GPTDICT_OUTPUT_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind GPTDICT_OUTPUT_FORMAT environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
