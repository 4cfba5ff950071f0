package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string `koanf:"port" env:"PORT" validate:"required,numeric"`
	Environment  string `koanf:"env" env:"ENV" validate:"oneof=development production test"`
	ReadTimeout  int    `koanf:"read_timeout" env:"READ_TIMEOUT" validate:"min=1"`
	WriteTimeout int    `koanf:"write_timeout" env:"WRITE_TIMEOUT" validate:"min=1"`
	BodyLimit    int    `koanf:"body_limit" env:"BODY_LIMIT" validate:"min=1024"` // байты

	LogLevel string `koanf:"log_level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogJSON  bool   `koanf:"log_json" env:"LOG_JSON"`

	CORSOrigins []string `koanf:"cors_origins" env:"CORS_ORIGINS" validate:"min=1,dive,required"`

	ConverterURL string `koanf:"converter_url" env:"CONVERTER_URL" validate:"required,url"`
	LibraryURL   string `koanf:"library_url" env:"LIBRARY_URL" validate:"required,url"`

	LibraryDBPath  string `koanf:"library_db_path" env:"LIBRARY_DB_PATH" validate:"required"`
	LibraryStorage string `koanf:"library_storage" env:"LIBRARY_STORAGE" validate:"required"`

	ExportPretty bool `koanf:"export_pretty" env:"EXPORT_PRETTY"`
}

// Default: значения по умолчанию до переопределений из окружения.
func Default() *Config {
	return &Config{
		Port:           "3000",
		Environment:    "development",
		ReadTimeout:    10,
		WriteTimeout:   10,
		BodyLimit:      16 * 1024 * 1024,
		LogLevel:       "info",
		CORSOrigins:    []string{"*"},
		ConverterURL:   "http://localhost:3001",
		LibraryURL:     "http://localhost:3002",
		LibraryDBPath:  "data/db/library.db",
		LibraryStorage: "data/presets",
	}
}

// WithPort меняет порт по умолчанию; PORT из окружения все равно важнее.
func WithPort(port string) func(*Config) {
	return func(c *Config) {
		c.Port = port
	}
}

// Load загружает конфигурацию: значения по умолчанию, затем переменные окружения
func Load(overrides ...func(*Config)) (*Config, error) {
	defaults := Default()
	for _, override := range overrides {
		override(defaults)
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	envToKey := envMappings()
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: "",
		TransformFunc: func(key string, value string) (string, any) {
			path, ok := envToKey[key]
			if !ok || value == "" {
				return "", nil
			}
			return path, value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				trimSliceHook,
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// MustLoad вызывает Load и завершает процесс при ошибке.
func MustLoad(overrides ...func(*Config)) *Config {
	cfg, err := Load(overrides...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// envMappings строит таблицу ENV_NAME -> ключ koanf по тегам структуры.
func envMappings() map[string]string {
	out := make(map[string]string)
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("env")
		key := field.Tag.Get("koanf")
		if name == "" || key == "" {
			continue
		}
		out[name] = key
	}
	return out
}

// trimSliceHook убирает пробелы вокруг элементов списка вида "a, b".
func trimSliceHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf([]string{}) {
		return data, nil
	}
	items, ok := data.([]string)
	if !ok {
		return data, nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out, nil
}
