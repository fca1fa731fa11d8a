package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultBaseURL   = "https://generativelanguage.googleapis.com/v1beta"
	DefaultTextModel = "gemini-2.5-flash-preview-05-20"
	DefaultTTSModel  = "gemini-2.5-flash-preview-tts"
	DefaultTTSVoice  = "Gacrux"
)

// Config representa toda a configuração do processo, carregada uma única vez no startup
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Gemini GeminiConfig `mapstructure:"gemini"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Port      int    `mapstructure:"port"`
	StaticDir string `mapstructure:"static_dir"`
}

// GeminiConfig agrupa a chave da API e os parâmetros do endpoint externo.
// APIKey vazia não impede o startup: cada requisição de geração responde com erro de configuração.
type GeminiConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	TextModel string        `mapstructure:"text_model"`
	TTSModel  string        `mapstructure:"tts_model"`
	TTSVoice  string        `mapstructure:"tts_voice"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	File   string `mapstructure:"file"`
	MaxAge int    `mapstructure:"max_age"`
}

// Addr retorna o endereço de escuta do servidor HTTP
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// Load lê defaults, o arquivo opcional em configFile e por fim as variáveis de ambiente.
// A chave "gemini.api_key" corresponde à variável GEMINI_API_KEY.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		if err := readConfigFile(v, configFile); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.Server.Port <= 0 {
		return nil, fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}
	if cfg.Gemini.Timeout < 0 {
		return nil, fmt.Errorf("invalid gemini timeout: %s", cfg.Gemini.Timeout)
	}
	cfg.Gemini.BaseURL = strings.TrimRight(cfg.Gemini.BaseURL, "/")

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.static_dir", "public")

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.base_url", DefaultBaseURL)
	v.SetDefault("gemini.text_model", DefaultTextModel)
	v.SetDefault("gemini.tts_model", DefaultTTSModel)
	v.SetDefault("gemini.tts_voice", DefaultTTSVoice)
	// zero: sem limite na chamada externa
	v.SetDefault("gemini.timeout", time.Duration(0))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_age", 7)
}

func readConfigFile(v *viper.Viper, configFile string) error {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(configFile), ".")); ext {
	case "json":
		v.SetConfigType("json")
	case "yaml", "yml":
		v.SetConfigType("yaml")
	default:
		return fmt.Errorf("unsupported config file type: %q", ext)
	}

	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}
	return nil
}
