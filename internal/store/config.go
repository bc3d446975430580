package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// PlaceholderToken is the value shipped in sample env files; it counts as unset.
const PlaceholderToken = "your-token-here"

type Config struct {
	Server struct {
		Host            string        `yaml:"host" default:"0.0.0.0" validate:"required"`
		Port            int           `yaml:"port" default:"10000" validate:"min=1,max=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s" validate:"gt=0"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"45s" validate:"gt=0"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s" validate:"gt=0"`
		CORS            bool          `yaml:"cors" default:"true"`
	} `yaml:"server"`
	LLM struct {
		Provider     string        `yaml:"provider" default:"HUGGINGFACE" validate:"oneof=HUGGINGFACE NONE"`
		Endpoint     string        `yaml:"endpoint" default:"https://router.huggingface.co/models/meta-llama/Llama-3.2-3B-Instruct" validate:"required,url"`
		ModelName    string        `yaml:"model_name" default:"Llama-3.2-3B" validate:"required"`
		TokenEnv     string        `yaml:"token_env" default:"HF_API_TOKEN" validate:"required"`
		Timeout      time.Duration `yaml:"timeout" default:"30s" validate:"gt=0"`
		MaxNewTokens int           `yaml:"max_new_tokens" default:"300" validate:"min=1,max=4096"`
		Temperature  float64       `yaml:"temperature" default:"0.3" validate:"gte=0,lte=2"`
		TopP         float64       `yaml:"top_p" default:"0.9" validate:"gt=0,lte=1"`
		// Token is read from the environment variable named by TokenEnv.
		Token string `yaml:"-"`
	} `yaml:"llm"`
	History struct {
		Capacity     int `yaml:"capacity" default:"100" validate:"min=1"`
		DefaultLimit int `yaml:"default_limit" default:"20" validate:"min=1"`
	} `yaml:"history"`
	Metrics struct {
		Enabled bool `yaml:"enabled" default:"true"`
	} `yaml:"metrics"`
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed '%s' (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// HasToken reports whether a usable inference token is configured.
func (c *Config) HasToken() bool {
	t := strings.TrimSpace(c.LLM.Token)
	return t != "" && t != PlaceholderToken
}

// UseRemoteModel reports whether analyses should call the inference endpoint.
func (c *Config) UseRemoteModel() bool {
	return c.LLM.Provider == "HUGGINGFACE" && c.HasToken()
}

// LoadConfig reads path on top of the defaults, applies environment overrides
// and validates the result. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply config defaults: %w", err)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("HF_API_URL"); v != "" {
		c.LLM.Endpoint = v
	}
	if v := os.Getenv("HF_MODEL_NAME"); v != "" {
		c.LLM.ModelName = v
	}
	c.LLM.Token = os.Getenv(c.LLM.TokenEnv)
	return nil
}
