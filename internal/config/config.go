package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// Configured reports whether credentials are present. The mailer refuses to
// dial without them and reports a configuration outcome instead.
func (s SMTPConfig) Configured() bool {
	return s.Username != "" && s.Password != ""
}

type ApprovalConfig struct {
	// Secret signs the approve/deny link tokens. Links are rejected when the
	// secret rotates or the token expires.
	Secret   string        `yaml:"secret"`
	TokenTTL time.Duration `yaml:"token_ttl"`
	BaseURL  string        `yaml:"base_url"`
}

type AgentConfig struct {
	Model             string        `yaml:"model"`
	MaxSteps          int           `yaml:"max_steps"`
	MaxTranscriptLen  int           `yaml:"max_transcript_len"`
	CompletionTimeout time.Duration `yaml:"completion_timeout"`
	// DefaultEmployeeID is the fallback recipient for the agent's email
	// action when no employee id was observed earlier in the run.
	DefaultEmployeeID string `yaml:"default_employee_id"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Approval ApprovalConfig `yaml:"approval"`
	Agent    AgentConfig    `yaml:"agent"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{Port: "3000"},
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: 587,
		},
		Approval: ApprovalConfig{
			TokenTTL: 72 * time.Hour,
			BaseURL:  "http://127.0.0.1:3000",
		},
		Agent: AgentConfig{
			Model:             "gemini-2.5-pro",
			MaxSteps:          5,
			MaxTranscriptLen:  16,
			CompletionTimeout: 60 * time.Second,
			DefaultEmployeeID: "E101",
		},
	}
}

// Load reads config.yaml from the working directory when present, then applies
// environment overrides. A missing file is fine; env alone is enough.
func Load() (*Config, error) {
	cfg := defaults()

	if data, err := os.ReadFile("config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = p
		}
	}
	if v := os.Getenv("SENDER_EMAIL"); v != "" {
		cfg.SMTP.Username = v
		if cfg.SMTP.From == "" {
			cfg.SMTP.From = v
		}
	}
	if v := os.Getenv("SENDER_PASSWORD"); v != "" {
		cfg.SMTP.Password = v
	}
	if v := os.Getenv("APPROVAL_SECRET"); v != "" {
		cfg.Approval.Secret = v
	}
	if v := os.Getenv("APPROVAL_BASE_URL"); v != "" {
		cfg.Approval.BaseURL = v
	}
	if v := os.Getenv("AGENT_MODEL"); v != "" {
		cfg.Agent.Model = v
	}
	if v := os.Getenv("AGENT_DEFAULT_EMPLOYEE_ID"); v != "" {
		cfg.Agent.DefaultEmployeeID = v
	}
}
