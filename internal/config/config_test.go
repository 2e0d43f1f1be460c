package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Crawler.MaxDepth != 2 || cfg.Crawler.Concurrency != 4 {
		t.Fatalf("expected crawler defaults, got %+v", cfg.Crawler)
	}
	if cfg.Crawler.UserAgent != "webprofiler-bot/0.1" {
		t.Fatalf("unexpected default user agent %q", cfg.Crawler.UserAgent)
	}
	if cfg.LLM.Provider != "openai" || cfg.LLM.Model != "gpt-4o-mini" {
		t.Fatalf("expected llm defaults, got %+v", cfg.LLM)
	}
	if got := cfg.FetchTimeout(); got != 15*time.Second {
		t.Fatalf("expected fetch timeout 15s, got %v", got)
	}
	if got := cfg.LLMCallTimeout(); got != 30*time.Second {
		t.Fatalf("expected llm call timeout 30s, got %v", got)
	}
}

func TestLoadWithFileOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
server:
  port: 9090
crawler:
  max_depth: 3
  concurrency: 8
  user_agent: profiler-agent
  rate_limit_rps: 5
  blocked_extensions: [".pdf", ".zip"]
  max_text_chars: 50000
http:
  timeout_seconds: 45
headless:
  enabled: true
  max_parallel: 2
  nav_timeout_seconds: 30
llm:
  provider: ollama
  model: llama3
  base_url: http://localhost:11434
  temperature: 0.2
logging:
  development: false
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Crawler.MaxDepth != 3 || cfg.Crawler.Concurrency != 8 {
		t.Fatalf("expected crawler overrides to apply, got %+v", cfg.Crawler)
	}
	if len(cfg.Crawler.BlockedExtensions) != 2 || cfg.Crawler.BlockedExtensions[0] != ".pdf" {
		t.Fatalf("expected blocked extensions to load, got %v", cfg.Crawler.BlockedExtensions)
	}
	if cfg.LLM.Provider != "ollama" || cfg.LLM.Model != "llama3" {
		t.Fatalf("expected llm overrides to apply, got %+v", cfg.LLM)
	}
	if cfg.Headless.Enabled != true || cfg.Headless.MaxParallel != 2 {
		t.Fatalf("expected headless overrides to apply, got %+v", cfg.Headless)
	}
	if got := cfg.FetchTimeout(); got != 45*time.Second {
		t.Fatalf("expected fetch timeout 45s, got %v", got)
	}
	if cfg.Logging.Development {
		t.Fatalf("expected development logging disabled")
	}
}

func TestConfigValidateErrors(t *testing.T) {
	t.Parallel()

	base := Config{
		Server:  ServerConfig{Port: 8080},
		Crawler: CrawlerConfig{MaxDepth: 2, Concurrency: 4},
		HTTP:    HTTPConfig{TimeoutSeconds: 15},
		LLM:     LLMConfig{Provider: "openai", Model: "gpt-4o-mini"},
	}

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "invalid port",
			cfg: func() Config {
				c := base
				c.Server.Port = 0
				return c
			}(),
			want: "server.port",
		},
		{
			name: "negative max depth",
			cfg: func() Config {
				c := base
				c.Crawler.MaxDepth = -1
				return c
			}(),
			want: "crawler.max_depth",
		},
		{
			name: "invalid concurrency",
			cfg: func() Config {
				c := base
				c.Crawler.Concurrency = 0
				return c
			}(),
			want: "crawler.concurrency",
		},
		{
			name: "invalid timeout",
			cfg: func() Config {
				c := base
				c.HTTP.TimeoutSeconds = 0
				return c
			}(),
			want: "http.timeout_seconds",
		},
		{
			name: "headless missing max parallel",
			cfg: func() Config {
				c := base
				c.Headless.Enabled = true
				c.Headless.MaxParallel = 0
				return c
			}(),
			want: "headless.max_parallel",
		},
		{
			name: "unknown llm provider",
			cfg: func() Config {
				c := base
				c.LLM.Provider = "bedrock"
				return c
			}(),
			want: "llm.provider",
		},
		{
			name: "missing llm model",
			cfg: func() Config {
				c := base
				c.LLM.Model = ""
				return c
			}(),
			want: "llm.model",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
