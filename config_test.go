package main

import (
	"strings"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"valid", func(*Config) {}, ""},
		{"cert without key", func(c *Config) { c.tlsCert = "cert.pem" }, "--tls-cert and --tls-key"},
		{"port too high", func(c *Config) { c.port = 70000 }, "invalid port"},
		{"empty database", func(c *Config) { c.database = " " }, "--database"},
		{"zero poll interval", func(c *Config) { c.pollInterval = 0 }, "poll interval"},
		{"zero quiz rounds", func(c *Config) { c.quizRounds = 0 }, "quiz"},
		{"negative dare rounds", func(c *Config) { c.dareRounds = -1 }, "dare"},
	}

	for _, tt := range tests {
		cfg := testConfig()
		tt.modify(cfg)

		err := cfg.validate()
		switch {
		case tt.want == "" && err != nil:
			t.Fatalf("%s: unexpected error %v", tt.name, err)
		case tt.want != "" && (err == nil || !strings.Contains(err.Error(), tt.want)):
			t.Fatalf("%s: error = %v, want it to mention %q", tt.name, err, tt.want)
		}
	}
}

func TestNewCmdDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	newCmd(cfg)

	if cfg.port != 8080 || cfg.pollInterval != 2*time.Second || cfg.database != "couplebox.db" {
		t.Fatalf("defaults = port %d, poll %s, database %q", cfg.port, cfg.pollInterval, cfg.database)
	}
	if cfg.quizRounds != 10 || cfg.thisThatRounds != 5 || cfg.dareRounds != 3 {
		t.Fatalf("round defaults = %+v", cfg.setSizes())
	}
	if err := cfg.validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
}

func TestNewCmdReadsEnvironment(t *testing.T) {
	t.Setenv("COUPLEBOX_PORT", "9999")
	t.Setenv("COUPLEBOX_QUIZ_ROUNDS", "4")
	t.Setenv("COUPLEBOX_STRICT", "true")
	t.Setenv("COUPLEBOX_POLL_INTERVAL", "5s")

	cfg := &Config{}
	newCmd(cfg)

	if cfg.port != 9999 || cfg.quizRounds != 4 || !cfg.strict || cfg.pollInterval != 5*time.Second {
		t.Fatalf("env config = port %d, quiz %d, strict %v, poll %s", cfg.port, cfg.quizRounds, cfg.strict, cfg.pollInterval)
	}
}

func TestScheme(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	if cfg.scheme() != "http" {
		t.Fatalf("scheme = %s, want http", cfg.scheme())
	}
	cfg.tlsCert, cfg.tlsKey = "c", "k"
	if cfg.scheme() != "https" {
		t.Fatalf("scheme = %s, want https", cfg.scheme())
	}
}
