package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Locale != "en" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Fatalf("expected 15s timeout, got %s", cfg.API.Timeout)
	}
	if cfg.Token.Store != StoreFile || cfg.Token.Key != "token" {
		t.Fatalf("unexpected token defaults: %+v", cfg.Token)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env by default")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"API_BASE_URL": "https://cards.example.com/api/v1",
		"API_TIMEOUT":  "3s",
		"TOKEN_STORE":  "redis",
		"REDIS_ADDR":   "cache:6380",
		"REDIS_DB":     "2",
		"LOCALE":       "zh-CN",
	}))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.API.BaseURL != "https://cards.example.com/api/v1" || cfg.API.Timeout != 3*time.Second {
		t.Fatalf("unexpected api config: %+v", cfg.API)
	}
	if cfg.Token.Store != StoreRedis || cfg.Redis.Addr != "cache:6380" || cfg.Redis.DB != 2 {
		t.Fatalf("unexpected store config: %+v %+v", cfg.Token, cfg.Redis)
	}
	if cfg.Locale != "zh-CN" {
		t.Fatalf("unexpected locale %q", cfg.Locale)
	}
}

func TestLoadFrom_RejectsUnknownStore(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"TOKEN_STORE": "sqlite",
	}))
	if err == nil {
		t.Fatalf("expected error for unknown store")
	}
}
