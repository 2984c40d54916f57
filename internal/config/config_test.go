package config

import (
	"reflect"
	"testing"

	"github.com/benbeisheim/notation-chess/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		Addr:          ":3000",
		AllowOrigins:  []string{"http://localhost:5173"},
		LogLevel:      log.LevelInfo,
		CastleHistory: model.CastleHistoryOwnColor,
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
}

func TestLoadEnvAndFlags(t *testing.T) {
	t.Setenv(envAddr, ":8080")
	t.Setenv(envCastleHistory, "all")
	t.Setenv(envLogLevel, "debug")
	cfg, err := Load([]string{"-addr", ":9090", "-allow-origins", "http://a.test, http://b.test"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("flag did not override env: %q", cfg.Addr)
	}
	if cfg.CastleHistory != model.CastleHistoryAllColors || cfg.LogLevel != log.LevelDebug {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.AllowOrigins, []string{"http://a.test", "http://b.test"}) {
		t.Fatalf("origins %v", cfg.AllowOrigins)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	for _, args := range [][]string{
		{"-castle-history", "sometimes"},
		{"-log-level", "loud"},
		{"-no-such-flag"},
	} {
		if _, err := Load(args); err == nil {
			t.Fatalf("Load(%v) accepted", args)
		}
	}
}
