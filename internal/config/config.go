package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/benbeisheim/notation-chess/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

type Config struct {
	Addr          string
	AllowOrigins  []string
	LogLevel      log.Level
	CastleHistory model.CastleHistoryRule
}

// env names override the matching flag defaults
const (
	envAddr          = "CHESS_ADDR"
	envAllowOrigins  = "CHESS_ALLOW_ORIGINS"
	envLogLevel      = "CHESS_LOG_LEVEL"
	envCastleHistory = "CHESS_CASTLE_HISTORY"
)

// Load parses args (without the program name). Values from the environment
// replace the built-in defaults; explicit flags win over both.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	addr := fs.String("addr", envOr(envAddr, ":3000"), "listen address")
	origins := fs.String("allow-origins", envOr(envAllowOrigins, "http://localhost:5173"), "comma separated CORS and websocket origins")
	level := fs.String("log-level", envOr(envLogLevel, "info"), "log level: trace, debug, info, warn, error")
	castle := fs.String("castle-history", envOr(envCastleHistory, "own"), "moves that can forbid castling: own or all")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:         *addr,
		AllowOrigins: splitList(*origins),
	}
	var err error
	if cfg.LogLevel, err = parseLevel(*level); err != nil {
		return Config{}, err
	}
	if cfg.CastleHistory, err = model.ParseCastleHistoryRule(*castle); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLevel(s string) (log.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
