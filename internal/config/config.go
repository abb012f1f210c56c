package config

import (
	"os"
	"strings"

	"github.com/alchemmist/tp/internal/logger"
	"github.com/alchemmist/tp/internal/store"
)

type Config struct {
	TmuxBin     string
	SessionsDir string
	LogFile     string
	Debug       bool
}

// Default reads the environment. SessionsDir is empty when no projects
// directory can be derived; loading then fails with store.ErrInvalidProjectsDir.
func Default() Config {
	dir, _ := store.DefaultDir()
	bin := strings.TrimSpace(os.Getenv("TP_TMUX_BIN"))
	if bin == "" {
		bin = "tmux"
	}
	return Config{
		TmuxBin:     bin,
		SessionsDir: dir,
		LogFile:     logger.DefaultPath(),
		Debug:       os.Getenv("TP_DEBUG") != "",
	}
}
