// Package log configures the process-wide hclog logger.
package log

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
)

var (
	mu sync.Mutex
)

// Init builds the logger, installs it as the hclog default and returns it.
//
// path: Log file path. If empty, logs go to stderr so stdout keeps the trace.
// level: "trace", "debug", "info", "warn" or "error"; a "json:" prefix selects
// JSON output. Unknown levels fall back to info.
func Init(path string, level string) (hclog.Logger, error) {
	mu.Lock()
	defer mu.Unlock()

	var w io.Writer = os.Stderr
	if path != "" {
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, err
			}
		}

		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		w = f
	}

	lvl, json := parseLevel(level)
	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "assetgen",
		Level:      lvl,
		Output:     w,
		JSONFormat: json,
		TimeFormat: "2006-01-02T15:04:05Z07:00",
	})
	hclog.SetDefault(logger)
	return logger, nil
}

func parseLevel(s string) (hclog.Level, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	json := false
	if rest, ok := strings.CutPrefix(s, "json:"); ok {
		json = true
		s = rest
	}
	lvl := hclog.LevelFromString(s)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return lvl, json
}
