package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/digitalbank/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var levelColors = map[log.Level]lipgloss.AdaptiveColor{
	log.ErrorLevel: {Light: "#FF6B6B", Dark: "#FF6B6B"},
	log.WarnLevel:  {Light: "#EE6FF8", Dark: "#EE6FF8"},
	log.InfoLevel:  {Light: "#04B575", Dark: "#04B575"},
	log.DebugLevel: {Light: "#7E57C2", Dark: "#7E57C2"},
}

var levelLabels = map[log.Level]string{
	log.ErrorLevel: "ERR",
	log.WarnLevel:  "WRN",
	log.InfoLevel:  "INF",
	log.DebugLevel: "DBG",
}

func loggerStyles() *log.Styles {
	styles := log.DefaultStyles()
	for level, color := range levelColors {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(levelLabels[level]).
			Bold(true).
			Padding(0, 1).
			Foreground(color)
	}

	keyColor := levelColors[log.DebugLevel]
	for _, key := range []string{"error", "account_id", "customer_id", "tax_id", "event_type"} {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(keyColor)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(levelColors[log.ErrorLevel])
	return styles
}

// newLogger builds a charmbracelet/log handler configured from cfg and
// wraps it in a slog.Logger.
func newLogger(cfg *config.Log, w io.Writer) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text"}
	}
	formatter := log.TextFormatter
	switch cfg.Format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	handler.SetStyles(loggerStyles())
	return slog.New(handler)
}

// SetupLogger builds the process logger and installs it as the slog default.
func SetupLogger(cfg *config.Log) *slog.Logger {
	logger := newLogger(cfg, os.Stdout)
	slog.SetDefault(logger)
	return logger
}
