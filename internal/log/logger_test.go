package log

import (
	"testing"

	"shop-bench/internal/config"
)

func TestNewLoggerBuildsForBothEncodings(t *testing.T) {
	for _, encoding := range []string{"console", "json"} {
		logger, err := NewLogger(config.LoggingConfig{
			Level:            "debug",
			Encoding:         encoding,
			OutputPaths:      []string{"stdout"},
			ErrorOutputPaths: []string{"stderr"},
		})
		if err != nil {
			t.Fatalf("NewLogger(%s) returned error: %v", encoding, err)
		}
		logger.Debug("启动自检")
		_ = logger.Sync()
	}
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	if _, err := NewLogger(config.LoggingConfig{Level: "loud", Encoding: "console"}); err == nil {
		t.Errorf("expected error for unknown level")
	}
}
