package internal

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T, fn func()) string {
	t.Helper()
	old := logger
	var buf bytes.Buffer
	logger = log.New(&buf, "", 0)
	defer func() { logger = old }()
	fn()
	return buf.String()
}

func TestLogLevels(t *testing.T) {
	defer SetLogLevel(LogLevelInfo)

	t.Run("debug suppressed at info level", func(t *testing.T) {
		SetLogLevel(LogLevelInfo)
		out := captureLog(t, func() {
			LogDebug("hidden %s", "detail")
			LogInfo("visible")
		})
		if strings.Contains(out, "hidden") {
			t.Error("debug output should be suppressed at info level")
		}
		if !strings.Contains(out, "[INFO] visible") {
			t.Errorf("info output missing: %q", out)
		}
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		SetVerbose(true)
		out := captureLog(t, func() {
			LogDebug("now visible")
		})
		if !strings.Contains(out, "[DEBUG] now visible") {
			t.Errorf("debug output missing: %q", out)
		}
		SetVerbose(false)
	})

	t.Run("errors always logged", func(t *testing.T) {
		SetLogLevel(LogLevelError)
		out := captureLog(t, func() {
			LogError("boom: %v", "cause")
			LogWarn("suppressed")
		})
		if !strings.Contains(out, "[ERROR] boom: cause") {
			t.Errorf("error output missing: %q", out)
		}
		if strings.Contains(out, "suppressed") {
			t.Error("warn output should be suppressed at error level")
		}
	})
}
