package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type LogEntry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name           string
		verbosityLevel int
		logFunc        func(Logger)
		expectedLevel  string
		expectedMsg    string
		shouldLog      bool
	}{
		{
			name:           "info level with default verbosity",
			verbosityLevel: 0,
			logFunc: func(l Logger) {
				l.Info("validation started")
			},
			expectedLevel: "info",
			expectedMsg:   "validation started",
			shouldLog:     true,
		},
		{
			name:           "debug level with insufficient verbosity",
			verbosityLevel: 0,
			logFunc: func(l Logger) {
				l.Debug("debug message")
			},
			shouldLog: false,
		},
		{
			name:           "debug level with sufficient verbosity",
			verbosityLevel: 1,
			logFunc: func(l Logger) {
				l.Debug("debug message")
			},
			expectedLevel: "debug",
			expectedMsg:   "debug message",
			shouldLog:     true,
		},
		{
			name:           "trace level with insufficient verbosity",
			verbosityLevel: 1,
			logFunc: func(l Logger) {
				l.Trace("trace message")
			},
			shouldLog: false,
		},
		{
			name:           "warn level always shown",
			verbosityLevel: 0,
			logFunc: func(l Logger) {
				l.Warn("unknown property")
			},
			expectedLevel: "warn",
			expectedMsg:   "unknown property",
			shouldLog:     true,
		},
		{
			name:           "trace level with sufficient verbosity",
			verbosityLevel: 2,
			logFunc: func(l Logger) {
				l.Trace("trace message")
			},
			expectedLevel: "debug",
			expectedMsg:   "TRACE: trace message",
			shouldLog:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create a buffer to capture log output
			var buf bytes.Buffer

			logger := NewLogger(Config{
				Verbosity: tt.verbosityLevel,
				Output:    &buf,
			})

			tt.logFunc(logger)

			// Check output
			if tt.shouldLog {
				var entry LogEntry
				err := json.Unmarshal(buf.Bytes(), &entry)
				if err != nil {
					t.Logf("Error unmarshaling log entry: %v", err)
					t.Logf("Raw buffer content: %s", buf.String())
				}
				assert.NoError(t, err)

				assert.Equal(t, tt.expectedLevel, entry.Level)
				assert.Equal(t, tt.expectedMsg, entry.Message)
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Verbosity: 0,
		Output:    &buf,
	})

	testFields := Fields{
		"path":  "lintconf.yml",
		"count": 123,
	}

	logger.WithFields(testFields).Info("test message")

	var entry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &entry)
	if err != nil {
		t.Logf("Error unmarshaling log entry: %v", err)
	}
	assert.NoError(t, err)

	assert.Equal(t, "lintconf.yml", entry["path"])
	assert.Equal(t, float64(123), entry["count"])
	assert.Equal(t, "test message", entry["message"])
}

func TestLoggerWithError(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{Output: &buf})

	log.WithError(errors.New("boom")).Error("load failed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "error", entry["level"])
}

func TestLoggerConsoleEncoding(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{Output: &buf, Encoding: EncodingConsole})

	log.Info("plain line")

	assert.Contains(t, buf.String(), "plain line")
	assert.Contains(t, buf.String(), "info")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestNop(t *testing.T) {
	log := Nop()
	log.WithFields(Fields{"a": 1}).Info("discarded")
	log.Trace("discarded")
	assert.NoError(t, log.Sync())
}
