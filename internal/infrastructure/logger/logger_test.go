package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"chatty", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		for _, format := range []string{"json", "console"} {
			l := New(tt.level, format)
			if !l.Core().Enabled(tt.want) {
				t.Fatalf("level %q/%s: %v not enabled", tt.level, format, tt.want)
			}
			if tt.want > zapcore.DebugLevel && l.Core().Enabled(tt.want-1) {
				t.Fatalf("level %q/%s: %v should be disabled", tt.level, format, tt.want-1)
			}
		}
	}
}
