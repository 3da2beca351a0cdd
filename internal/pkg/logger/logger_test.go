package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestBuildConfig_Mode(t *testing.T) {
	tests := []struct {
		name         string
		mode         string
		wantEncoding string
	}{
		{"prod uses JSON", "prod", "json"},
		{"dev uses console", "dev", "console"},
		{"unknown falls back to console", "staging", "console"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := buildConfig("info", tt.mode)
			assert.Equal(t, tt.wantEncoding, cfg.Encoding)
		})
	}
}

func TestBuildConfig_Level(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"garbage", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := buildConfig(tt.level, "prod")
			assert.Equal(t, tt.want, cfg.Level.Level())
		})
	}
}

func TestNew_NeverNil(t *testing.T) {
	log := New("info", "prod")
	require.NotNil(t, log)
	log = New("", "")
	require.NotNil(t, log)
}
