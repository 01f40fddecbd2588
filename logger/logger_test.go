package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/lvltrace/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		json  bool
		level string
		want  zapcore.Level
	}{
		{name: "console default level", json: false, level: "", want: zapcore.InfoLevel},
		{name: "console debug", json: false, level: "debug", want: zapcore.DebugLevel},
		{name: "json warn", json: true, level: "WARN", want: zapcore.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := logger.New(tt.json, tt.level)
			require.NoError(t, err)
			require.NotNil(t, l)
			assert.True(t, l.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := logger.New(false, "chatty")
	require.ErrorIs(t, err, logger.ErrUnknownLevel)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, logger.OrNop(nil))
	l := zap.NewExample()
	assert.Same(t, l, logger.OrNop(l))
}
