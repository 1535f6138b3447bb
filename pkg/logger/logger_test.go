package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/host-exporter/pkg/config"
	"github.com/host-exporter/pkg/logger"
)

// mockFatalHook 捕获 fatal 日志（不退出进程）
type mockFatalHook struct {
	called bool
}

func (h *mockFatalHook) Hook(e zapcore.Entry) error {
	if e.Level == zapcore.FatalLevel {
		h.called = true
	}
	return nil
}

// noExit 替代默认的 os.Exit
type noExit struct{}

func (noExit) OnWrite(*zapcore.CheckedEntry, []zapcore.Field) {}

func TestLoggerBeforeInitIsSilent(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.Info("not initialised yet")
		logger.Error("still fine")
	})
}

func TestLoggerLevels(t *testing.T) {
	cfg := &config.ZapLogConfig{
		Level:   "debug",
		Format:  "json",
		Path:    t.TempDir(),
		MaxSize: 1,
		MaxAge:  1,
	}

	l, err := logger.InitLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Same(t, l, logger.GetGlobalLogger())

	logger.SetDefaultCollector("test")
	assert.Equal(t, "test", logger.GetDefaultCollector())

	logger.Debug("debug msg")
	logger.Info("info msg", zap.String("k", "v"))
	logger.Warn("warn msg")
	logger.Error("error msg")

	assert.Panics(t, func() { logger.Panic("panic msg") })

	// Fatal 测试（使用 zap.Hooks，不触发 os.Exit）
	hook := &mockFatalHook{}
	fl := logger.GetGlobalLogger().WithOptions(zap.Hooks(hook.Hook), zap.WithFatalHook(noExit{}))
	fl.Fatal("fatal msg")
	assert.True(t, hook.called, "fatal hook was not triggered")
}

func TestInitLoggerNilConfig(t *testing.T) {
	_, err := logger.InitLogger(nil)
	assert.Error(t, err)
}
