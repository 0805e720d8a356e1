package zap

import (
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewLogger(zap.New(core))

	h := log.NewHelper(log.With(l, "game_id", 18980))
	h.Infof("loaded %d groups", 6)
	h.Debug("dropped")
	_ = l.Log(log.LevelWarn, "odd")

	entries := logs.AllUntimed()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "loaded 6 groups", entries[0].Message)
		assert.Equal(t, int64(18980), entries[0].ContextMap()["game_id"])
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
		assert.Equal(t, "!MISSING-VALUE", entries[1].ContextMap()["odd"])
	}
}

func TestConfigDefaults(t *testing.T) {
	var c *Config
	d := c.withDefaults()
	assert.Equal(t, "app", d.App)
	assert.Equal(t, 100, d.MaxSizeMB)
	assert.Equal(t, 7, d.MaxBackups)

	d = (&Config{App: "reelcfg", MaxAgeDays: 3}).withDefaults()
	assert.Equal(t, "reelcfg", d.App)
	assert.Equal(t, 3, d.MaxAgeDays)
}
