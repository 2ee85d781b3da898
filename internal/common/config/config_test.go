package config

import (
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	LogLevel log.Level     `validate:"-"`
	Delay    time.Duration `validate:"gte=0"`
	Name     string        `validate:"required"`
	Size     int           `validate:"gt=0"`
}

func TestCustomHooks(t *testing.T) {
	v := viper.New()
	v.Set("logLevel", "WARN")
	v.Set("delay", "3s")
	v.Set("name", "x")
	v.Set("size", 4)

	var c testConfig
	require.NoError(t, v.Unmarshal(&c, CustomHooks...))
	assert.Equal(t, log.WarnLevel, c.LogLevel)
	assert.Equal(t, 3*time.Second, c.Delay)
	assert.Equal(t, "x", c.Name)
	assert.Equal(t, 4, c.Size)
}

func TestLogLevelDecodeHook_InvalidLevel(t *testing.T) {
	v := viper.New()
	v.Set("logLevel", "loud")
	var c testConfig
	assert.Error(t, v.Unmarshal(&c, CustomHooks...))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(testConfig{Name: "x", Size: 1}))
	assert.Error(t, Validate(testConfig{Size: 1}))
	assert.Error(t, Validate(testConfig{Name: "x", Size: 0}))
}

func TestStripPrefix(t *testing.T) {
	assert.Equal(t, "Submission.Attempts", stripPrefix("Config.Submission.Attempts"))
	assert.Equal(t, "Outdir", stripPrefix("Outdir"))
}
