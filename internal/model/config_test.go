package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/vit/internal/model"
)

func TestConfig_ParameterCount(t *testing.T) {
	tests := []struct {
		name string
		cfg  model.Config
		want int
	}{
		{"base", model.BaseConfig(), 86_567_656},
		{"large", model.LargeConfig(), 304_326_632},
		{"huge", model.HugeConfig(), 632_045_800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.ParameterCount())
		})
	}
}

func TestConfig_Patches(t *testing.T) {
	base := model.BaseConfig()
	assert.Equal(t, 196, base.NumPatches())
	assert.Equal(t, 197, base.SeqLen())

	huge := model.HugeConfig()
	assert.Equal(t, 256, huge.NumPatches())
	assert.Equal(t, 257, huge.SeqLen())
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, model.BaseConfig().Validate())
	assert.NoError(t, model.LargeConfig().Validate())
	assert.NoError(t, model.HugeConfig().Validate())
}

func TestConfig_ValidateRejectsBadGeometry(t *testing.T) {
	cfg := model.BaseConfig()
	cfg.ImageSize = 225
	assert.Error(t, cfg.Validate(), "225 is not divisible by patch size 16")

	cfg = model.BaseConfig()
	cfg.EmbedDim = 10
	cfg.NumHeads = 3
	assert.Error(t, cfg.Validate(), "10 is not divisible by 3 heads")
}

func TestConfig_ValidateRejectsBadValues(t *testing.T) {
	cfg := model.BaseConfig()
	cfg.NumLayers = 0
	assert.Error(t, cfg.Validate())

	cfg = model.BaseConfig()
	cfg.Dropout = 1
	assert.Error(t, cfg.Validate())

	cfg = model.BaseConfig()
	cfg.Dropout = -0.1
	assert.Error(t, cfg.Validate())

	cfg = model.BaseConfig()
	cfg.NormEps = 0
	assert.Error(t, cfg.Validate())
}
