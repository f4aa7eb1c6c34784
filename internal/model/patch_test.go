package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/vit/internal/backend/cpu"
	"github.com/born-ml/vit/internal/model"
	"github.com/born-ml/vit/internal/tensor"
)

func TestPatchEmbedding_Shape(t *testing.T) {
	backend := cpu.New()
	patch := model.NewPatchEmbedding(4, 2, 1, 3, backend)

	assert.Equal(t, 4, patch.NumPatches())

	x := tensor.Randn[float32](tensor.Shape{1, 1, 4, 4}, backend)
	out := patch.Forward(x)

	assert.True(t, out.Shape().Equal(tensor.Shape{1, 4, 3}),
		"shape = %v, want [1 4 3]", out.Shape())
}

func TestPatchEmbedding_RowMajorOrder(t *testing.T) {
	backend := cpu.New()
	patch := model.NewPatchEmbedding(4, 2, 1, 3, backend)

	// Embedding channel 0 sums its patch, the other channels are zeroed.
	// Weight shape is [embed, channels, k, k] = [3, 1, 2, 2].
	params := patch.Parameters()
	require.Len(t, params, 2)
	w := params[0].Tensor().Data()
	for i := range w {
		if i < 4 {
			w[i] = 1
		} else {
			w[i] = 0
		}
	}

	data := make([]float32, 16)
	for i := range data {
		data[i] = float32(i + 1)
	}
	x, err := tensor.FromSlice(data, tensor.Shape{1, 1, 4, 4}, backend)
	require.NoError(t, err)

	out := patch.Forward(x)

	// Patches are ordered row-major over the grid: top-left, top-right,
	// bottom-left, bottom-right.
	wantSums := []float32{14, 22, 46, 54}
	for p, want := range wantSums {
		assert.InDelta(t, want, out.At(0, p, 0), 1e-4, "patch %d", p)
	}

	// The zeroed embedding channels stay zero.
	for p := 0; p < 4; p++ {
		assert.InDelta(t, 0, out.At(0, p, 1), 1e-6)
		assert.InDelta(t, 0, out.At(0, p, 2), 1e-6)
	}
}

func TestPatchEmbedding_Batch(t *testing.T) {
	backend := cpu.New()
	patch := model.NewPatchEmbedding(8, 4, 3, 16, backend)

	x := tensor.Randn[float32](tensor.Shape{4, 3, 8, 8}, backend)
	out := patch.Forward(x)

	assert.True(t, out.Shape().Equal(tensor.Shape{4, 4, 16}),
		"shape = %v, want [4 4 16]", out.Shape())
}
