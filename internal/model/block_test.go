package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/vit/internal/backend/cpu"
	"github.com/born-ml/vit/internal/model"
	"github.com/born-ml/vit/internal/tensor"
)

func TestEncoderBlock_Shape(t *testing.T) {
	backend := cpu.New()
	blk := model.NewEncoderBlock(8, 16, 2, 0, 1e-6, backend)

	x := tensor.Randn[float32](tensor.Shape{2, 5, 8}, backend)
	out := blk.Forward(x)

	assert.True(t, out.Shape().Equal(tensor.Shape{2, 5, 8}),
		"block must preserve shape, got %v", out.Shape())
}

func TestEncoderBlock_ResidualIdentity(t *testing.T) {
	backend := cpu.New()
	blk := model.NewEncoderBlock(4, 8, 2, 0, 1e-6, backend)

	// Zero the output projections of both sub-blocks. Each residual branch
	// then contributes exactly zero and the block is the identity.
	for _, data := range [][]float32{
		blk.Attn.WO.Weight().Tensor().Data(),
		blk.Attn.WO.Bias().Tensor().Data(),
		blk.FC2.Weight().Tensor().Data(),
		blk.FC2.Bias().Tensor().Data(),
	} {
		for i := range data {
			data[i] = 0
		}
	}

	x := tensor.Randn[float32](tensor.Shape{1, 3, 4}, backend)
	out := blk.Forward(x)

	assert.Equal(t, x.Data(), out.Data(), "zeroed projections must make the block an identity")
}

func TestEncoderBlock_Deterministic(t *testing.T) {
	backend := cpu.New()
	blk := model.NewEncoderBlock(8, 16, 2, 0.1, 1e-6, backend)
	// Eval mode by default.

	x := tensor.Randn[float32](tensor.Shape{1, 4, 8}, backend)
	a := blk.Forward(x)
	b := blk.Forward(x)

	assert.Equal(t, a.Data(), b.Data())
}

func TestEncoderBlock_Parameters(t *testing.T) {
	backend := cpu.New()
	blk := model.NewEncoderBlock(8, 16, 2, 0, 1e-6, backend)

	total := 0
	for _, p := range blk.Parameters() {
		total += p.NumElements()
	}

	// 2 norms (2*2*8) + 4 attention projections (4*(64+8)) + MLP
	// ((8*16+16)+(16*8+8))
	assert.Equal(t, 32+288+280, total)
}
