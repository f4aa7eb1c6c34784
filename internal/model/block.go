package model

import (
	"github.com/born-ml/vit/internal/nn"
	"github.com/born-ml/vit/internal/tensor"
)

// EncoderBlock is one pre-norm transformer block:
//
//	x = x + MHA(LN1(x))
//	x = x + MLP(LN2(x))
//
// where MLP is Linear(embed -> mlp), GELU, Dropout, Linear(mlp -> embed),
// Dropout. The block preserves its input shape [batch, seq, embed].
type EncoderBlock[B tensor.Backend] struct {
	Norm1 *nn.LayerNorm[B]
	Attn  *nn.MultiHeadAttention[B]
	Norm2 *nn.LayerNorm[B]
	FC1   *nn.Linear[B]
	Act   *nn.GELU[B]
	Drop1 *nn.Dropout[B]
	FC2   *nn.Linear[B]
	Drop2 *nn.Dropout[B]

	embedDim int
	mlpDim   int
}

// NewEncoderBlock creates a pre-norm encoder block.
func NewEncoderBlock[B tensor.Backend](embedDim, mlpDim, numHeads int, dropout, normEps float32, backend B) *EncoderBlock[B] {
	return &EncoderBlock[B]{
		Norm1:    nn.NewLayerNorm(embedDim, normEps, backend),
		Attn:     nn.NewMultiHeadAttention(embedDim, numHeads, dropout, backend),
		Norm2:    nn.NewLayerNorm(embedDim, normEps, backend),
		FC1:      nn.NewLinear(embedDim, mlpDim, backend),
		Act:      nn.NewGELU[B](),
		Drop1:    nn.NewDropout[B](dropout),
		FC2:      nn.NewLinear(mlpDim, embedDim, backend),
		Drop2:    nn.NewDropout[B](dropout),
		embedDim: embedDim,
		mlpDim:   mlpDim,
	}
}

// Forward applies the block. Input and output shape: [batch, seq, embed].
func (b *EncoderBlock[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	// Attention sub-block with residual
	normed := b.Norm1.Forward(x)
	x = x.Add(b.Attn.Forward(normed, normed, normed, nil))

	// MLP sub-block with residual
	x = x.Add(b.mlp(b.Norm2.Forward(x)))
	return x
}

func (b *EncoderBlock[B]) mlp(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	batch := x.Shape()[0]
	seq := x.Shape()[1]

	h := b.FC1.Forward(x.Reshape(batch*seq, b.embedDim))
	h = b.Act.Forward(h)
	h = b.Drop1.Forward(h)
	h = b.FC2.Forward(h)
	h = b.Drop2.Forward(h)
	return h.Reshape(batch, seq, b.embedDim)
}

// SetTraining switches all dropout in the block between training and eval.
func (b *EncoderBlock[B]) SetTraining(training bool) {
	b.Attn.SetTraining(training)
	b.Drop1.SetTraining(training)
	b.Drop2.SetTraining(training)
}

// Parameters returns all learnable parameters of the block.
func (b *EncoderBlock[B]) Parameters() []*nn.Parameter[B] {
	var params []*nn.Parameter[B]
	params = append(params, b.Norm1.Parameters()...)
	params = append(params, b.Attn.Parameters()...)
	params = append(params, b.Norm2.Parameters()...)
	params = append(params, b.FC1.Parameters()...)
	params = append(params, b.FC2.Parameters()...)
	return params
}
