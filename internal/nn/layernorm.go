package nn

import (
	"github.com/born-ml/vit/internal/tensor"
)

// LayerNorm applies Layer Normalization over the last dimension.
//
// Formula: Y = gamma * (X - mean(X)) / sqrt(var(X) + eps) + beta
//
// Mean and variance are computed along the last dimension; gamma and beta
// are learnable [d_model] vectors. Gamma is initialized to ones, beta to
// zeros.
//
// Example:
//
//	layernorm := nn.NewLayerNorm(768, 1e-6, backend)
//	output := layernorm.Forward(hiddenStates) // [..., 768] -> [..., 768]
type LayerNorm[B tensor.Backend] struct {
	Gamma   *Parameter[B] // learnable scale [d_model]
	Beta    *Parameter[B] // learnable shift [d_model]
	Epsilon float32       // numerical stability constant
	backend B
}

// NewLayerNorm creates a new LayerNorm layer.
//
// normalizedShape is the size of the last (feature) dimension; epsilon is
// the numerical stability constant (typically 1e-5 or 1e-6).
func NewLayerNorm[B tensor.Backend](normalizedShape int, epsilon float32, backend B) *LayerNorm[B] {
	gamma := tensor.Ones[float32](tensor.Shape{normalizedShape}, backend)
	beta := tensor.Zeros[float32](tensor.Shape{normalizedShape}, backend)

	return &LayerNorm[B]{
		Gamma:   NewParameter("gamma", gamma),
		Beta:    NewParameter("beta", beta),
		Epsilon: epsilon,
		backend: backend,
	}
}

// Forward applies LayerNorm to the input tensor.
//
// Shapes: [..., d_model] -> [..., d_model]
func (l *LayerNorm[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	// Mean along last dimension (keepdim)
	mean := x.MeanDim(-1, true)

	xCentered := x.Sub(mean)

	// var = mean((x - mean)^2)
	variance := xCentered.Mul(xCentered).MeanDim(-1, true)

	// x_norm = x_centered / sqrt(var + eps)
	invStd := variance.AddScalar(l.Epsilon).Rsqrt()
	xNorm := xCentered.Mul(invStd)

	// gamma/beta are [d_model]; right-aligned broadcasting matches the
	// last dimension of [..., d_model]
	return xNorm.Mul(l.Gamma.Tensor()).Add(l.Beta.Tensor())
}

// Parameters returns the learnable parameters (gamma and beta).
func (l *LayerNorm[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.Gamma, l.Beta}
}
