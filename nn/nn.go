// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/vit/internal/nn"
	"github.com/born-ml/vit/tensor"
)

// Type aliases for the public API

// Module is the interface implemented by all neural network layers.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter wraps a named tensor that belongs to a module.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// Linear is a fully connected layer: y = x @ W.T + b.
type Linear[B tensor.Backend] = nn.Linear[B]

// Conv2D is a 2D convolution layer.
type Conv2D[B tensor.Backend] = nn.Conv2D[B]

// LayerNorm normalizes activations over the last dimension.
type LayerNorm[B tensor.Backend] = nn.LayerNorm[B]

// MultiHeadAttention is the multi-head attention mechanism.
type MultiHeadAttention[B tensor.Backend] = nn.MultiHeadAttention[B]

// GELU is the Gaussian Error Linear Unit activation.
type GELU[B tensor.Backend] = nn.GELU[B]

// Dropout randomly zeroes activations during training.
type Dropout[B tensor.Backend] = nn.Dropout[B]

// Constructors

// NewParameter creates a named parameter from a tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// NewLinear creates a fully connected layer.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend)
}

// NewConv2D creates a 2D convolution layer with square kernels.
func NewConv2D[B tensor.Backend](inChannels, outChannels, kernelSize, stride, padding int, backend B) *Conv2D[B] {
	return nn.NewConv2D(inChannels, outChannels, kernelSize, stride, padding, backend)
}

// NewLayerNorm creates a LayerNorm layer over the last dimension.
func NewLayerNorm[B tensor.Backend](normalizedShape int, epsilon float32, backend B) *LayerNorm[B] {
	return nn.NewLayerNorm(normalizedShape, epsilon, backend)
}

// NewMultiHeadAttention creates a multi-head attention module.
func NewMultiHeadAttention[B tensor.Backend](embedDim, numHeads int, dropout float32, backend B) *MultiHeadAttention[B] {
	return nn.NewMultiHeadAttention(embedDim, numHeads, dropout, backend)
}

// NewGELU creates a GELU activation module.
func NewGELU[B tensor.Backend]() *GELU[B] {
	return nn.NewGELU[B]()
}

// NewDropout creates a dropout module with drop probability p.
func NewDropout[B tensor.Backend](p float32) *Dropout[B] {
	return nn.NewDropout[B](p)
}

// Initialization

// Xavier creates a tensor initialized with Xavier/Glorot uniform distribution.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, backend)
}

// TruncNormal fills the tensor in place with a truncated normal distribution
// (mean 0, given std, clipped at two standard deviations).
func TruncNormal[B tensor.Backend](t *tensor.Tensor[float32, B], std float32) {
	nn.TruncNormal(t, std)
}
