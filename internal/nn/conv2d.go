package nn

import (
	"fmt"

	"github.com/born-ml/vit/internal/tensor"
)

// Conv2D implements a 2D convolution layer.
//
// Input shape: [batch, in_channels, height, width]
// Weight shape: [out_channels, in_channels, kernel_size, kernel_size]
// Output shape: [batch, out_channels, out_h, out_w]
//
// Weights are initialized using Xavier/Glorot initialization with
// fan_in = in_channels * kernel_size^2, biases to zeros.
type Conv2D[B tensor.Backend] struct {
	inChannels  int
	outChannels int
	kernelSize  int
	stride      int
	padding     int
	weight      *Parameter[B] // [out_channels, in_channels, k, k]
	bias        *Parameter[B] // [out_channels]
	backend     B
}

// NewConv2D creates a new Conv2D layer with square kernels.
func NewConv2D[B tensor.Backend](inChannels, outChannels, kernelSize, stride, padding int, backend B) *Conv2D[B] {
	fanIn := inChannels * kernelSize * kernelSize
	fanOut := outChannels * kernelSize * kernelSize

	weightShape := tensor.Shape{outChannels, inChannels, kernelSize, kernelSize}
	weightTensor := Xavier(fanIn, fanOut, weightShape, backend)
	biasTensor := Zeros(tensor.Shape{outChannels}, backend)

	return &Conv2D[B]{
		inChannels:  inChannels,
		outChannels: outChannels,
		kernelSize:  kernelSize,
		stride:      stride,
		padding:     padding,
		weight:      NewParameter("weight", weightTensor),
		bias:        NewParameter("bias", biasTensor),
		backend:     backend,
	}
}

// Forward applies the convolution.
//
// Input shape: [batch, in_channels, height, width]
// Output shape: [batch, out_channels, out_h, out_w]
func (c *Conv2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	inputShape := input.Shape()
	if len(inputShape) != 4 {
		panic(fmt.Sprintf("Conv2D.Forward: expected 4D input [N,C,H,W], got shape %v", inputShape))
	}
	if inputShape[1] != c.inChannels {
		panic(fmt.Sprintf("Conv2D.Forward: expected %d input channels, got %d", c.inChannels, inputShape[1]))
	}

	raw := c.backend.Conv2D(input.Raw(), c.weight.Tensor().Raw(), c.stride, c.padding)
	output := tensor.New[float32, B](raw, c.backend)

	// Bias broadcast as [1, out_channels, 1, 1]
	bReshaped := c.bias.Tensor().Reshape(1, c.outChannels, 1, 1)
	return output.Add(bReshaped)
}

// Parameters returns the learnable parameters [weight, bias].
func (c *Conv2D[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{c.weight, c.bias}
}

// Weight returns the weight parameter.
func (c *Conv2D[B]) Weight() *Parameter[B] {
	return c.weight
}

// Bias returns the bias parameter.
func (c *Conv2D[B]) Bias() *Parameter[B] {
	return c.bias
}
