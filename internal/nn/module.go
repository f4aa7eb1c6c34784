// Package nn provides neural network layers and building blocks.
//
// All modules are generic over the computation backend B, which must
// implement the tensor.Backend interface. Modules operate on float32
// tensors and expose their learnable state through Parameters().
package nn

import (
	"github.com/born-ml/vit/internal/tensor"
)

// Module is the interface implemented by all neural network layers.
type Module[B tensor.Backend] interface {
	// Forward computes the module's output for the given input.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns the module's learnable parameters.
	Parameters() []*Parameter[B]
}
