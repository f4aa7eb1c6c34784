package nn

import (
	"github.com/born-ml/vit/internal/tensor"
)

// GELUBackend is the optional backend capability for the GELU activation.
type GELUBackend interface {
	GELU(x *tensor.RawTensor) *tensor.RawTensor
}

// GELU applies the Gaussian Error Linear Unit activation:
// gelu(x) = x * Phi(x), where Phi is the standard normal CDF.
//
// The module is parameterless. It requires the backend to implement the
// GELUBackend capability and panics otherwise.
type GELU[B tensor.Backend] struct{}

// NewGELU creates a new GELU activation module.
func NewGELU[B tensor.Backend]() *GELU[B] {
	return &GELU[B]{}
}

// Forward applies GELU element-wise.
func (g *GELU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend, ok := any(input.Backend()).(GELUBackend)
	if !ok {
		panic("GELU: backend must implement GELU operation")
	}
	return tensor.New[float32, B](backend.GELU(input.Raw()), input.Backend())
}

// Parameters returns an empty slice (GELU has no learnable parameters).
func (g *GELU[B]) Parameters() []*Parameter[B] {
	return nil
}
