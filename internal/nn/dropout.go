package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/vit/internal/tensor"
)

// Dropout randomly zeroes elements of the input with probability p during
// training, scaling the survivors by 1/(1-p) so the expected activation is
// unchanged (inverted dropout). In eval mode, or with p == 0, the input
// passes through untouched.
type Dropout[B tensor.Backend] struct {
	p        float32
	training bool
	rng      *rand.Rand
}

// NewDropout creates a new Dropout module with drop probability p in [0, 1).
// Modules start in eval mode; call SetTraining(true) to activate dropout.
func NewDropout[B tensor.Backend](p float32) *Dropout[B] {
	if p < 0 || p >= 1 {
		panic(fmt.Sprintf("Dropout: probability must be in [0, 1), got %v", p))
	}
	return &Dropout[B]{
		p:   p,
		rng: rand.New(rand.NewSource(rand.Int63())), //nolint:gosec // G404: math/rand intentionally for reproducibility
	}
}

// SetTraining switches the module between training and eval behavior.
func (d *Dropout[B]) SetTraining(training bool) {
	d.training = training
}

// Training reports whether the module is in training mode.
func (d *Dropout[B]) Training() bool {
	return d.training
}

// P returns the drop probability.
func (d *Dropout[B]) P() float32 {
	return d.p
}

// Seed reseeds the mask generator for reproducible dropout.
func (d *Dropout[B]) Seed(seed int64) {
	d.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // G404: math/rand intentionally for reproducibility
}

// Forward applies dropout to the input.
func (d *Dropout[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !d.training || d.p == 0 {
		return input
	}

	output := input.Clone()
	data := output.Data()
	scale := 1 / (1 - d.p)
	for i := range data {
		if d.rng.Float32() < d.p {
			data[i] = 0
		} else {
			data[i] *= scale
		}
	}
	return output
}

// Parameters returns an empty slice (Dropout has no learnable parameters).
func (d *Dropout[B]) Parameters() []*Parameter[B] {
	return nil
}
