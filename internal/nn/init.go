package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/vit/internal/tensor"
)

// Xavier creates a tensor initialized with Xavier/Glorot uniform distribution.
//
// Values are drawn from U(-limit, limit) where limit = sqrt(6 / (fan_in + fan_out)).
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	limit := float32(math.Sqrt(6.0 / float64(fanIn+fanOut)))

	t := tensor.Zeros[float32](shape, backend)
	data := t.Data()
	for i := range data {
		data[i] = (rand.Float32()*2 - 1) * limit //nolint:gosec // G404: math/rand intentionally for reproducibility
	}
	return t
}

// Zeros creates a zero-initialized tensor.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

// Ones creates a one-initialized tensor.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Ones[float32](shape, backend)
}

// TruncNormal fills the tensor in place with values drawn from a normal
// distribution with mean 0 and the given standard deviation, resampling any
// draw that falls outside two standard deviations.
func TruncNormal[B tensor.Backend](t *tensor.Tensor[float32, B], std float32) {
	data := t.Data()
	for i := range data {
		var z float64
		for {
			z = rand.NormFloat64() //nolint:gosec // G404: math/rand intentionally for reproducibility
			if math.Abs(z) <= 2 {
				break
			}
		}
		data[i] = float32(z) * std
	}
}
