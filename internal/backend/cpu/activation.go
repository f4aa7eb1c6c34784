package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/vit/internal/tensor"
)

// Softmax computes softmax along the specified dimension.
// Softmax(x_i) = exp(x_i - max) / sum(exp(x_j - max)) for all j in dimension.
func (cpu *CPUBackend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("softmax: dimension %d out of range for tensor of rank %d", dim, ndim))
	}
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("softmax: unsupported dtype %s (only float32 supported)", x.DType()))
	}

	result, err := tensor.NewRaw(shape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("softmax: %v", err))
	}

	src := x.AsFloat32()
	dst := result.AsFloat32()
	strides := shape.ComputeStrides()

	dimSize := shape[dim]
	dimStride := strides[dim]

	// Groups of elements that share one softmax computation
	numRows := 1
	for i := range shape {
		if i != dim {
			numRows *= shape[i]
		}
	}

	for row := 0; row < numRows; row++ {
		baseIdx := 0
		remaining := row
		for i := 0; i < len(shape); i++ {
			if i == dim {
				continue
			}
			coord := remaining % shape[i]
			remaining /= shape[i]
			baseIdx += coord * strides[i]
		}

		// Max subtraction for numerical stability
		maxVal := float32(math.Inf(-1))
		for i := 0; i < dimSize; i++ {
			idx := baseIdx + i*dimStride
			if src[idx] > maxVal {
				maxVal = src[idx]
			}
		}

		var sum float32
		for i := 0; i < dimSize; i++ {
			idx := baseIdx + i*dimStride
			expVal := float32(math.Exp(float64(src[idx] - maxVal)))
			dst[idx] = expVal
			sum += expVal
		}

		for i := 0; i < dimSize; i++ {
			idx := baseIdx + i*dimStride
			dst[idx] /= sum
		}
	}

	return result
}

// GELU applies the Gaussian Error Linear Unit element-wise:
// gelu(x) = x * Phi(x), with Phi the standard normal CDF (exact erf form).
func (cpu *CPUBackend) GELU(x *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("gelu: unsupported dtype %s (only float32 supported)", x.DType()))
	}

	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("gelu: %v", err))
	}

	src := x.AsFloat32()
	dst := result.AsFloat32()
	for i := range src {
		v := float64(src[i])
		dst[i] = float32(v * 0.5 * (1 + math.Erf(v/math.Sqrt2)))
	}

	return result
}
