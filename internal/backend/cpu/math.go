package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/vit/internal/tensor"
)

// Exp computes the element-wise exponential.
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryOp("exp", x, func(v float32) float32 {
		return float32(math.Exp(float64(v)))
	})
}

// Sqrt computes the element-wise square root.
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryOp("sqrt", x, func(v float32) float32 {
		return float32(math.Sqrt(float64(v)))
	})
}

// Rsqrt computes the element-wise reciprocal square root (1/sqrt(x)).
func (cpu *CPUBackend) Rsqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryOp("rsqrt", x, func(v float32) float32 {
		return float32(1 / math.Sqrt(float64(v)))
	})
}

func (cpu *CPUBackend) unaryOp(name string, x *tensor.RawTensor, op func(v float32) float32) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32 supported)", name, x.DType()))
	}

	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	src := x.AsFloat32()
	dst := result.AsFloat32()
	for i := range src {
		dst[i] = op(src[i])
	}

	return result
}
