package cpu

import (
	"fmt"

	"github.com/born-ml/vit/internal/tensor"
)

// MulScalar multiplies each element of the tensor by a scalar value.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := toFloat32("mulScalar", x, scalar)
	return cpu.unaryOp("mulScalar", x, func(v float32) float32 { return v * s })
}

// AddScalar adds a scalar value to each element of the tensor.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := toFloat32("addScalar", x, scalar)
	return cpu.unaryOp("addScalar", x, func(v float32) float32 { return v + s })
}

func toFloat32(name string, x *tensor.RawTensor, scalar any) float32 {
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32 supported)", name, x.DType()))
	}
	s, ok := scalar.(float32)
	if !ok {
		panic(fmt.Sprintf("%s: scalar must be float32, got %T", name, scalar))
	}
	return s
}
