package cpu

import (
	"fmt"

	"github.com/born-ml/vit/internal/tensor"
)

// SumDim sums tensor elements along the specified dimension.
// Supports negative dim indexing (-1 = last dimension).
// If keepDim is true, the reduced dimension is kept with size 1.
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("sumdim: dimension %d out of range for %dD tensor", dim, ndim))
	}
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("sumdim: unsupported dtype %s (only float32 supported)", x.DType()))
	}

	var outShape tensor.Shape
	if keepDim {
		outShape = shape.Clone()
		outShape[dim] = 1
	} else {
		outShape = make(tensor.Shape, 0, ndim-1)
		for i := 0; i < ndim; i++ {
			if i != dim {
				outShape = append(outShape, shape[i])
			}
		}
	}

	result, err := tensor.NewRaw(outShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sumdim: %v", err))
	}

	src := x.AsFloat32()
	dst := result.AsFloat32()

	strides := shape.ComputeStrides()

	// Output strides with the reduced dimension pinned to size 1
	reduced := shape.Clone()
	reduced[dim] = 1
	outStrides := reduced.ComputeStrides()

	for i := range src {
		outIdx := 0
		temp := i
		for d := 0; d < ndim; d++ {
			coord := temp / strides[d]
			temp %= strides[d]
			if d != dim {
				outIdx += coord * outStrides[d]
			}
		}
		dst[outIdx] += src[i]
	}

	return result
}

// MeanDim computes the mean of tensor elements along the specified dimension.
// Supports negative dim indexing (-1 = last dimension).
func (cpu *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	sum := cpu.SumDim(x, dim, keepDim)

	shape := x.Shape()
	if dim < 0 {
		dim = len(shape) + dim
	}
	divisor := float32(shape[dim])

	data := sum.AsFloat32()
	for i := range data {
		data[i] /= divisor
	}

	return sum
}
