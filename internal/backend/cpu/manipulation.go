package cpu

import (
	"fmt"

	"github.com/born-ml/vit/internal/tensor"
)

// Cat concatenates tensors along the specified dimension.
// All tensors must have the same shape except along dim.
// Supports negative dim indexing (-1 = last dimension).
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	first := tensors[0]
	shape := first.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("cat: dimension %d out of range for %dD tensor", dim, ndim))
	}
	if first.DType() != tensor.Float32 {
		panic(fmt.Sprintf("cat: unsupported dtype %s (only float32 supported)", first.DType()))
	}

	catSize := 0
	for _, t := range tensors {
		tShape := t.Shape()
		if len(tShape) != ndim {
			panic(fmt.Sprintf("cat: rank mismatch %v vs %v", shape, tShape))
		}
		for d := 0; d < ndim; d++ {
			if d != dim && tShape[d] != shape[d] {
				panic(fmt.Sprintf("cat: shape mismatch at dimension %d: %v vs %v", d, shape, tShape))
			}
		}
		if t.DType() != first.DType() {
			panic(fmt.Sprintf("cat: dtype mismatch %s vs %s", first.DType(), t.DType()))
		}
		catSize += tShape[dim]
	}

	outShape := shape.Clone()
	outShape[dim] = catSize

	result, err := tensor.NewRaw(outShape, first.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cat: %v", err))
	}

	outer := 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}
	inner := 1
	for d := dim + 1; d < ndim; d++ {
		inner *= shape[d]
	}

	// Copy contiguous [dimSize * inner] blocks per outer index
	dst := result.AsFloat32()
	dstOff := 0
	for o := 0; o < outer; o++ {
		for _, t := range tensors {
			block := t.Shape()[dim] * inner
			src := t.AsFloat32()
			copy(dst[dstOff:dstOff+block], src[o*block:(o+1)*block])
			dstOff += block
		}
	}

	return result
}

// Narrow selects a contiguous range [start, start+length) along dim.
func (cpu *CPUBackend) Narrow(x *tensor.RawTensor, dim, start, length int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("narrow: dimension %d out of range for %dD tensor", dim, ndim))
	}
	if start < 0 || length <= 0 || start+length > shape[dim] {
		panic(fmt.Sprintf("narrow: range [%d, %d) out of bounds for dimension size %d", start, start+length, shape[dim]))
	}
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("narrow: unsupported dtype %s (only float32 supported)", x.DType()))
	}

	outShape := shape.Clone()
	outShape[dim] = length

	result, err := tensor.NewRaw(outShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("narrow: %v", err))
	}

	outer := 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}
	inner := 1
	for d := dim + 1; d < ndim; d++ {
		inner *= shape[d]
	}

	src := x.AsFloat32()
	dst := result.AsFloat32()
	srcBlock := shape[dim] * inner
	dstBlock := length * inner
	for o := 0; o < outer; o++ {
		srcOff := o*srcBlock + start*inner
		copy(dst[o*dstBlock:(o+1)*dstBlock], src[srcOff:srcOff+dstBlock])
	}

	return result
}

// Unsqueeze adds a dimension of size 1 at the specified position.
// Supports negative dim indexing.
func (cpu *CPUBackend) Unsqueeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + 1 + dim
	}
	if dim < 0 || dim > ndim {
		panic(fmt.Sprintf("unsqueeze: dimension %d out of range for %dD tensor", dim, ndim))
	}

	newShape := make(tensor.Shape, 0, ndim+1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, 1)
	newShape = append(newShape, shape[dim:]...)

	return cpu.Reshape(x, newShape)
}

// Squeeze removes a dimension of size 1 at the specified position.
// Panics if the dimension size is not 1. Supports negative dim indexing.
func (cpu *CPUBackend) Squeeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("squeeze: dimension %d out of range for %dD tensor", dim, ndim))
	}
	if shape[dim] != 1 {
		panic(fmt.Sprintf("squeeze: dimension %d has size %d, expected 1", dim, shape[dim]))
	}

	newShape := make(tensor.Shape, 0, ndim-1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, shape[dim+1:]...)

	return cpu.Reshape(x, newShape)
}
