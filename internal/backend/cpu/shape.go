package cpu

import (
	"fmt"

	"github.com/born-ml/vit/internal/tensor"
)

// Expand broadcasts the tensor to a new shape.
// Dimensions of size 1 (and missing leading dimensions) are repeated.
func (cpu *CPUBackend) Expand(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	xShape := x.Shape()

	if len(newShape) < len(xShape) {
		panic(fmt.Sprintf("expand: new shape %v has fewer dimensions than input shape %v",
			newShape, xShape))
	}

	// Align shapes from the right: each dimension must match or be 1
	offset := len(newShape) - len(xShape)
	for i := 0; i < len(xShape); i++ {
		if xShape[i] != 1 && xShape[i] != newShape[offset+i] {
			panic(fmt.Sprintf("expand: cannot expand dimension %d from %d to %d",
				i, xShape[i], newShape[offset+i]))
		}
	}
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("expand: unsupported dtype %s (only float32 supported)", x.DType()))
	}

	result, err := tensor.NewRaw(newShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("expand: %v", err))
	}

	src := x.AsFloat32()
	dst := result.AsFloat32()
	outStrides := newShape.ComputeStrides()
	inStrides := computeBroadcastStridesForShape(xShape, newShape)

	for outIdx := range dst {
		dst[outIdx] = src[computeFlatIndex(outIdx, outStrides, inStrides)]
	}

	return result
}
