package cpu

import (
	"fmt"

	"github.com/born-ml/vit/internal/parallel"
	"github.com/born-ml/vit/internal/tensor"
)

// BatchMatMul performs batched matrix multiplication.
//
// For 3D tensors: [B, M, K] @ [B, K, N] -> [B, M, N]
// For 4D tensors: [B, H, M, K] @ [B, H, K, N] -> [B, H, M, N]
//
// Each batch slice is an independent GEMM; slices run on the worker pool.
func (cpu *CPUBackend) BatchMatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != len(bShape) {
		panic(fmt.Sprintf("batchmatmul: rank mismatch %v vs %v", aShape, bShape))
	}
	if len(aShape) != 3 && len(aShape) != 4 {
		panic(fmt.Sprintf("batchmatmul: expected 3D or 4D tensors, got %dD", len(aShape)))
	}
	if a.DType() != tensor.Float32 || b.DType() != tensor.Float32 {
		panic(fmt.Sprintf("batchmatmul: unsupported dtypes %s/%s (only float32 supported)", a.DType(), b.DType()))
	}

	ndim := len(aShape)
	batch := 1
	for i := 0; i < ndim-2; i++ {
		if aShape[i] != bShape[i] {
			panic(fmt.Sprintf("batchmatmul: batch dimension %d mismatch: %d vs %d", i, aShape[i], bShape[i]))
		}
		batch *= aShape[i]
	}

	m, k := aShape[ndim-2], aShape[ndim-1]
	if bShape[ndim-2] != k {
		panic(fmt.Sprintf("batchmatmul: incompatible shapes %v and %v (inner dimensions %d != %d)",
			aShape, bShape, k, bShape[ndim-2]))
	}
	n := bShape[ndim-1]

	outShape := aShape.Clone()
	outShape[ndim-1] = n

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("batchmatmul: failed to create result tensor: %v", err))
	}

	aData := a.AsFloat32()
	bData := b.AsFloat32()
	cData := result.AsFloat32()

	parallel.For(batch, func(i int) {
		aSlice := aData[i*m*k : (i+1)*m*k]
		bSlice := bData[i*k*n : (i+1)*k*n]
		cSlice := cData[i*m*n : (i+1)*m*n]
		gemm(m, n, k, aSlice, bSlice, cSlice)
	}, cpu.parallel)

	return result
}
