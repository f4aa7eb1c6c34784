package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/born-ml/vit/internal/parallel"
	"github.com/born-ml/vit/internal/tensor"
)

// Conv2D performs 2D convolution using the im2col algorithm.
//
// Input shape: [N, C_in, H, W]
// Kernel shape: [C_out, C_in, K_h, K_w]
// Output shape: [N, C_out, H_out, W_out]
//
// Algorithm:
//  1. Transform input patches into rows of a column matrix (im2col)
//  2. Multiply by the flattened kernel with a single GEMM
//  3. Rearrange the GEMM output into [N, C_out, H_out, W_out]
//
// Reference: "High Performance Convolutional Neural Networks for Document
// Processing" (Chellapilla et al., 2006).
func (cpu *CPUBackend) Conv2D(input, kernel *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()

	if len(inputShape) != 4 {
		panic(fmt.Sprintf("conv2d: input must be 4D [N,C,H,W], got %dD", len(inputShape)))
	}
	if len(kernelShape) != 4 {
		panic(fmt.Sprintf("conv2d: kernel must be 4D [C_out,C_in,K_h,K_w], got %dD", len(kernelShape)))
	}
	if input.DType() != tensor.Float32 || kernel.DType() != tensor.Float32 {
		panic(fmt.Sprintf("conv2d: unsupported dtypes %s/%s (only float32 supported)", input.DType(), kernel.DType()))
	}

	n := inputShape[0]
	cIn := inputShape[1]
	h := inputShape[2]
	w := inputShape[3]
	cOut := kernelShape[0]
	kh := kernelShape[2]
	kw := kernelShape[3]

	if cIn != kernelShape[1] {
		panic(fmt.Sprintf("conv2d: input channels %d != kernel channels %d", cIn, kernelShape[1]))
	}

	hOut := (h+2*padding-kh)/stride + 1
	wOut := (w+2*padding-kw)/stride + 1
	if hOut <= 0 || wOut <= 0 {
		panic(fmt.Sprintf("conv2d: invalid output dimensions: out_h=%d, out_w=%d (check stride/padding)", hOut, wOut))
	}

	output, err := tensor.NewRaw(tensor.Shape{n, cOut, hOut, wOut}, input.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("conv2d: failed to create output tensor: %v", err))
	}

	inputData := input.AsFloat32()
	kernelData := kernel.AsFloat32()
	outputData := output.AsFloat32()

	// Step 1: im2col.
	// colBuf: [N * H_out * W_out, C_in * K_h * K_w], one row per output position.
	colWidth := cIn * kh * kw
	colHeight := n * hOut * wOut
	colBuf := make([]float32, colHeight*colWidth)

	parallel.For(colHeight, func(row int) {
		rest := row
		outW := rest % wOut
		rest /= wOut
		outH := rest % hOut
		img := rest / hOut

		hStart := outH*stride - padding
		wStart := outW*stride - padding
		bufIdx := row * colWidth

		for c := 0; c < cIn; c++ {
			for i := 0; i < kh; i++ {
				for j := 0; j < kw; j++ {
					hIn := hStart + i
					wIn := wStart + j
					if hIn >= 0 && hIn < h && wIn >= 0 && wIn < w {
						colBuf[bufIdx] = inputData[img*cIn*h*w+c*h*w+hIn*w+wIn]
					} else {
						colBuf[bufIdx] = 0 // zero padding
					}
					bufIdx++
				}
			}
		}
	}, cpu.parallel)

	// Step 2: GEMM. The kernel is already flat as [C_out, C_in*K_h*K_w] in
	// row-major order, so gemmOut = colBuf @ kernel^T.
	// gemmOut: [N * H_out * W_out, C_out]
	gemmOut := make([]float32, colHeight*cOut)
	blas32.Gemm(blas.NoTrans, blas.Trans, 1,
		blas32.General{Rows: colHeight, Cols: colWidth, Stride: colWidth, Data: colBuf},
		blas32.General{Rows: cOut, Cols: colWidth, Stride: colWidth, Data: kernelData},
		0,
		blas32.General{Rows: colHeight, Cols: cOut, Stride: cOut, Data: gemmOut})

	// Step 3: rearrange [N*H_out*W_out, C_out] -> [N, C_out, H_out, W_out].
	spatial := hOut * wOut
	parallel.For(n, func(img int) {
		for c := 0; c < cOut; c++ {
			for s := 0; s < spatial; s++ {
				outputData[img*cOut*spatial+c*spatial+s] = gemmOut[(img*spatial+s)*cOut+c]
			}
		}
	}, cpu.parallel)

	return output
}
