package nn_test

import (
	"math"
	"testing"

	"github.com/born-ml/vit/internal/backend/cpu"
	"github.com/born-ml/vit/internal/nn"
	"github.com/born-ml/vit/internal/tensor"
)

func TestLayerNorm_Normalizes(t *testing.T) {
	backend := cpu.New()
	ln := nn.NewLayerNorm(3, 1e-6, backend)

	x, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	out := ln.Forward(x).Data()
	want := []float32{-1.2247, 0, 1.2247}
	for i := range want {
		if math.Abs(float64(out[i]-want[i])) > 0.01 {
			t.Errorf("element %d: got %v, want %v", i, out[i], want[i])
		}
	}
}

func TestLayerNorm_GammaBeta(t *testing.T) {
	backend := cpu.New()
	ln := nn.NewLayerNorm(2, 1e-6, backend)

	// gamma = 2, beta = 1: output is 2 * normalized + 1
	gamma := ln.Gamma.Tensor().Data()
	gamma[0], gamma[1] = 2, 2
	beta := ln.Beta.Tensor().Data()
	beta[0], beta[1] = 1, 1

	x, err := tensor.FromSlice([]float32{-1, 1}, tensor.Shape{1, 2}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	out := ln.Forward(x).Data()
	// normalized values are close to -1 and 1
	if math.Abs(float64(out[0]+1)) > 0.01 || math.Abs(float64(out[1]-3)) > 0.01 {
		t.Errorf("got %v, want approx [-1 3]", out)
	}
}

func TestLayerNorm_3D(t *testing.T) {
	backend := cpu.New()
	ln := nn.NewLayerNorm(4, 1e-6, backend)

	x := tensor.Randn[float32](tensor.Shape{2, 3, 4}, backend)
	out := ln.Forward(x)

	if !out.Shape().Equal(tensor.Shape{2, 3, 4}) {
		t.Fatalf("shape = %v, want [2 3 4]", out.Shape())
	}

	// Every row of the last dimension should have near-zero mean.
	data := out.Data()
	for row := 0; row < 6; row++ {
		var sum float32
		for col := 0; col < 4; col++ {
			sum += data[row*4+col]
		}
		if math.Abs(float64(sum/4)) > 1e-4 {
			t.Errorf("row %d mean = %v, want approx 0", row, sum/4)
		}
	}
}

func TestLayerNorm_Parameters(t *testing.T) {
	backend := cpu.New()
	ln := nn.NewLayerNorm(8, 1e-6, backend)

	params := ln.Parameters()
	if len(params) != 2 {
		t.Fatalf("got %d parameters, want 2", len(params))
	}
	if params[0].NumElements() != 8 || params[1].NumElements() != 8 {
		t.Errorf("parameter sizes = %d, %d; want 8, 8", params[0].NumElements(), params[1].NumElements())
	}
}

func BenchmarkLayerNorm_768(b *testing.B) {
	backend := cpu.New()
	ln := nn.NewLayerNorm(768, 1e-6, backend)
	x := tensor.Randn[float32](tensor.Shape{1, 197, 768}, backend)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ln.Forward(x)
	}
}
