package nn_test

import (
	"testing"

	"github.com/born-ml/vit/internal/backend/cpu"
	"github.com/born-ml/vit/internal/nn"
	"github.com/born-ml/vit/internal/tensor"
)

func TestDropout_EvalPassthrough(t *testing.T) {
	backend := cpu.New()
	drop := nn.NewDropout[*cpu.CPUBackend](0.5)

	x := tensor.Ones[float32](tensor.Shape{10}, backend)
	out := drop.Forward(x)

	if out != x {
		t.Error("eval mode must return the input unchanged")
	}
}

func TestDropout_ZeroProbability(t *testing.T) {
	backend := cpu.New()
	drop := nn.NewDropout[*cpu.CPUBackend](0)
	drop.SetTraining(true)

	x := tensor.Ones[float32](tensor.Shape{10}, backend)
	out := drop.Forward(x)

	if out != x {
		t.Error("p=0 must return the input unchanged")
	}
}

func TestDropout_Training(t *testing.T) {
	backend := cpu.New()
	drop := nn.NewDropout[*cpu.CPUBackend](0.5)
	drop.SetTraining(true)
	drop.Seed(42)

	n := 10000
	x := tensor.Ones[float32](tensor.Shape{n}, backend)
	out := drop.Forward(x)

	// Input must stay untouched.
	for _, v := range x.Data() {
		if v != 1 {
			t.Fatal("input was modified in place")
		}
	}

	zeros := 0
	for _, v := range out.Data() {
		switch v {
		case 0:
			zeros++
		case 2:
			// survivor scaled by 1/(1-p)
		default:
			t.Fatalf("unexpected value %v, want 0 or 2", v)
		}
	}

	frac := float64(zeros) / float64(n)
	if frac < 0.4 || frac > 0.6 {
		t.Errorf("zero fraction = %v, want approx 0.5", frac)
	}
}

func TestDropout_SeedReproducible(t *testing.T) {
	backend := cpu.New()
	drop := nn.NewDropout[*cpu.CPUBackend](0.3)
	drop.SetTraining(true)

	x := tensor.Ones[float32](tensor.Shape{100}, backend)

	drop.Seed(7)
	a := drop.Forward(x).Data()
	drop.Seed(7)
	b := drop.Forward(x).Data()

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("element %d differs across identical seeds: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestDropout_RejectsInvalidP(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for p >= 1")
		}
	}()
	nn.NewDropout[*cpu.CPUBackend](1)
}
