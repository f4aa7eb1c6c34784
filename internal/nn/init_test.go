package nn_test

import (
	"math"
	"testing"

	"github.com/born-ml/vit/internal/backend/cpu"
	"github.com/born-ml/vit/internal/nn"
	"github.com/born-ml/vit/internal/tensor"
)

func TestXavier_Bounds(t *testing.T) {
	backend := cpu.New()
	fanIn, fanOut := 64, 32
	limit := float32(math.Sqrt(6.0 / float64(fanIn+fanOut)))

	w := nn.Xavier(fanIn, fanOut, tensor.Shape{fanOut, fanIn}, backend)

	nonZero := false
	for _, v := range w.Data() {
		if v < -limit || v > limit {
			t.Fatalf("value %v outside [-%v, %v]", v, limit, limit)
		}
		if v != 0 {
			nonZero = true
		}
	}
	if !nonZero {
		t.Error("all values are zero")
	}
}

func TestTruncNormal_Clipped(t *testing.T) {
	backend := cpu.New()
	std := float32(0.02)
	bound := 2 * std * 1.0001

	w := tensor.Zeros[float32](tensor.Shape{10000}, backend)
	nn.TruncNormal(w, std)

	nonZero := 0
	for _, v := range w.Data() {
		if v < -bound || v > bound {
			t.Fatalf("value %v outside two standard deviations", v)
		}
		if v != 0 {
			nonZero++
		}
	}
	if nonZero < 9000 {
		t.Errorf("only %d of 10000 values are non-zero", nonZero)
	}
}

func TestTruncNormal_StdApprox(t *testing.T) {
	backend := cpu.New()
	std := float32(0.02)

	w := tensor.Zeros[float32](tensor.Shape{50000}, backend)
	nn.TruncNormal(w, std)

	var sumSq float64
	for _, v := range w.Data() {
		sumSq += float64(v) * float64(v)
	}
	sample := math.Sqrt(sumSq / 50000)

	// Truncation at 2 sigma shrinks the sample std slightly below the
	// nominal value (about 0.88 sigma).
	if sample < 0.015 || sample > 0.021 {
		t.Errorf("sample std = %v, want approx 0.0176", sample)
	}
}
