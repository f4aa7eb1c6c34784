package tensor_test

import (
	"testing"

	"github.com/born-ml/vit/internal/backend/cpu"
	"github.com/born-ml/vit/internal/tensor"
)

func TestFromSlice(t *testing.T) {
	backend := cpu.New()

	data := []float32{1, 2, 3, 4, 5, 6}
	x, err := tensor.FromSlice(data, tensor.Shape{2, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	if !x.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("shape = %v, want [2 3]", x.Shape())
	}
	if x.At(0, 0) != 1 || x.At(1, 2) != 6 {
		t.Errorf("unexpected values: At(0,0)=%v At(1,2)=%v", x.At(0, 0), x.At(1, 2))
	}
}

func TestFromSlice_ShapeMismatch(t *testing.T) {
	backend := cpu.New()

	_, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{2, 3}, backend)
	if err == nil {
		t.Error("expected error for mismatched shape, got nil")
	}
}

func TestTensor_SetAndAt(t *testing.T) {
	backend := cpu.New()

	x := tensor.Zeros[float32](tensor.Shape{3, 4}, backend)
	x.Set(42, 1, 2)

	if got := x.At(1, 2); got != 42 {
		t.Errorf("At(1,2) = %v, want 42", got)
	}
	if got := x.At(2, 1); got != 0 {
		t.Errorf("At(2,1) = %v, want 0", got)
	}
}

func TestTensor_Clone(t *testing.T) {
	backend := cpu.New()

	x := tensor.Ones[float32](tensor.Shape{2, 2}, backend)
	y := x.Clone()
	y.Set(99, 0, 0)

	if x.At(0, 0) != 1 {
		t.Errorf("clone is not independent: original At(0,0) = %v, want 1", x.At(0, 0))
	}
	if y.At(0, 0) != 99 {
		t.Errorf("clone At(0,0) = %v, want 99", y.At(0, 0))
	}
}

func TestCreation(t *testing.T) {
	backend := cpu.New()

	ones := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
	for _, v := range ones.Data() {
		if v != 1 {
			t.Fatalf("Ones contains %v", v)
		}
	}

	full := tensor.Full[float32](tensor.Shape{4}, 2.5, backend)
	for _, v := range full.Data() {
		if v != 2.5 {
			t.Fatalf("Full contains %v", v)
		}
	}

	randn := tensor.Randn[float32](tensor.Shape{100}, backend)
	allZero := true
	for _, v := range randn.Data() {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Error("Randn returned all zeros")
	}
}

func TestTensor_Reshape(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	y := x.Reshape(3, 2)
	if !y.Shape().Equal(tensor.Shape{3, 2}) {
		t.Errorf("shape = %v, want [3 2]", y.Shape())
	}
	if y.At(2, 1) != 6 {
		t.Errorf("At(2,1) = %v, want 6", y.At(2, 1))
	}
}
