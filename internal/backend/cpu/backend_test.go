package cpu

import (
	"math"
	"testing"

	"github.com/born-ml/vit/internal/tensor"
)

// raw builds a float32 RawTensor for tests.
func raw(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	rt, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	copy(rt.AsFloat32(), data)
	return rt
}

func assertFloats(t *testing.T, got, want []float32, tol float32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if diff := float32(math.Abs(float64(got[i] - want[i]))); diff > tol {
			t.Errorf("element %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAdd_SameShape(t *testing.T) {
	backend := New()
	a := raw(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := raw(t, []float32{10, 20, 30, 40}, tensor.Shape{2, 2})

	result := backend.Add(a, b)
	assertFloats(t, result.AsFloat32(), []float32{11, 22, 33, 44}, 0)
}

func TestAdd_BroadcastRow(t *testing.T) {
	backend := New()
	a := raw(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := raw(t, []float32{10, 20, 30}, tensor.Shape{3})

	result := backend.Add(a, b)
	if !result.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("shape = %v, want [2 3]", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{11, 22, 33, 14, 25, 36}, 0)
}

func TestAdd_BroadcastBatch(t *testing.T) {
	// [2, 2, 2] + [1, 2, 2]: positional embedding shape against a batch.
	backend := New()
	a := raw(t, []float32{1, 2, 3, 4, 5, 6, 7, 8}, tensor.Shape{2, 2, 2})
	b := raw(t, []float32{10, 20, 30, 40}, tensor.Shape{1, 2, 2})

	result := backend.Add(a, b)
	assertFloats(t, result.AsFloat32(), []float32{11, 22, 33, 44, 15, 26, 37, 48}, 0)
}

func TestSubMulDiv(t *testing.T) {
	backend := New()
	a := raw(t, []float32{10, 20, 30, 40}, tensor.Shape{4})
	b := raw(t, []float32{2, 4, 5, 8}, tensor.Shape{4})

	assertFloats(t, backend.Sub(a, b).AsFloat32(), []float32{8, 16, 25, 32}, 0)
	assertFloats(t, backend.Mul(a, b).AsFloat32(), []float32{20, 80, 150, 320}, 0)
	assertFloats(t, backend.Div(a, b).AsFloat32(), []float32{5, 5, 6, 5}, 0)
}

func TestTranspose_2D(t *testing.T) {
	backend := New()
	a := raw(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	result := backend.Transpose(a)
	if !result.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape = %v, want [3 2]", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{1, 4, 2, 5, 3, 6}, 0)
}

func TestTranspose_Axes(t *testing.T) {
	// [2, 3, 4] with axes (0, 2, 1) swaps the last two dims.
	backend := New()
	data := make([]float32, 24)
	for i := range data {
		data[i] = float32(i)
	}
	a := raw(t, data, tensor.Shape{2, 3, 4})

	result := backend.Transpose(a, 0, 2, 1)
	if !result.Shape().Equal(tensor.Shape{2, 4, 3}) {
		t.Fatalf("shape = %v, want [2 4 3]", result.Shape())
	}
	out := result.AsFloat32()
	// out[b][j][i] == data[b][i][j]
	if out[0] != 0 || out[1] != 4 || out[2] != 8 {
		t.Errorf("first row = %v %v %v, want 0 4 8", out[0], out[1], out[2])
	}
	if out[12] != 12 || out[13] != 16 {
		t.Errorf("second batch start = %v %v, want 12 16", out[12], out[13])
	}
}

func TestReshape(t *testing.T) {
	backend := New()
	a := raw(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	result := backend.Reshape(a, tensor.Shape{3, 2})
	if !result.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape = %v, want [3 2]", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{1, 2, 3, 4, 5, 6}, 0)
}

func TestCat_Dim0(t *testing.T) {
	backend := New()
	a := raw(t, []float32{1, 2}, tensor.Shape{1, 2})
	b := raw(t, []float32{3, 4, 5, 6}, tensor.Shape{2, 2})

	result := backend.Cat([]*tensor.RawTensor{a, b}, 0)
	if !result.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape = %v, want [3 2]", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{1, 2, 3, 4, 5, 6}, 0)
}

func TestCat_Dim1(t *testing.T) {
	// Class token prepended to a patch sequence: [1,1,2] cat [1,2,2] on dim 1.
	backend := New()
	cls := raw(t, []float32{9, 9}, tensor.Shape{1, 1, 2})
	patches := raw(t, []float32{1, 2, 3, 4}, tensor.Shape{1, 2, 2})

	result := backend.Cat([]*tensor.RawTensor{cls, patches}, 1)
	if !result.Shape().Equal(tensor.Shape{1, 3, 2}) {
		t.Fatalf("shape = %v, want [1 3 2]", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{9, 9, 1, 2, 3, 4}, 0)
}

func TestNarrow(t *testing.T) {
	backend := New()
	a := raw(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{1, 3, 2})

	result := backend.Narrow(a, 1, 0, 1)
	if !result.Shape().Equal(tensor.Shape{1, 1, 2}) {
		t.Fatalf("shape = %v, want [1 1 2]", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{1, 2}, 0)

	mid := backend.Narrow(a, 1, 1, 2)
	assertFloats(t, mid.AsFloat32(), []float32{3, 4, 5, 6}, 0)
}

func TestExpand(t *testing.T) {
	backend := New()
	a := raw(t, []float32{1, 2}, tensor.Shape{1, 1, 2})

	result := backend.Expand(a, tensor.Shape{3, 1, 2})
	if !result.Shape().Equal(tensor.Shape{3, 1, 2}) {
		t.Fatalf("shape = %v, want [3 1 2]", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{1, 2, 1, 2, 1, 2}, 0)
}

func TestUnsqueezeSqueeze(t *testing.T) {
	backend := New()
	a := raw(t, []float32{1, 2, 3}, tensor.Shape{3})

	up := backend.Unsqueeze(a, 0)
	if !up.Shape().Equal(tensor.Shape{1, 3}) {
		t.Fatalf("Unsqueeze shape = %v, want [1 3]", up.Shape())
	}

	down := backend.Squeeze(up, 0)
	if !down.Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("Squeeze shape = %v, want [3]", down.Shape())
	}
}

func TestSumDim(t *testing.T) {
	backend := New()
	a := raw(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	rows := backend.SumDim(a, 1, true)
	if !rows.Shape().Equal(tensor.Shape{2, 1}) {
		t.Fatalf("shape = %v, want [2 1]", rows.Shape())
	}
	assertFloats(t, rows.AsFloat32(), []float32{3, 7}, 0)

	cols := backend.SumDim(a, 0, false)
	if !cols.Shape().Equal(tensor.Shape{2}) {
		t.Fatalf("shape = %v, want [2]", cols.Shape())
	}
	assertFloats(t, cols.AsFloat32(), []float32{4, 6}, 0)
}

func TestMeanDim(t *testing.T) {
	backend := New()
	a := raw(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	result := backend.MeanDim(a, 1, true)
	if !result.Shape().Equal(tensor.Shape{2, 1}) {
		t.Fatalf("shape = %v, want [2 1]", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{2, 5}, 1e-6)
}

func TestScalarOps(t *testing.T) {
	backend := New()
	a := raw(t, []float32{1, 2, 3, 4}, tensor.Shape{4})

	assertFloats(t, backend.MulScalar(a, float32(0.5)).AsFloat32(), []float32{0.5, 1, 1.5, 2}, 0)
	assertFloats(t, backend.AddScalar(a, float32(10)).AsFloat32(), []float32{11, 12, 13, 14}, 0)
}

func TestMathOps(t *testing.T) {
	backend := New()
	a := raw(t, []float32{1, 4, 9, 16}, tensor.Shape{4})

	assertFloats(t, backend.Sqrt(a).AsFloat32(), []float32{1, 2, 3, 4}, 1e-6)
	assertFloats(t, backend.Rsqrt(a).AsFloat32(), []float32{1, 0.5, 1.0 / 3, 0.25}, 1e-6)

	e := raw(t, []float32{0, 1}, tensor.Shape{2})
	assertFloats(t, backend.Exp(e).AsFloat32(), []float32{1, float32(math.E)}, 1e-6)
}
