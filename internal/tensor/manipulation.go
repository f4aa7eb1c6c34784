package tensor

// Cat concatenates tensors along the specified dimension.
//
// All tensors must have the same shape except along the concatenation
// dimension. Supports negative dim indexing (-1 = last dimension).
//
// Example:
//
//	a := tensor.Randn[float32](Shape{2, 3}, backend)
//	b := tensor.Randn[float32](Shape{2, 5}, backend)
//	c := tensor.Cat([]*Tensor[float32, B]{a, b}, 1) // Shape: [2, 8]
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	if len(tensors) == 1 {
		return tensors[0].Clone()
	}

	rawTensors := make([]*RawTensor, len(tensors))
	backend := tensors[0].backend
	for i, t := range tensors {
		rawTensors[i] = t.raw
	}

	return New[T, B](backend.Cat(rawTensors, dim), backend)
}

// Unsqueeze adds a dimension of size 1 at the specified position.
// Supports negative dim indexing.
//
// Example:
//
//	x := tensor.Randn[float32](Shape{2, 3}, backend)
//	y := x.Unsqueeze(1)  // Shape: [2, 1, 3]
//	z := x.Unsqueeze(-1) // Shape: [2, 3, 1]
func (t *Tensor[T, B]) Unsqueeze(dim int) *Tensor[T, B] {
	return New[T, B](t.backend.Unsqueeze(t.raw, dim), t.backend)
}

// Squeeze removes a dimension of size 1 at the specified position.
// Panics if the dimension size is not 1. Supports negative dim indexing.
func (t *Tensor[T, B]) Squeeze(dim int) *Tensor[T, B] {
	return New[T, B](t.backend.Squeeze(t.raw, dim), t.backend)
}

// Expand broadcasts the tensor to a larger shape without copying semantics
// changes: dimensions of size 1 are repeated to match the target.
//
// Example:
//
//	x := tensor.Randn[float32](Shape{1, 1, 8}, backend)
//	y := x.Expand(Shape{4, 1, 8}) // Shape: [4, 1, 8]
func (t *Tensor[T, B]) Expand(shape Shape) *Tensor[T, B] {
	return New[T, B](t.backend.Expand(t.raw, shape), t.backend)
}
