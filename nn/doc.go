// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers and building blocks.
//
// # Overview
//
// This package contains:
//   - Layers: Linear, Conv2D, LayerNorm, MultiHeadAttention
//   - Activations: GELU
//   - Regularization: Dropout
//   - Utilities: Module interface, Parameter
//   - Initialization: Xavier, TruncNormal, Zeros, Ones
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/vit/nn"
//	    "github.com/born-ml/vit/backend/cpu"
//	    "github.com/born-ml/vit/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    layer := nn.NewLinear(784, 128, backend)
//	    input := tensor.Randn[float32](tensor.Shape{32, 784}, backend)
//	    output := layer.Forward(input) // [32, 128]
//	    _ = output
//	}
package nn
