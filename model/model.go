// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package model provides the public API for the Vision Transformer
// image classifier.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/vit/backend/cpu"
//	    "github.com/born-ml/vit/model"
//	    "github.com/born-ml/vit/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    m, err := model.New(model.BaseConfig(), backend)
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    images := tensor.Randn[float32](tensor.Shape{1, 3, 224, 224}, backend)
//	    logits := m.Forward(images) // [1, 1000], raw scores
//	    _ = logits
//	}
package model

import (
	"github.com/born-ml/vit/internal/model"
	"github.com/born-ml/vit/tensor"
)

// Config holds the architecture hyperparameters of a Vision Transformer.
type Config = model.Config

// VisionTransformer is a ViT image classifier.
type VisionTransformer[B tensor.Backend] = model.VisionTransformer[B]

// EncoderBlock is one pre-norm transformer block.
type EncoderBlock[B tensor.Backend] = model.EncoderBlock[B]

// PatchEmbedding turns an image into a sequence of patch embeddings.
type PatchEmbedding[B tensor.Backend] = model.PatchEmbedding[B]

// New builds a VisionTransformer from the configuration.
// The configuration is validated before any allocation.
func New[B tensor.Backend](cfg Config, backend B) (*VisionTransformer[B], error) {
	return model.New(cfg, backend)
}

// BaseConfig returns the ViT-Base/16 configuration (86.6M parameters).
func BaseConfig() Config { return model.BaseConfig() }

// LargeConfig returns the ViT-Large/16 configuration (304.3M parameters).
func LargeConfig() Config { return model.LargeConfig() }

// HugeConfig returns the ViT-Huge/14 configuration (632.0M parameters).
func HugeConfig() Config { return model.HugeConfig() }
