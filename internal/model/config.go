// Package model implements the Vision Transformer image classifier.
package model

import (
	"fmt"
)

// Config holds the architecture hyperparameters of a Vision Transformer.
type Config struct {
	ImageSize  int // input height and width in pixels
	PatchSize  int // side length of square patches
	InChannels int // input image channels
	EmbedDim   int // token embedding dimension
	MLPDim     int // hidden dimension of the block MLP
	NumHeads   int // attention heads per block
	NumLayers  int // encoder blocks
	NumClasses int // output classes

	Dropout float32 // drop probability for MLP, attention and embedding dropout
	NormEps float32 // LayerNorm epsilon
}

// Canonical configurations from the ViT paper ("An Image is Worth 16x16
// Words", Dosovitskiy et al., 2021), with ImageNet-1k heads.

// BaseConfig returns the ViT-Base/16 configuration (86.6M parameters).
func BaseConfig() Config {
	return Config{
		ImageSize:  224,
		PatchSize:  16,
		InChannels: 3,
		EmbedDim:   768,
		MLPDim:     3072,
		NumHeads:   12,
		NumLayers:  12,
		NumClasses: 1000,
		NormEps:    1e-6,
	}
}

// LargeConfig returns the ViT-Large/16 configuration (304.3M parameters).
func LargeConfig() Config {
	return Config{
		ImageSize:  224,
		PatchSize:  16,
		InChannels: 3,
		EmbedDim:   1024,
		MLPDim:     4096,
		NumHeads:   16,
		NumLayers:  24,
		NumClasses: 1000,
		NormEps:    1e-6,
	}
}

// HugeConfig returns the ViT-Huge/14 configuration (632.0M parameters).
func HugeConfig() Config {
	return Config{
		ImageSize:  224,
		PatchSize:  14,
		InChannels: 3,
		EmbedDim:   1280,
		MLPDim:     5120,
		NumHeads:   16,
		NumLayers:  32,
		NumClasses: 1000,
		NormEps:    1e-6,
	}
}

// Validate checks the configuration, failing fast on values that would
// otherwise surface as shape errors deep inside a forward pass.
func (c Config) Validate() error {
	switch {
	case c.ImageSize <= 0, c.PatchSize <= 0, c.InChannels <= 0, c.EmbedDim <= 0,
		c.MLPDim <= 0, c.NumHeads <= 0, c.NumLayers <= 0, c.NumClasses <= 0:
		return fmt.Errorf("model: all dimensions must be positive: %+v", c)
	case c.ImageSize%c.PatchSize != 0:
		return fmt.Errorf("model: image size %d is not divisible by patch size %d", c.ImageSize, c.PatchSize)
	case c.EmbedDim%c.NumHeads != 0:
		return fmt.Errorf("model: embed dim %d is not divisible by num heads %d", c.EmbedDim, c.NumHeads)
	case c.Dropout < 0 || c.Dropout >= 1:
		return fmt.Errorf("model: dropout must be in [0, 1), got %v", c.Dropout)
	case c.NormEps <= 0:
		return fmt.Errorf("model: norm epsilon must be positive, got %v", c.NormEps)
	}
	return nil
}

// NumPatches returns the number of patches per image: (image/patch)^2.
func (c Config) NumPatches() int {
	side := c.ImageSize / c.PatchSize
	return side * side
}

// SeqLen returns the encoder sequence length: patches plus the class token.
func (c Config) SeqLen() int {
	return c.NumPatches() + 1
}

// ParameterCount returns the exact number of scalar parameters of a model
// built from this configuration, in closed form.
func (c Config) ParameterCount() int {
	e := c.EmbedDim

	patchProj := e*c.InChannels*c.PatchSize*c.PatchSize + e
	clsToken := e
	posEmbed := c.SeqLen() * e

	// Per block: two norms, four attention projections, two MLP linears.
	norms := 2 * (2 * e)
	attn := 4 * (e*e + e)
	mlp := (e*c.MLPDim + c.MLPDim) + (c.MLPDim*e + e)
	perBlock := norms + attn + mlp

	finalNorm := 2 * e
	head := e*c.NumClasses + c.NumClasses

	return patchProj + clsToken + posEmbed + c.NumLayers*perBlock + finalNorm + head
}

// String returns a short human-readable summary.
func (c Config) String() string {
	return fmt.Sprintf("ViT(img=%d, patch=%d, embed=%d, heads=%d, layers=%d, classes=%d)",
		c.ImageSize, c.PatchSize, c.EmbedDim, c.NumHeads, c.NumLayers, c.NumClasses)
}
