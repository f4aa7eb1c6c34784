package model

import (
	"fmt"

	"github.com/born-ml/vit/internal/nn"
	"github.com/born-ml/vit/internal/tensor"
)

// PatchEmbedding turns an image into a sequence of patch embeddings.
//
// A convolution with kernel size equal to its stride (the patch size)
// projects each non-overlapping patch directly to the embedding dimension.
// The spatial grid is then flattened row-major into the sequence axis.
//
// Input: [batch, channels, height, width]
// Output: [batch, num_patches, embed_dim]
type PatchEmbedding[B tensor.Backend] struct {
	proj       *nn.Conv2D[B]
	patchSize  int
	embedDim   int
	numPatches int
}

// NewPatchEmbedding creates a patch embedder for square images.
func NewPatchEmbedding[B tensor.Backend](imageSize, patchSize, inChannels, embedDim int, backend B) *PatchEmbedding[B] {
	side := imageSize / patchSize
	return &PatchEmbedding[B]{
		proj:       nn.NewConv2D(inChannels, embedDim, patchSize, patchSize, 0, backend),
		patchSize:  patchSize,
		embedDim:   embedDim,
		numPatches: side * side,
	}
}

// Forward embeds the image patches.
func (p *PatchEmbedding[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("PatchEmbedding.Forward: expected 4D input [N,C,H,W], got shape %v", shape))
	}

	batch := shape[0]

	// [batch, embed_dim, grid, grid]
	x := p.proj.Forward(input)

	// Flatten the grid and move channels to the embedding axis:
	// [batch, embed_dim, patches] -> [batch, patches, embed_dim]
	return x.Reshape(batch, p.embedDim, p.numPatches).Transpose(0, 2, 1)
}

// NumPatches returns the number of patches per image.
func (p *PatchEmbedding[B]) NumPatches() int {
	return p.numPatches
}

// Parameters returns the projection parameters.
func (p *PatchEmbedding[B]) Parameters() []*nn.Parameter[B] {
	return p.proj.Parameters()
}
