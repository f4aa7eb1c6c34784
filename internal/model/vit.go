package model

import (
	"fmt"

	"github.com/born-ml/vit/internal/nn"
	"github.com/born-ml/vit/internal/tensor"
)

// VisionTransformer is a ViT image classifier.
//
// Forward pipeline: patch embedding, class token prepended at position 0,
// learned positional embeddings, dropout, a stack of pre-norm encoder
// blocks, a final LayerNorm, and a linear head over the class-token
// position. The output is raw logits; no softmax is applied.
type VisionTransformer[B tensor.Backend] struct {
	Patch    *PatchEmbedding[B]
	ClsToken *nn.Parameter[B] // [1, 1, embed_dim]
	PosEmbed *nn.Parameter[B] // [1, num_patches+1, embed_dim]
	Drop     *nn.Dropout[B]
	Blocks   []*EncoderBlock[B]
	Norm     *nn.LayerNorm[B]
	Head     *nn.Linear[B]

	cfg     Config
	backend B
}

// linearInitStd is the truncated-normal standard deviation applied to every
// linear projection weight and to the class token and positional embeddings.
const linearInitStd = 0.02

// New builds a VisionTransformer from the configuration.
// The configuration is validated up front; an invalid combination (image
// size not divisible by patch size, embed dim not divisible by heads)
// returns an error instead of failing inside a forward pass.
func New[B tensor.Backend](cfg Config, backend B) (*VisionTransformer[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("vit: %w", err)
	}

	patch := NewPatchEmbedding(cfg.ImageSize, cfg.PatchSize, cfg.InChannels, cfg.EmbedDim, backend)

	cls := tensor.Zeros[float32](tensor.Shape{1, 1, cfg.EmbedDim}, backend)
	pos := tensor.Zeros[float32](tensor.Shape{1, cfg.SeqLen(), cfg.EmbedDim}, backend)

	blocks := make([]*EncoderBlock[B], cfg.NumLayers)
	for i := range blocks {
		blocks[i] = NewEncoderBlock(cfg.EmbedDim, cfg.MLPDim, cfg.NumHeads, cfg.Dropout, cfg.NormEps, backend)
	}

	m := &VisionTransformer[B]{
		Patch:    patch,
		ClsToken: nn.NewParameter("cls_token", cls),
		PosEmbed: nn.NewParameter("pos_embed", pos),
		Drop:     nn.NewDropout[B](cfg.Dropout),
		Blocks:   blocks,
		Norm:     nn.NewLayerNorm(cfg.EmbedDim, cfg.NormEps, backend),
		Head:     nn.NewLinear(cfg.EmbedDim, cfg.NumClasses, backend),
		cfg:      cfg,
		backend:  backend,
	}
	m.initWeights()

	return m, nil
}

// initWeights applies the model's initialization policy: truncated normal
// (std 0.02, clipped at two standard deviations) for every linear projection
// weight and the token embeddings, zero biases, unit norm scales. The patch
// convolution keeps the library default.
func (m *VisionTransformer[B]) initWeights() {
	nn.TruncNormal(m.ClsToken.Tensor(), linearInitStd)
	nn.TruncNormal(m.PosEmbed.Tensor(), linearInitStd)

	for _, blk := range m.Blocks {
		for _, l := range []*nn.Linear[B]{
			blk.Attn.WQ, blk.Attn.WK, blk.Attn.WV, blk.Attn.WO,
			blk.FC1, blk.FC2,
		} {
			m.initLinear(l)
		}
	}
	m.initLinear(m.Head)
}

func (m *VisionTransformer[B]) initLinear(l *nn.Linear[B]) {
	nn.TruncNormal(l.Weight().Tensor(), linearInitStd)
	bias := l.Bias().Tensor().Data()
	for i := range bias {
		bias[i] = 0
	}
}

// Forward classifies a batch of images.
//
// Input: [batch, channels, image_size, image_size]
// Output: raw logits [batch, num_classes]
func (m *VisionTransformer[B]) Forward(images *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	batch := images.Shape()[0]

	// [batch, patches, embed]
	x := m.Patch.Forward(images)

	// Prepend the class token at position 0: [batch, patches+1, embed]
	cls := m.ClsToken.Tensor().Expand(tensor.Shape{batch, 1, m.cfg.EmbedDim})
	x = tensor.Cat([]*tensor.Tensor[float32, B]{cls, x}, 1)

	// Positional embeddings broadcast over the batch
	x = x.Add(m.PosEmbed.Tensor())
	x = m.Drop.Forward(x)

	for _, blk := range m.Blocks {
		x = blk.Forward(x)
	}

	x = m.Norm.Forward(x)

	// Class-token position only: [batch, 1, embed] -> [batch, embed]
	clsOut := x.Narrow(1, 0, 1).Reshape(batch, m.cfg.EmbedDim)

	return m.Head.Forward(clsOut)
}

// Train switches the model between training and eval behavior.
// Only dropout is affected; the model starts in eval mode.
func (m *VisionTransformer[B]) Train(training bool) {
	m.Drop.SetTraining(training)
	for _, blk := range m.Blocks {
		blk.SetTraining(training)
	}
}

// Config returns the model's configuration.
func (m *VisionTransformer[B]) Config() Config {
	return m.cfg
}

// Parameters returns all learnable parameters in construction order.
func (m *VisionTransformer[B]) Parameters() []*nn.Parameter[B] {
	var params []*nn.Parameter[B]
	params = append(params, m.Patch.Parameters()...)
	params = append(params, m.ClsToken, m.PosEmbed)
	for _, blk := range m.Blocks {
		params = append(params, blk.Parameters()...)
	}
	params = append(params, m.Norm.Parameters()...)
	params = append(params, m.Head.Parameters()...)
	return params
}

// NumParameters returns the total number of scalar parameters.
func (m *VisionTransformer[B]) NumParameters() int {
	total := 0
	for _, p := range m.Parameters() {
		total += p.NumElements()
	}
	return total
}

// String returns a short human-readable summary.
func (m *VisionTransformer[B]) String() string {
	return fmt.Sprintf("%s with %d parameters", m.cfg, m.NumParameters())
}
