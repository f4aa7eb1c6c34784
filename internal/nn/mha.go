package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/vit/internal/tensor"
)

// MultiHeadAttention implements the multi-head attention mechanism.
//
// Architecture:
//
//	MHA(Q, K, V) = Concat(head_1, ..., head_h) * W_O
//	head_i = softmax(Q_i @ K_i^T / sqrt(head_dim)) @ V_i
//
// The embedding dimension is split across num_heads heads of
// embed_dim / num_heads dimensions each. Attention weights can optionally
// be dropped out during training.
//
// Example:
//
//	mha := nn.NewMultiHeadAttention(768, 12, 0, backend) // 768 dim, 12 heads
//	output := mha.Forward(x, x, x, nil)                  // self-attention
type MultiHeadAttention[B tensor.Backend] struct {
	WQ       *Linear[B] // Query projection [embed_dim, embed_dim]
	WK       *Linear[B] // Key projection [embed_dim, embed_dim]
	WV       *Linear[B] // Value projection [embed_dim, embed_dim]
	WO       *Linear[B] // Output projection [embed_dim, embed_dim]
	NumHeads int
	HeadDim  int
	EmbedDim int
	drop     *Dropout[B] // applied to attention weights
	backend  B
}

// NewMultiHeadAttention creates a new multi-head attention module.
//
// embedDim must be divisible by numHeads; dropout is the probability
// applied to the attention weights (0 disables it).
func NewMultiHeadAttention[B tensor.Backend](
	embedDim, numHeads int,
	dropout float32,
	backend B,
) *MultiHeadAttention[B] {
	if embedDim%numHeads != 0 {
		panic(fmt.Sprintf("MultiHeadAttention: embed_dim (%d) must be divisible by num_heads (%d)", embedDim, numHeads))
	}

	return &MultiHeadAttention[B]{
		WQ:       NewLinear(embedDim, embedDim, backend),
		WK:       NewLinear(embedDim, embedDim, backend),
		WV:       NewLinear(embedDim, embedDim, backend),
		WO:       NewLinear(embedDim, embedDim, backend),
		NumHeads: numHeads,
		HeadDim:  embedDim / numHeads,
		EmbedDim: embedDim,
		drop:     NewDropout[B](dropout),
		backend:  backend,
	}
}

// Forward computes multi-head attention.
//
// Args:
//   - query: [batch, seq_q, embed_dim]
//   - key: [batch, seq_k, embed_dim]
//   - value: [batch, seq_k, embed_dim]
//   - mask: optional additive mask [batch, 1, seq_q, seq_k] or nil
//
// Returns [batch, seq_q, embed_dim].
//
// For self-attention, pass the same tensor for query, key, and value.
func (m *MultiHeadAttention[B]) Forward(
	query, key, value *tensor.Tensor[float32, B],
	mask *tensor.Tensor[float32, B],
) *tensor.Tensor[float32, B] {
	batch := query.Shape()[0]
	seqQ := query.Shape()[1]
	seqK := key.Shape()[1]

	// 1. Project Q, K, V (Linear expects 2D input)
	q := m.projectAndReshape(query, m.WQ, batch, seqQ)
	k := m.projectAndReshape(key, m.WK, batch, seqK)
	v := m.projectAndReshape(value, m.WV, batch, seqK)

	// 2. Split heads: [batch, seq, embed] -> [batch, heads, seq, head_dim]
	q = q.Reshape(batch, seqQ, m.NumHeads, m.HeadDim).Transpose(0, 2, 1, 3)
	k = k.Reshape(batch, seqK, m.NumHeads, m.HeadDim).Transpose(0, 2, 1, 3)
	v = v.Reshape(batch, seqK, m.NumHeads, m.HeadDim).Transpose(0, 2, 1, 3)

	// 3. Scaled dot-product attention
	// scores: [batch, heads, seq_q, seq_k]
	scale := float32(1 / math.Sqrt(float64(m.HeadDim)))
	scores := q.BatchMatMul(k.Transpose(0, 1, 3, 2)).MulScalar(scale)
	if mask != nil {
		scores = scores.Add(mask)
	}

	weights := scores.Softmax(-1)
	weights = m.drop.Forward(weights)

	// [batch, heads, seq_q, head_dim]
	attnOut := weights.BatchMatMul(v)

	// 4. Merge heads: [batch, seq_q, embed_dim]
	attnOut = attnOut.Transpose(0, 2, 1, 3).Reshape(batch, seqQ, m.EmbedDim)

	// 5. Output projection
	output := m.WO.Forward(attnOut.Reshape(batch*seqQ, m.EmbedDim))
	return output.Reshape(batch, seqQ, m.EmbedDim)
}

// projectAndReshape reshapes 3D input to 2D, applies the projection, and
// reshapes back to 3D.
func (m *MultiHeadAttention[B]) projectAndReshape(
	input *tensor.Tensor[float32, B],
	linear *Linear[B],
	batch, seq int,
) *tensor.Tensor[float32, B] {
	output := linear.Forward(input.Reshape(batch*seq, m.EmbedDim))
	return output.Reshape(batch, seq, m.EmbedDim)
}

// SetTraining switches attention-weight dropout between training and eval.
func (m *MultiHeadAttention[B]) SetTraining(training bool) {
	m.drop.SetTraining(training)
}

// Parameters returns the parameters of all four projections.
func (m *MultiHeadAttention[B]) Parameters() []*Parameter[B] {
	params := make([]*Parameter[B], 0, 8)
	params = append(params, m.WQ.Parameters()...)
	params = append(params, m.WK.Parameters()...)
	params = append(params, m.WV.Parameters()...)
	params = append(params, m.WO.Parameters()...)
	return params
}
