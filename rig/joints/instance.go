package joints

import "github.com/cwbudde/algo-rig/rig/buffer"

// rotationScratch holds the source and target components of one rotation.
const rotationScratch = 8

// InputInstance holds the control values of one evaluation context. It has
// one extra slot past the controls that always reads zero; padding columns
// gather from it.
type InputInstance struct {
	values   []float32
	controls int
}

// Values returns the control values. Callers write controls here.
// The slice is capped at the control count so appends never reach the zero
// slot.
func (in *InputInstance) Values() []float32 { return in.values[:in.controls:in.controls] }

// SetValues copies v into the controls and returns the number copied.
func (in *InputInstance) SetValues(v []float32) int { return copy(in.Values(), v) }

// OutputInstance holds the joint attribute outputs of one evaluation
// context together with the scratch space the evaluation needs.
// An OutputInstance must not be shared between concurrent Calculate calls.
type OutputInstance struct {
	buf  *buffer.Buffer
	pool *buffer.Pool

	values   []float32
	gathered []float32
	raw      []float32
	rotation []float32
}

// Values returns the output attributes, laid out joint*stride + attribute
// in the evaluator's output rotation representation.
func (o *OutputInstance) Values() []float32 { return o.values }

// Release returns pooled memory. The instance is unusable afterwards and
// Calculate rejects it with ErrInstanceMismatch.
func (o *OutputInstance) Release() {
	if o.pool != nil && o.buf != nil {
		o.pool.Put(o.buf)
	}
	o.buf = nil
	o.values, o.gathered, o.raw, o.rotation = nil, nil, nil, nil
}

type instanceConfig struct {
	pool *buffer.Pool
}

// InstanceOption configures CreateInstance.
type InstanceOption func(*instanceConfig)

// WithPool draws the instance memory from p. Call Release to return it.
func WithPool(p *buffer.Pool) InstanceOption {
	return func(cfg *instanceConfig) {
		cfg.pool = p
	}
}

func newOutputInstance(outputs, cols, rows int, opts []InstanceOption) *OutputInstance {
	var cfg instanceConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	total := outputs + cols + rows + rotationScratch
	var buf *buffer.Buffer
	if cfg.pool != nil {
		buf = cfg.pool.Get(total)
	} else {
		buf = buffer.New(total)
	}

	v := buf.Values()
	return &OutputInstance{
		buf:      buf,
		pool:     cfg.pool,
		values:   v[:outputs:outputs],
		gathered: v[outputs : outputs+cols : outputs+cols],
		raw:      v[outputs+cols : outputs+cols+rows : outputs+cols+rows],
		rotation: v[outputs+cols+rows : total : total],
	}
}
