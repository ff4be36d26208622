package vm

import (
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// IndexPolicy defines how register values used as key or font glyph
// index are handled when they exceed 0xF.
type IndexPolicy int

const (
	// IndexMask uses the low nibble of the register value.
	IndexMask IndexPolicy = iota
	// IndexFault halts the machine with ErrKeyOutOfRange or ErrGlyphOutOfRange.
	IndexFault
)

type options struct {
	logger      *log.Logger
	trace       bool
	random      func() byte
	indexPolicy IndexPolicy
	resetOnLoad bool
}

// Option configures a Machine.
type Option func(*options)

// WithLogger sets the logger used for instruction tracing.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTrace enables logging of every executed instruction at debug level.
// It has no effect without a logger.
func WithTrace(enabled bool) Option {
	return func(o *options) {
		o.trace = enabled
	}
}

// WithRandom sets the source of random bytes for the RND instruction.
func WithRandom(random func() byte) Option {
	return func(o *options) {
		if random != nil {
			o.random = random
		}
	}
}

// WithIndexPolicy sets the handling of out of range key and glyph indexes.
func WithIndexPolicy(policy IndexPolicy) Option {
	return func(o *options) {
		o.indexPolicy = policy
	}
}

// WithResetOnLoad makes Load reset the machine before copying the program.
func WithResetOnLoad(enabled bool) Option {
	return func(o *options) {
		o.resetOnLoad = enabled
	}
}

// SeededRandom returns a deterministic random byte source for the given seed.
func SeededRandom(seed uint64) func() byte {
	rng := rand.New(rand.NewPCG(seed, seed))
	return func() byte {
		return byte(rng.UintN(256))
	}
}

func defaultRandom() byte {
	return byte(rand.UintN(256))
}
