// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Trainer states, sentinel errors, options and progress reporting.

package trainer

import (
	"errors"
	"log/slog"
	"math/rand"
	"time"
)

// State identifies the trainer's position in its lifecycle.
type State int

const (
	// Uninitialized is the state of a freshly constructed Trainer.
	Uninitialized State = iota

	// BaseFit means the base embedding has been learned.
	BaseFit

	// SplitReady means the persona graph, walks and sample pool exist.
	SplitReady

	// ModelReady means embedding tables and optimizer state are initialized.
	ModelReady

	// Training means mini-batch optimization is in progress.
	Training

	// Done means the last mini-batch of the last epoch has been applied.
	Done
)

// String returns the state name for logs and errors.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case BaseFit:
		return "BaseFit"
	case SplitReady:
		return "SplitReady"
	case ModelReady:
		return "ModelReady"
	case Training:
		return "Training"
	case Done:
		return "Done"
	default:
		return "Unknown"
	}
}

// Sentinel errors for trainer construction and the training run.
var (
	// ErrNilGraph indicates construction with a nil graph.
	ErrNilGraph = errors.New("trainer: graph is nil")

	// ErrNilWalker indicates construction with a nil walker.
	ErrNilWalker = errors.New("trainer: walker is nil")

	// ErrNilSplitter indicates construction with a nil splitter.
	ErrNilSplitter = errors.New("trainer: splitter is nil")

	// ErrBadBatchSize indicates a configured batch size < 1.
	ErrBadBatchSize = errors.New("trainer: batch size must be >= 1")

	// ErrAlreadyRun indicates a second Fit call on the same Trainer; one
	// Trainer serves exactly one run.
	ErrAlreadyRun = errors.New("trainer: Fit already ran")

	// ErrNoData indicates an empty graph or an empty persona graph after the
	// split; surfaced before any optimizer step.
	ErrNoData = errors.New("trainer: no trainable data")

	// ErrNumericInstability indicates a non-finite loss mid-training. The
	// wrapped message carries the offending mini-batch index; the run is
	// not retried.
	ErrNumericInstability = errors.New("trainer: non-finite loss")

	// ErrNotReady indicates a Save or accessor call before the stage that
	// produces the requested artifact has run.
	ErrNotReady = errors.New("trainer: artifact not available yet")
)

// Progress is one per-mini-batch training report.
type Progress struct {
	Epoch       int     // 0-based epoch
	Batch       int     // 0-based mini-batch within the epoch
	TotalBatch  int     // mini-batches per epoch
	Loss        float64 // loss of this mini-batch
	RunningLoss float64 // exponential moving average over mini-batches
}

// ProgressFunc receives per-mini-batch progress reports.
type ProgressFunc func(Progress)

// Options configures a training run. Zero values are replaced by
// DefaultOptions; use the With* functional options to override.
type Options struct {
	Dimensions      int     // embedding dimension D
	Lambda          float64 // regularization weight pulling personas to their base vector
	WindowSize      int     // skip-gram window over persona walks
	NegativeSamples int     // negatives per positive pair
	BatchSize       int     // walks per mini-batch
	LearningRate    float64 // Adam learning rate for the persona table
	Epochs          int     // passes over the persona walks
	Workers         int     // concurrent walk-batch builders per mini-batch
	Seed            int64   // seed for shuffling; 0 means clock-seeded
	Logger          *slog.Logger
	Progress        ProgressFunc
}

// Option mutates Options before validation.
type Option func(*Options)

// WithDimensions sets the embedding dimension (default 128).
func WithDimensions(d int) Option { return func(o *Options) { o.Dimensions = d } }

// WithLambda sets the regularization weight (default 0.1).
func WithLambda(l float64) Option { return func(o *Options) { o.Lambda = l } }

// WithWindowSize sets the skip-gram window (default 10).
func WithWindowSize(w int) Option { return func(o *Options) { o.WindowSize = w } }

// WithNegativeSamples sets negatives per positive pair (default 5).
func WithNegativeSamples(k int) Option { return func(o *Options) { o.NegativeSamples = k } }

// WithBatchSize sets walks per mini-batch (default 100).
func WithBatchSize(b int) Option { return func(o *Options) { o.BatchSize = b } }

// WithLearningRate sets the Adam learning rate (default 0.01).
func WithLearningRate(lr float64) Option { return func(o *Options) { o.LearningRate = lr } }

// WithEpochs sets the number of passes over the persona walks (default 1).
func WithEpochs(e int) Option { return func(o *Options) { o.Epochs = e } }

// WithWorkers sets concurrent walk-batch builders (default 1; values above 1
// trade exact reproducibility for throughput).
func WithWorkers(w int) Option { return func(o *Options) { o.Workers = w } }

// WithSeed fixes the shuffle seed for reproducible runs.
func WithSeed(seed int64) Option { return func(o *Options) { o.Seed = seed } }

// WithLogger overrides the default slog logger.
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }

// WithProgress installs a per-mini-batch progress callback.
func WithProgress(f ProgressFunc) Option { return func(o *Options) { o.Progress = f } }

// DefaultOptions returns the hyperparameters of the reference setup.
func DefaultOptions() Options {
	return Options{
		Dimensions:      128,
		Lambda:          0.1,
		WindowSize:      10,
		NegativeSamples: 5,
		BatchSize:       100,
		LearningRate:    0.01,
		Epochs:          1,
		Workers:         1,
	}
}

// defaultLogger falls back to the process-wide slog default.
func defaultLogger() *slog.Logger { return slog.Default() }

// newRand builds the trainer's random source from Seed.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return rand.New(rand.NewSource(seed))
}
