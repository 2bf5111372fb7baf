// SPDX-License-Identifier: MIT
//
// File: trainer.go
// Role: Stage machine and mini-batch optimization loop.

package trainer

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/katalvlaran/splitter/core"
	"github.com/katalvlaran/splitter/ego"
	"github.com/katalvlaran/splitter/embedding"
	"github.com/katalvlaran/splitter/model"
	"github.com/katalvlaran/splitter/negsample"
	"github.com/katalvlaran/splitter/optim"
	"github.com/katalvlaran/splitter/skipgram"
	"github.com/katalvlaran/splitter/walker"
)

// runningLossDecay is the EMA factor of the reported running loss.
const runningLossDecay = 0.9

// Trainer drives one persona-embedding run. It is not safe for concurrent
// use; one Trainer serves one run.
type Trainer struct {
	graph    *core.Graph
	walker   walker.Walker
	splitter ego.Splitter
	opts     Options
	rng      *rand.Rand
	state    State

	// BaseFit artifacts.
	baseIndex   *core.Index
	baseVectors map[string][]float64

	// SplitReady artifacts.
	personaGraph      *core.Graph
	personaIndex      *core.Index
	personaToOriginal map[string]string
	personaWalks      [][]int // walks pre-translated to persona-table rows
	pool              *negsample.Pool

	// ModelReady artifacts.
	store   *embedding.Store
	model   *model.Model
	builder *skipgram.Builder
	adam    *optim.Adam
}

// New validates inputs and returns a Trainer in the Uninitialized state.
//
// Errors:
//   - ErrNilGraph / ErrNilWalker / ErrNilSplitter for missing collaborators.
//   - ErrBadBatchSize for a batch size < 1 (the one option only the train
//     loop itself consumes).
//   - Other invalid option values surface from the stage that consumes them
//     (embedding, skipgram, optim), before any optimizer step.
func New(g *core.Graph, w walker.Walker, s ego.Splitter, opts ...Option) (*Trainer, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if w == nil {
		return nil, ErrNilWalker
	}
	if s == nil {
		return nil, ErrNilSplitter
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.BatchSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadBatchSize, o.BatchSize)
	}
	if o.Logger == nil {
		o.Logger = defaultLogger()
	}
	if o.Workers < 1 {
		o.Workers = 1
	}

	return &Trainer{
		graph:    g,
		walker:   w,
		splitter: s,
		opts:     o,
		rng:      newRand(o.Seed),
		state:    Uninitialized,
	}, nil
}

// State returns the trainer's current lifecycle state.
func (t *Trainer) State() State { return t.state }

// Store returns the embedding store, or ErrNotReady before ModelReady.
func (t *Trainer) Store() (*embedding.Store, error) {
	if t.store == nil {
		return nil, fmt.Errorf("%w: embedding store (state %s)", ErrNotReady, t.state)
	}

	return t.store, nil
}

// Fit runs all stages through Done. One Trainer serves one run: a second
// call, including after a failed or cancelled run, fails with ErrAlreadyRun.
// The context is observed at mini-batch boundaries only: a step in flight
// always completes before the loop stops.
func (t *Trainer) Fit(ctx context.Context) error {
	if t.state != Uninitialized {
		return fmt.Errorf("%w (state %s)", ErrAlreadyRun, t.state)
	}
	if err := t.baseFit(); err != nil {
		return err
	}
	if err := t.createSplit(); err != nil {
		return err
	}
	if err := t.setupModel(); err != nil {
		return err
	}

	return t.train(ctx)
}

// baseFit learns the base embedding from walks over the original graph.
// The walks are local to this stage and released with it.
func (t *Trainer) baseFit() error {
	if t.graph.VertexCount() == 0 {
		return fmt.Errorf("%w: input graph is empty", ErrNoData)
	}

	t.opts.Logger.Info("simulating base walks")
	baseWalks, err := t.walker.SimulateWalks(t.graph)
	if err != nil {
		return fmt.Errorf("trainer: base walks: %w", err)
	}

	t.opts.Logger.Info("learning the base embedding", "walks", len(baseWalks))
	t.baseVectors, err = t.walker.LearnEmbedding(t.graph, baseWalks)
	if err != nil {
		return fmt.Errorf("trainer: base embedding: %w", err)
	}
	t.baseIndex = core.NewIndex(t.graph)

	t.state = BaseFit

	return nil
}

// createSplit builds the persona graph, persona walks and the
// negative-sample pool.
func (t *Trainer) createSplit() error {
	t.opts.Logger.Info("splitting into personas")
	personaGraph, mapping, err := t.splitter.Split(t.graph)
	if err != nil {
		return fmt.Errorf("trainer: ego split: %w", err)
	}
	if personaGraph.VertexCount() == 0 {
		return fmt.Errorf("%w: persona graph is empty", ErrNoData)
	}
	t.personaGraph = personaGraph
	t.personaToOriginal = mapping
	t.personaIndex = core.NewIndex(personaGraph)

	t.opts.Logger.Info("simulating persona walks",
		"personas", personaGraph.VertexCount())
	walks, err := t.walker.SimulateWalks(personaGraph)
	if err != nil {
		return fmt.Errorf("trainer: persona walks: %w", err)
	}
	t.personaWalks = make([][]int, len(walks))
	for i, w := range walks {
		rows, rerr := t.personaIndex.RowsOf(w)
		if rerr != nil {
			return fmt.Errorf("trainer: translating persona walk: %w", rerr)
		}
		t.personaWalks[i] = rows
	}

	t.pool, err = negsample.Build(personaGraph, t.personaIndex, negsample.WithRand(t.rng))
	if err != nil {
		return fmt.Errorf("trainer: sample pool: %w", err)
	}

	t.state = SplitReady

	return nil
}

// setupModel initializes embedding tables, loss model, batch builder and
// optimizer state.
func (t *Trainer) setupModel() error {
	store, err := embedding.NewStore(
		t.opts.Dimensions, t.baseIndex, t.baseVectors, t.personaIndex, t.personaToOriginal)
	if err != nil {
		return fmt.Errorf("trainer: embedding store: %w", err)
	}
	t.store = store

	if t.model, err = model.New(t.opts.Lambda); err != nil {
		return fmt.Errorf("trainer: loss model: %w", err)
	}

	if t.builder, err = skipgram.NewBuilder(
		t.opts.WindowSize, t.opts.NegativeSamples, store.OwnerRows(), t.pool); err != nil {
		return fmt.Errorf("trainer: batch builder: %w", err)
	}

	if t.adam, err = optim.NewAdam(
		store.Rows(embedding.Persona), t.opts.Dimensions,
		optim.WithLearningRate(t.opts.LearningRate)); err != nil {
		return fmt.Errorf("trainer: optimizer: %w", err)
	}

	t.state = ModelReady

	return nil
}

// train runs the mini-batch loop over persona walks.
func (t *Trainer) train(ctx context.Context) error {
	t.state = Training

	batchSize := t.opts.BatchSize
	total := (len(t.personaWalks) + batchSize - 1) / batchSize
	order := make([]int, len(t.personaWalks))
	for i := range order {
		order[i] = i
	}

	batch := skipgram.NewBatch()
	runningLoss := 0.0
	seeded := false

	t.opts.Logger.Info("training persona embeddings",
		"walks", len(t.personaWalks), "miniBatches", total, "epochs", t.opts.Epochs)

	for epoch := 0; epoch < t.opts.Epochs; epoch++ {
		t.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		for b := 0; b < total; b++ {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("trainer: stopped at mini-batch %d: %w", b, err)
			}

			lo := b * batchSize
			hi := lo + batchSize
			if hi > len(order) {
				hi = len(order)
			}

			if err := t.buildBatch(batch, order[lo:hi]); err != nil {
				return err
			}
			if batch.Positives() == 0 {
				batch.Reset() // every walk was shorter than one full window

				continue
			}

			loss, err := t.step(batch)
			if err != nil {
				return fmt.Errorf("mini-batch %d: %w", b, err)
			}
			batch.Reset()

			if !seeded {
				runningLoss, seeded = loss, true
			} else {
				runningLoss = runningLossDecay*runningLoss + (1-runningLossDecay)*loss
			}
			t.opts.Logger.Debug("optimizer step",
				"epoch", epoch, "batch", b, "loss", loss, "runningLoss", runningLoss)
			if t.opts.Progress != nil {
				t.opts.Progress(Progress{
					Epoch: epoch, Batch: b, TotalBatch: total,
					Loss: loss, RunningLoss: runningLoss,
				})
			}
		}
	}

	t.state = Done

	return nil
}

// buildBatch accumulates the replicate blocks of the selected walks into
// batch, in walk order. With Workers > 1 the per-walk blocks are built
// concurrently and concatenated in the same deterministic order.
func (t *Trainer) buildBatch(batch *skipgram.Batch, walkIdx []int) error {
	if t.opts.Workers <= 1 || len(walkIdx) == 1 {
		for _, wi := range walkIdx {
			if err := t.builder.AppendWalk(batch, t.personaWalks[wi]); err != nil {
				return fmt.Errorf("trainer: batch build: %w", err)
			}
		}

		return nil
	}

	parts := make([]*skipgram.Batch, len(walkIdx))
	errs := make([]error, len(walkIdx))

	var wg sync.WaitGroup
	sem := make(chan struct{}, t.opts.Workers)
	for i, wi := range walkIdx {
		wg.Add(1)
		sem <- struct{}{}
		go func(i, wi int) {
			defer wg.Done()
			defer func() { <-sem }()

			part := skipgram.NewBatch()
			errs[i] = t.builder.AppendWalk(part, t.personaWalks[wi])
			parts[i] = part
		}(i, wi)
	}
	wg.Wait()

	for i, part := range parts {
		if errs[i] != nil {
			return fmt.Errorf("trainer: batch build: %w", errs[i])
		}
		batch.Sources = append(batch.Sources, part.Sources...)
		batch.Contexts = append(batch.Contexts, part.Contexts...)
		batch.Targets = append(batch.Targets, part.Targets...)
		batch.PureSources = append(batch.PureSources, part.PureSources...)
		batch.Personas = append(batch.Personas, part.Personas...)
	}

	return nil
}

// step runs one ordered forward/backward/update unit on the aggregated batch.
func (t *Trainer) step(batch *skipgram.Batch) (float64, error) {
	nodeVecs, err := t.store.Gather(embedding.Persona, batch.Sources)
	if err != nil {
		return 0, fmt.Errorf("trainer: gathering sources: %w", err)
	}
	featureVecs, err := t.store.Gather(embedding.Persona, batch.Contexts)
	if err != nil {
		return 0, fmt.Errorf("trainer: gathering contexts: %w", err)
	}
	sourceVecs, err := t.store.Gather(embedding.Persona, batch.PureSources)
	if err != nil {
		return 0, fmt.Errorf("trainer: gathering pure sources: %w", err)
	}
	originalVecs, err := t.store.Gather(embedding.Base, batch.Personas)
	if err != nil {
		return 0, fmt.Errorf("trainer: gathering base anchors: %w", err)
	}

	loss, gradNode, gradFeature, gradSource, err := t.model.LossAndGradients(
		nodeVecs, featureVecs, batch.Targets, sourceVecs, originalVecs)
	if err != nil {
		return 0, fmt.Errorf("trainer: loss: %w", err)
	}
	if math.IsNaN(loss) || math.IsInf(loss, 0) {
		return 0, fmt.Errorf("%w: loss=%v", ErrNumericInstability, loss)
	}

	// Scatter per-example gradients onto persona-table rows. Rows referenced
	// several times accumulate, matching the dense sum a full backward pass
	// would produce.
	grads := make(map[int][]float64)
	accumulate := func(rows []int, grad func(int) []float64) {
		for k, row := range rows {
			dst, ok := grads[row]
			if !ok {
				dst = make([]float64, t.opts.Dimensions)
				grads[row] = dst
			}
			g := grad(k)
			for d := range dst {
				dst[d] += g[d]
			}
		}
	}
	accumulate(batch.Sources, gradNode.RawRowView)
	accumulate(batch.Contexts, gradFeature.RawRowView)
	accumulate(batch.PureSources, gradSource.RawRowView)

	if err = t.adam.Step(t.store.PersonaTable(), grads); err != nil {
		return 0, fmt.Errorf("trainer: optimizer step: %w", err)
	}

	return loss, nil
}
