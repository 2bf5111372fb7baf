// Package trainer orchestrates a full persona-embedding run over a graph.
//
// A Trainer advances through a fixed sequence of states:
//
//	Uninitialized → BaseFit → SplitReady → ModelReady → Training → Done
//
//   - BaseFit: the walker simulates walks over the original graph and fits
//     the base embedding; the base walks are discarded immediately after.
//   - SplitReady: the ego splitter yields the persona graph and the
//     persona→original mapping; persona walks are simulated and the
//     negative-sample pool is built from persona-graph degrees.
//   - ModelReady: the embedding store is initialized (personas copy their
//     owner's base vector) and Adam state is created for the persona table.
//   - Training: per epoch, persona walks are visited in shuffled mini-batches;
//     each mini-batch accumulates one skip-gram batch, takes exactly one
//     optimizer step on the persona table, and resets the accumulators.
//   - Done: after the last mini-batch of the last epoch.
//
// The sequence runs once: Fit on a trainer that has left Uninitialized fails
// with ErrAlreadyRun instead of mutating artifacts of the earlier run.
//
// Batch construction, forward pass, backward pass and optimizer step execute
// as one ordered unit; nothing else mutates the persona table. With more
// than one worker, the walks of a mini-batch are built concurrently and
// concatenated in walk order — the order is deterministic, but the
// interleaving of pool draws is not, so exact reproducibility requires
// Workers == 1.
//
// Failures never retry: an empty graph or persona graph surfaces ErrNoData
// before any optimizer step, and a non-finite loss surfaces
// ErrNumericInstability wrapped with the offending mini-batch index. Nothing
// is persisted on failure; the Save methods are explicit calls.
package trainer
