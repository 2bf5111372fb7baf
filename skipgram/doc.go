// Package skipgram turns random walks into training batches for the
// negative-sampling skip-gram objective.
//
// For one walk of length L and window size w, every center position whose
// window fits entirely inside the walk (positions w .. L-1-w) is paired with
// its 2w surrounding context nodes. Boundary positions with a truncated
// window are dropped entirely, not clipped, so a walk contributes exactly
//
//	P = 2w(L-2w)   positive pairs when L > 2w, and
//	P = 0          when L <= 2w (a valid, empty contribution).
//
// Each positive pair is then replicated negativeK times against contexts
// drawn from the negative-sample pool, producing the five parallel sequences
// of a Batch:
//
//	Sources     P·(negativeK+1) rows — each positive source, once with its
//	            true context and negativeK more times with sampled negatives
//	Contexts    P positive contexts followed by negativeK·P pool draws
//	Targets     P ones followed by negativeK·P zeros
//	PureSources P rows — positive sources, unreplicated; feeds regularization
//	Personas    P rows — base-table row owning each positive source
//
// Multiple walks append their blocks to one shared Batch in walk order; the
// aggregated batch feeds exactly one optimizer step and is then reset.
package skipgram
