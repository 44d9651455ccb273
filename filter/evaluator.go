package filter

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/vendctl/entity"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the batch size for chunked processing
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator evaluates filters over entity lists in bounded parallel chunks.
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate returns the items matching filter, in input order
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter CompiledFilter, items []*entity.Properties) ([]*entity.Properties, error) {
	if len(items) == 0 {
		return []*entity.Properties{}, nil
	}

	// For small lists, don't bother with concurrency
	if len(items) < e.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return matchAll(filter, items), nil
	}

	return e.evaluateConcurrent(ctx, filter, items)
}

// EvaluateBatch evaluates several filters against the same items. Results
// are keyed by filter name.
func (e *ConcurrentEvaluator) EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, items []*entity.Properties) (map[string][]*entity.Properties, error) {
	results := make(map[string][]*entity.Properties, len(filters))
	if len(filters) == 0 {
		return results, nil
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for name, filter := range filters {
		g.Go(func() error {
			matches, err := e.Evaluate(ctx, filter, items)
			if err != nil {
				return err
			}
			mu.Lock()
			results[name] = matches
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *ConcurrentEvaluator) evaluateConcurrent(ctx context.Context, filter CompiledFilter, items []*entity.Properties) ([]*entity.Properties, error) {
	chunkSize := max(len(items)/e.workerCount, e.batchSize)
	chunks := make([][]*entity.Properties, (len(items)+chunkSize-1)/chunkSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(items))

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chunks[i] = matchAll(filter, items[start:end])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, chunk := range chunks {
		total += len(chunk)
	}
	matches := make([]*entity.Properties, 0, total)
	for _, chunk := range chunks {
		matches = append(matches, chunk...)
	}
	return matches, nil
}

func matchAll(filter CompiledFilter, items []*entity.Properties) []*entity.Properties {
	matches := make([]*entity.Properties, 0, len(items)/4)
	for _, item := range items {
		if filter.Evaluate(item) {
			matches = append(matches, item)
		}
	}
	return matches
}
