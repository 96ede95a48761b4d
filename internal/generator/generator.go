// Package generator runs generation batches: it realizes every field
// for each iteration seed, refines the assembled text through the
// configured refiner, and hands the ordered results back for commit.
package generator

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/fredhopp/flip-flop-prompter/internal/errors"
	"github.com/fredhopp/flip-flop-prompter/internal/llm"
	"github.com/fredhopp/flip-flop-prompter/internal/logger"
	"github.com/fredhopp/flip-flop-prompter/internal/models"
	"github.com/fredhopp/flip-flop-prompter/internal/renderer"
	"github.com/fredhopp/flip-flop-prompter/internal/snippets"
)

// maxWorkers caps concurrent refiner calls per batch.
const maxWorkers = 3

// iterationTimeout bounds one refiner call inside a batch.
const iterationTimeout = 30 * time.Second

// Request describes one generation batch. A single submission is a
// batch of size 1 with SeedFixed; there is only one code path.
type Request struct {
	FieldValues map[string]string
	FieldTags   map[string]models.TagList

	BatchSize int
	SeedMode  models.SeedMode
	BaseSeed  int64

	Filters      []snippets.Rating
	RefinerModel string
	TargetModel  string
	Instructions string
}

// Result is the outcome of one iteration.
type Result struct {
	IterationIndex int
	Seed           int64
	// Fields holds the realized per-field text used for this iteration.
	Fields map[string]string
	// Text is the refined prompt; empty when Err is set.
	Text string
	Err  error
}

// Failure pairs an iteration index with its error message.
type Failure struct {
	IterationIndex int
	Message        string
}

// Coordinator dispatches batch iterations to a bounded worker pool.
type Coordinator struct {
	lib     renderer.ContentLibrary
	refiner llm.Refiner
	log     *logger.Logger
	busy    atomic.Bool
}

// NewCoordinator wires a coordinator to its content library and refiner.
func NewCoordinator(lib renderer.ContentLibrary, refiner llm.Refiner, log *logger.Logger) *Coordinator {
	if log == nil {
		log = logger.Nop()
	}
	return &Coordinator{lib: lib, refiner: refiner, log: log}
}

// Busy reports whether a batch is currently in flight. Navigation
// callers check this and no-op while it is set.
func (c *Coordinator) Busy() bool {
	return c.busy.Load()
}

// Generate runs the batch and returns results ordered by iteration
// index, regardless of completion order, plus the failures extracted
// from them. One failing iteration never cancels its siblings.
func (c *Coordinator) Generate(ctx context.Context, req Request) ([]Result, []Failure, error) {
	if req.BatchSize < 1 {
		return nil, nil, apperrors.ValidationError("Batch size must be at least 1")
	}
	if !c.busy.CompareAndSwap(false, true) {
		return nil, nil, apperrors.BusyError()
	}
	defer c.busy.Store(false)

	c.log.Debug(logger.AreaBatch, "starting batch",
		"size", req.BatchSize, "seedMode", string(req.SeedMode), "baseSeed", req.BaseSeed)

	// Results land in their iteration's slot, so completion order
	// never affects output order.
	results := make([]Result, req.BatchSize)

	g, gctx := errgroup.WithContext(ctx)
	workers := req.BatchSize
	if workers > maxWorkers {
		workers = maxWorkers
	}
	g.SetLimit(workers)

	for i := 0; i < req.BatchSize; i++ {
		i := i
		g.Go(func() error {
			results[i] = c.runIteration(gctx, req, i)
			// Errors are captured per-slot, never returned here,
			// so sibling iterations keep running.
			return nil
		})
	}
	_ = g.Wait()

	var failures []Failure
	for _, r := range results {
		if r.Err != nil {
			failures = append(failures, Failure{
				IterationIndex: r.IterationIndex,
				Message:        r.Err.Error(),
			})
		}
	}

	c.log.Debug(logger.AreaBatch, "batch finished",
		"size", req.BatchSize, "failures", len(failures))
	return results, failures, nil
}

func (c *Coordinator) runIteration(ctx context.Context, req Request, i int) Result {
	seed := req.SeedMode.SeedForIteration(req.BaseSeed, i)

	fields := make(map[string]string, len(models.FieldNames()))
	for _, name := range models.FieldNames() {
		fields[name] = renderer.Realize(c.lib, name, req.FieldTags[name], req.FieldValues[name], seed, req.Filters)
	}

	res := Result{IterationIndex: i, Seed: seed, Fields: fields}

	if err := ctx.Err(); err != nil {
		res.Err = apperrors.Wrap(err, apperrors.ErrCodeRefinerTimeout,
			fmt.Sprintf("Iteration %d cancelled", i))
		return res
	}

	rctx, cancel := context.WithTimeout(ctx, iterationTimeout)
	defer cancel()

	text, err := c.refiner.Refine(rctx, llm.Request{
		Fields:        fields,
		Instructions:  req.Instructions,
		Model:         req.RefinerModel,
		TargetModel:   req.TargetModel,
		ContentRating: highestRating(req.Filters),
	})
	if err != nil {
		c.log.Warn(logger.AreaBatch, "iteration failed", "iteration", i, "error", err.Error())
		res.Err = err
		return res
	}

	res.Text = text
	return res
}

// highestRating returns the most permissive rating in the filter set,
// which is what the refiner's content note should reflect.
func highestRating(filters []snippets.Rating) snippets.Rating {
	best := snippets.RatingPG
	for _, f := range filters {
		switch f {
		case snippets.RatingHentai:
			return snippets.RatingHentai
		case snippets.RatingNSFW:
			best = snippets.RatingNSFW
		}
	}
	return best
}
