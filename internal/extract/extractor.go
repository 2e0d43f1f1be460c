package extract

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/companykit/webprofiler/internal/metrics"
	"github.com/companykit/webprofiler/internal/profile"
)

// Extractor fans extraction subtasks out over normalized text and settles
// every one of them to an explicit outcome. Subtask failures are isolated:
// an error, an empty response, or a timeout sentinels that field only.
type Extractor struct {
	generator   Generator
	callTimeout time.Duration
	logger      *zap.Logger
}

// New constructs an Extractor. callTimeout bounds each individual
// generation call, not the extraction as a whole.
func New(generator Generator, callTimeout time.Duration, logger *zap.Logger) *Extractor {
	if callTimeout <= 0 {
		callTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		generator:   generator,
		callTimeout: callTimeout,
		logger:      logger,
	}
}

// Extract runs the six independent subtasks concurrently, waits for all of
// them to settle, then runs the dependent tier-2 subtask with the settled
// tier-1 result embedded in its instruction. Tier-2 runs even when tier-1
// settled to the sentinel.
func (e *Extractor) Extract(ctx context.Context, text string) map[profile.Field]profile.Outcome {
	independent := profile.IndependentFields
	settled := make([]profile.Outcome, len(independent))

	// Fan-out: each goroutine writes only its own slot, so the slice needs
	// no lock. The WaitGroup is the fan-in barrier the dependent subtask
	// relies on.
	var wg sync.WaitGroup
	for i, field := range independent {
		wg.Add(1)
		go func() {
			defer wg.Done()
			settled[i] = e.runSubtask(ctx, field, text, fieldInstructions[field])
		}()
	}
	wg.Wait()

	outcomes := make(map[profile.Field]profile.Outcome, len(independent)+1)
	for i, field := range independent {
		outcomes[field] = settled[i]
	}

	tierOne := outcomes[profile.FieldTierOneKeywords].Settled()
	outcomes[profile.FieldTierTwoKeywords] = e.runSubtask(
		ctx,
		profile.FieldTierTwoKeywords,
		text,
		tierTwoInstruction(tierOne),
	)

	return outcomes
}

func (e *Extractor) runSubtask(ctx context.Context, field profile.Field, text, instruction string) profile.Outcome {
	callCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
	defer cancel()

	raw, err := e.generator.Generate(callCtx, text, instruction)
	switch {
	case err != nil:
		e.logger.Warn("extraction subtask failed",
			zap.String("field", string(field)),
			zap.Error(err),
		)
		metrics.ExtractionSettled(string(field), "failed")
		return profile.Failed(err)
	case strings.TrimSpace(raw) == "":
		e.logger.Debug("extraction subtask returned nothing", zap.String("field", string(field)))
		metrics.ExtractionSettled(string(field), "empty")
		return profile.Empty()
	default:
		metrics.ExtractionSettled(string(field), "value")
		return profile.Value(strings.TrimSpace(raw))
	}
}
