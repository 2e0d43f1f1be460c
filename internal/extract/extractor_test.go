package extract

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/companykit/webprofiler/internal/profile"
)

// scriptedGenerator settles each field according to a script keyed by the
// instruction's field, and records call ordering for barrier assertions.
type scriptedGenerator struct {
	mu        sync.Mutex
	responses map[profile.Field]string
	errs      map[profile.Field]error
	delays    map[profile.Field]time.Duration

	inFlight      atomic.Int32
	settledCount  atomic.Int32
	tierTwoCalled atomic.Bool
	// settledAtTierTwo captures how many independent subtasks had settled
	// when the tier-2 call arrived.
	settledAtTierTwo atomic.Int32
	tierTwoPrompt    string
}

func fieldForInstruction(instruction string) profile.Field {
	if strings.Contains(instruction, "tier 1 keywords provided") {
		return profile.FieldTierTwoKeywords
	}
	for field, known := range fieldInstructions {
		if instruction == known {
			return field
		}
	}
	return ""
}

func (g *scriptedGenerator) Generate(ctx context.Context, _, instruction string) (string, error) {
	field := fieldForInstruction(instruction)

	if field == profile.FieldTierTwoKeywords {
		g.tierTwoCalled.Store(true)
		g.settledAtTierTwo.Store(g.settledCount.Load())
		g.mu.Lock()
		g.tierTwoPrompt = instruction
		g.mu.Unlock()
	} else {
		g.inFlight.Add(1)
		defer func() {
			g.inFlight.Add(-1)
			g.settledCount.Add(1)
		}()
	}

	g.mu.Lock()
	delay := g.delays[field]
	response, hasResponse := g.responses[field]
	err := g.errs[field]
	g.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	if !hasResponse {
		return "", nil
	}
	return response, nil
}

func happyResponses() map[profile.Field]string {
	return map[profile.Field]string{
		profile.FieldCompanyName:        "Acme Corp",
		profile.FieldServiceLines:       "roofing, solar",
		profile.FieldCompanyDescription: "Acme installs solar roofing.",
		profile.FieldTierOneKeywords:    "solar, roofing",
		profile.FieldTierTwoKeywords:    "renewable, construction",
		profile.FieldEmails:             "info@acme.test",
		profile.FieldPointOfContact:     "Jane Smith",
	}
}

func TestExtractAllFieldsSucceed(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{responses: happyResponses()}
	e := New(gen, time.Second, nil)

	outcomes := e.Extract(context.Background(), "site text")
	require.Len(t, outcomes, 7)
	for field, outcome := range outcomes {
		require.Equal(t, profile.OutcomeValue, outcome.Kind, "field %s", field)
	}

	got := profile.Aggregate(outcomes)
	require.Equal(t, "Acme Corp", got.CompanyName)
	require.Equal(t, []string{"renewable", "construction"}, got.TierTwoKeywords)
}

func TestExtractIsolatesPartialFailures(t *testing.T) {
	t.Parallel()

	// Two of the six independent subtasks misbehave: one errors, one comes
	// back empty. Exactly those two fields sentinel; the rest keep values.
	gen := &scriptedGenerator{
		responses: happyResponses(),
		errs: map[profile.Field]error{
			profile.FieldCompanyDescription: errors.New("model overloaded"),
		},
	}
	gen.responses[profile.FieldEmails] = ""

	e := New(gen, time.Second, nil)
	got := profile.Aggregate(e.Extract(context.Background(), "site text"))

	require.Equal(t, profile.Sentinel, got.CompanyDescription)
	require.Equal(t, []string{profile.Sentinel}, got.Emails)

	require.Equal(t, "Acme Corp", got.CompanyName)
	require.Equal(t, []string{"roofing", "solar"}, got.ServiceLines)
	require.Equal(t, []string{"solar", "roofing"}, got.TierOneKeywords)
	require.Equal(t, "Jane Smith", got.PointOfContact)
}

func TestExtractTierTwoWaitsForAllIndependentSubtasks(t *testing.T) {
	t.Parallel()

	// Stagger the independent subtasks so a premature tier-2 start would
	// observe fewer than six settlements.
	gen := &scriptedGenerator{
		responses: happyResponses(),
		delays: map[profile.Field]time.Duration{
			profile.FieldCompanyName:     40 * time.Millisecond,
			profile.FieldPointOfContact:  80 * time.Millisecond,
			profile.FieldTierOneKeywords: 20 * time.Millisecond,
		},
	}

	e := New(gen, time.Second, nil)
	e.Extract(context.Background(), "site text")

	require.True(t, gen.tierTwoCalled.Load())
	require.Equal(t, int32(len(profile.IndependentFields)), gen.settledAtTierTwo.Load(),
		"tier-2 started before every independent subtask settled")
}

func TestExtractTierTwoRunsWithSentinelTierOne(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{
		responses: happyResponses(),
		errs: map[profile.Field]error{
			profile.FieldTierOneKeywords: errors.New("timeout"),
		},
	}

	e := New(gen, time.Second, nil)
	got := profile.Aggregate(e.Extract(context.Background(), "site text"))

	require.Equal(t, []string{profile.Sentinel}, got.TierOneKeywords)
	// Tier-2 still ran, with the sentinel embedded in its instruction.
	require.True(t, gen.tierTwoCalled.Load())
	require.Contains(t, gen.tierTwoPrompt, "tier 1 keywords: "+profile.Sentinel)
	require.Equal(t, []string{"renewable", "construction"}, got.TierTwoKeywords)
}

func TestExtractTierTwoFailureOnlySentinelsTierTwo(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{
		responses: happyResponses(),
		errs: map[profile.Field]error{
			profile.FieldTierTwoKeywords: errors.New("boom"),
		},
	}

	e := New(gen, time.Second, nil)
	got := profile.Aggregate(e.Extract(context.Background(), "site text"))

	require.Equal(t, []string{profile.Sentinel}, got.TierTwoKeywords)
	require.Equal(t, []string{"solar", "roofing"}, got.TierOneKeywords)
	require.Equal(t, "Acme Corp", got.CompanyName)
}

func TestExtractTimedOutCallBecomesSentinel(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{
		responses: happyResponses(),
		delays: map[profile.Field]time.Duration{
			profile.FieldCompanyName: 500 * time.Millisecond,
		},
	}

	e := New(gen, 50*time.Millisecond, nil)
	outcomes := e.Extract(context.Background(), "site text")

	require.Equal(t, profile.OutcomeFailed, outcomes[profile.FieldCompanyName].Kind)
	got := profile.Aggregate(outcomes)
	require.Equal(t, profile.Sentinel, got.CompanyName)
	require.Equal(t, []string{"roofing", "solar"}, got.ServiceLines)
}
