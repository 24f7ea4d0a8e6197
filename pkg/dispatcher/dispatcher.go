// Package dispatcher ties the engine together: deterministic intent matching,
// best-effort model consultation, plan execution and response combination.
//
// The contract is asymmetric on purpose: the model advises, the deterministic
// matcher commits. Execution always runs the deterministic plan so results
// are reproducible even when the model is missing, slow, or emits garbage.
package dispatcher

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/harits/aksi/pkg/executor"
	"github.com/harits/aksi/pkg/intent"
	"github.com/harits/aksi/pkg/model"
	"github.com/harits/aksi/pkg/parser"
	"github.com/harits/aksi/pkg/prompt"
	"github.com/harits/aksi/pkg/registry"
)

// Understanding calls use a small budget and a slightly higher temperature
// than plan generation; the output is narrative, not structure.
const (
	understandingMaxTokens   = 100
	understandingTemperature = 0.3
)

// Outcome is the unit returned to the caller. Its JSON form is the public
// dispatch contract.
type Outcome struct {
	Success   bool                       `json:"success"`
	Narrative string                     `json:"narrative"`
	Results   []executor.ExecutionResult `json:"results"`
	Error     string                     `json:"error,omitempty"`

	ID    string `json:"-"`
	Query string `json:"-"`
}

// Recorder persists dispatch outcomes. Recording is best effort; a recorder
// failure never fails the dispatch.
type Recorder interface {
	Record(ctx context.Context, outcome Outcome) error
}

// Dispatcher processes one query into one outcome.
type Dispatcher struct {
	registry *registry.Registry
	executor *executor.Executor
	handle   model.Advisor
	modelCfg model.Config
	recorder Recorder
}

// New creates a dispatcher. recorder may be nil.
func New(reg *registry.Registry, exec *executor.Executor, handle model.Advisor, modelCfg model.Config, recorder Recorder) *Dispatcher {
	return &Dispatcher{
		registry: reg,
		executor: exec,
		handle:   handle,
		modelCfg: modelCfg,
		recorder: recorder,
	}
}

// Dispatch runs the full cycle: match, consult, execute, combine. It never
// panics on bad input; every failure is folded into the outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, query string) Outcome {
	id := uuid.NewString()
	logger := log.With().Str("dispatch_id", id).Logger()
	logger.Info().Str("query", query).Msg("Dispatch received")

	callPlan, matchErr := intent.Match(query)
	logger.Debug().Strs("plan", callPlan.Names()).Msg("Deterministic plan matched")

	understanding := d.consultModel(ctx, query, logger)

	var outcome Outcome
	if errors.Is(matchErr, intent.ErrNoIntent) {
		outcome = Outcome{
			Success:   false,
			Narrative: prependUnderstanding(understanding, ""),
			Results:   []executor.ExecutionResult{},
			Error:     "unrecognized request: I don't understand this query, please try rephrasing",
		}
	} else {
		results := d.executor.ExecutePlan(ctx, callPlan)
		outcome = combine(understanding, results)
	}

	outcome.ID = id
	outcome.Query = query

	if d.recorder != nil {
		if err := d.recorder.Record(ctx, outcome); err != nil {
			logger.Warn().Err(err).Msg("Failed to record dispatch outcome")
		}
	}

	logger.Info().Bool("success", outcome.Success).Int("results", len(outcome.Results)).
		Msg("Dispatch returned")
	return outcome
}

// consultModel fetches the advisory narrative and, for observability, a
// candidate plan from the model. Neither ever gates execution: any failure
// here degrades to deterministic-only.
func (d *Dispatcher) consultModel(ctx context.Context, query string, logger zerolog.Logger) string {
	if !d.handle.Available() {
		logger.Debug().Msg("Model unavailable, deterministic-only dispatch")
		return ""
	}

	understanding, err := d.handle.Generate(ctx, prompt.BuildUnderstanding(query),
		understandingMaxTokens, understandingTemperature)
	if err != nil {
		logger.Warn().Err(err).Msg("Model understanding failed")
		understanding = ""
	}

	raw, err := d.handle.Generate(ctx, prompt.Build(query, d.registry),
		d.modelCfg.MaxTokens, d.modelCfg.Temperature)
	if err != nil {
		logger.Warn().Err(err).Msg("Model plan generation failed")
	} else if candidate, perr := parser.ParseCallPlan(raw); perr != nil {
		logger.Debug().Err(perr).Msg("Model output not extractable as call plan")
	} else {
		logger.Debug().Strs("candidate", candidate.Names()).
			Msg("Model proposed a call plan (advisory only)")
	}

	return strings.TrimSpace(understanding)
}

// combine merges execution results into the user-facing outcome. Successful
// data fields are concatenated in call order; the AI understanding, when
// present, becomes a labeled preamble. It does not re-interpret tool output.
func combine(understanding string, results []executor.ExecutionResult) Outcome {
	bodies := make([]string, 0, len(results))
	failures := make([]string, 0, len(results))
	for _, result := range results {
		if result.Success {
			bodies = append(bodies, result.Data)
		} else {
			failures = append(failures, result.Tool+": "+result.Error)
		}
	}

	outcome := Outcome{
		Results:   results,
		Narrative: prependUnderstanding(understanding, strings.Join(bodies, "\n\n")),
	}

	switch {
	case len(results) == 0:
		// Legitimately empty plan: nothing to do is not a failure.
		outcome.Success = true
	case len(bodies) > 0:
		outcome.Success = true
	default:
		outcome.Success = false
		outcome.Error = strings.Join(failures, "; ")
	}

	return outcome
}

func prependUnderstanding(understanding, body string) string {
	if understanding == "" {
		return body
	}
	if body == "" {
		return "AI Understanding: " + understanding
	}
	return "AI Understanding: " + understanding + "\n\n" + body
}
