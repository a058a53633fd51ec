// Package replay applies a scripted list of sales and cancellations to a
// box office and reports the outcome of each step.
package replay

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/boxoffice"
	"github.com/agentstation/boxoffice/pkg/errors"
	"github.com/agentstation/boxoffice/pkg/logging"
)

// Op is a scripted operation.
type Op string

// Supported operations.
const (
	OpSell   Op = "sell"
	OpCancel Op = "cancel"
)

// Step is one scripted transaction.
type Step struct {
	Op       Op     `json:"op" yaml:"op"`
	Client   string `json:"client" yaml:"client"` // "First Last"
	Event    string `json:"event" yaml:"event"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

// Script is a list of steps.
type Script struct {
	Steps []Step `json:"steps" yaml:"steps"`
}

// Outcome is the result of applying one step.
type Outcome struct {
	Step     int    `json:"step" yaml:"step"`
	Op       Op     `json:"op" yaml:"op"`
	Client   string `json:"client" yaml:"client"`
	Event    string `json:"event" yaml:"event"`
	Quantity int    `json:"quantity" yaml:"quantity"`
	OK       bool   `json:"ok" yaml:"ok"`
	Held     int    `json:"held,omitempty" yaml:"held,omitempty"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Load reads and validates a YAML script.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates a YAML script. file is only used in errors.
func Parse(data []byte, file string) (*Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, errors.WrapParse("yaml", file, err)
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}
	return &script, nil
}

// Validate checks every step has a known op, a client and an event.
// Quantities are left to the ledger so bad ones show up as outcomes.
func (s *Script) Validate() error {
	for i, step := range s.Steps {
		field := fmt.Sprintf("steps[%d]", i)
		switch {
		case step.Op != OpSell && step.Op != OpCancel:
			return errors.NewValidationError(field+".op", step.Op, "must be sell or cancel")
		case strings.TrimSpace(step.Client) == "":
			return errors.NewValidationError(field+".client", step.Client, "cannot be empty")
		case strings.TrimSpace(step.Event) == "":
			return errors.NewValidationError(field+".event", step.Event, "cannot be empty")
		}
	}
	return nil
}

// Runner applies scripts to a box office.
type Runner struct {
	bo     boxoffice.BoxOffice
	strict bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithStrict stops a run at the first failed step.
func WithStrict(strict bool) Option {
	return func(r *Runner) {
		r.strict = strict
	}
}

// NewRunner creates a runner over bo.
func NewRunner(bo boxoffice.BoxOffice, opts ...Option) *Runner {
	r := &Runner{bo: bo}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run applies the steps in order and returns one outcome per attempted
// step. Rejected transactions are outcomes, not errors, unless the runner
// is strict; then the run stops and the rejection is returned with the
// outcomes so far.
func (r *Runner) Run(ctx context.Context, script *Script) ([]Outcome, error) {
	logger := logging.FromContext(ctx)
	outcomes := make([]Outcome, 0, len(script.Steps))

	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		outcome := Outcome{
			Step:     i + 1,
			Op:       step.Op,
			Client:   strings.Join(strings.Fields(step.Client), " "),
			Event:    strings.TrimSpace(step.Event),
			Quantity: step.Quantity,
		}

		var err error
		switch step.Op {
		case OpSell:
			outcome.Held, err = r.bo.SellByName(outcome.Client, outcome.Event, step.Quantity)
		case OpCancel:
			err = r.bo.CancelByName(outcome.Client, outcome.Event, step.Quantity)
		default:
			err = errors.NewValidationError("op", step.Op, "must be sell or cancel")
		}

		outcome.OK = err == nil
		if err != nil {
			outcome.Error = err.Error()
			logger.Debug().Err(err).Int("step", outcome.Step).Msg("Step rejected")
		}
		outcomes = append(outcomes, outcome)

		if err != nil && r.strict {
			return outcomes, fmt.Errorf("step %d: %w", outcome.Step, err)
		}
	}

	return outcomes, nil
}

// Summary totals the outcomes of a run.
type Summary struct {
	Steps           int `json:"steps" yaml:"steps"`
	Applied         int `json:"applied" yaml:"applied"`
	Rejected        int `json:"rejected" yaml:"rejected"`
	TicketsSold     int `json:"tickets_sold" yaml:"tickets_sold"`
	TicketsReturned int `json:"tickets_returned" yaml:"tickets_returned"`
}

// Summarize totals outcomes. Only applied steps count towards tickets.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Steps: len(outcomes)}
	for _, o := range outcomes {
		if !o.OK {
			s.Rejected++
			continue
		}
		s.Applied++
		switch o.Op {
		case OpSell:
			s.TicketsSold += o.Quantity
		case OpCancel:
			s.TicketsReturned += o.Quantity
		}
	}
	return s
}
