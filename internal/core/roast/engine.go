package roast

import (
	"fmt"
	"slices"
	"time"

	"github.com/Vagvedi/gitrekt/internal/core/metrics"
	"github.com/Vagvedi/gitrekt/internal/platform/logger"
)

// Engine runs the rule table against a user aggregate
type Engine struct {
	rules []Rule
	log   *logger.Logger
	now   func() time.Time
}

// Option customizes an Engine
type Option func(*Engine)

// WithRules replaces the rule table
func WithRules(rules []Rule) Option { return func(e *Engine) { e.rules = rules } }

// WithLogger sets the logger used for rule failures
func WithLogger(l *logger.Logger) Option { return func(e *Engine) { e.log = l } }

// WithClock sets the time source read once per evaluation pass
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// NewEngine builds an engine over DefaultRules
func NewEngine(opts ...Option) *Engine {
	e := &Engine{rules: DefaultRules(), now: time.Now}
	for _, o := range opts {
		o(e)
	}
	if e.log == nil {
		e.log = logger.Named("roast.engine")
	}
	return e
}

// Evaluate returns the findings of every rule that fired, critical first
// a failing rule is logged and skipped, it never aborts the pass
func (e *Engine) Evaluate(u metrics.User) []Issue {
	now := e.now()
	out := make([]Issue, 0, len(e.rules))

	for _, r := range e.rules {
		iss, err := e.run(r, u, now)
		if err != nil {
			e.log.Warn().Err(err).Str("rule", r.ID).Str("user", u.Username).Msg("rule skipped")
			continue
		}
		if iss != nil {
			out = append(out, *iss)
		}
	}

	slices.SortStableFunc(out, func(a, b Issue) int {
		return a.Severity.Rank() - b.Severity.Rank()
	})
	return out
}

func (e *Engine) run(r Rule, u metrics.User, now time.Time) (iss *Issue, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			iss, err = nil, fmt.Errorf("rule %s panicked: %v", r.ID, rec)
		}
	}()

	if r.Condition == nil || r.Generate == nil {
		return nil, fmt.Errorf("rule %s is incomplete", r.ID)
	}
	if !r.Condition(u, now) {
		return nil, nil
	}
	iss, err = r.Generate(u, now)
	if err != nil {
		return nil, err
	}
	if iss != nil && !iss.Severity.Valid() {
		return nil, fmt.Errorf("rule %s produced severity %q", r.ID, iss.Severity)
	}
	return iss, nil
}
