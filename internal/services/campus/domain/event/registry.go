// Package event resolves each arc's current milestone to the handler that
// plays it out, and runs one dispatch round across all four arcs.
package event

import (
	"context"
	"fmt"

	"github.com/louisbranch/campuslife/internal/services/campus/domain/activity"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/narrative"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/session"
)

// Handler plays one narrative event. It presents choices, applies the chosen
// branch, and records the event's completion achievement.
type Handler func(ctx context.Context, env activity.Env, sess *session.Session) error

// Registry maps milestones to handlers.
type Registry struct {
	handlers map[narrative.Milestone]Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: map[narrative.Milestone]Handler{}}
}

// Register binds h to m. Each milestone takes one handler.
func (r *Registry) Register(m narrative.Milestone, h Handler) error {
	if !m.Valid() {
		return fmt.Errorf("register handler: invalid milestone %d", int(m))
	}
	if h == nil {
		return fmt.Errorf("register handler for %s: handler is required", m.Key())
	}
	if _, exists := r.handlers[m]; exists {
		return fmt.Errorf("register handler for %s: already registered", m.Key())
	}
	r.handlers[m] = h
	return nil
}

// Lookup returns the handler bound to m.
func (r *Registry) Lookup(m narrative.Milestone) (Handler, bool) {
	h, ok := r.handlers[m]
	return h, ok
}

// Missing lists declared milestones without a handler.
func (r *Registry) Missing() []narrative.Milestone {
	var missing []narrative.Milestone
	for _, m := range narrative.Milestones() {
		if _, ok := r.handlers[m]; !ok {
			missing = append(missing, m)
		}
	}
	return missing
}

// DefaultRegistry binds every milestone: the hand-written events plus the
// embedded scripted catalog.
func DefaultRegistry() (*Registry, error) {
	r := NewRegistry()
	for m, h := range builtinHandlers() {
		if err := r.Register(m, h); err != nil {
			return nil, err
		}
	}
	scripts, err := LoadScripts()
	if err != nil {
		return nil, err
	}
	for _, script := range scripts {
		if err := r.Register(script.Milestone, script.Handler()); err != nil {
			return nil, err
		}
	}
	if missing := r.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("no handler for %d milestones, first %s", len(missing), missing[0].Key())
	}
	return r, nil
}

// Dispatcher runs dispatch rounds against a registry.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher returns a dispatcher over registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Round plays the current milestone of every arc in dispatch order.
// Milestones without a handler are skipped.
func (d *Dispatcher) Round(ctx context.Context, env activity.Env, sess *session.Session) error {
	for _, arc := range sess.Story.Arcs() {
		milestone := arc.CurrentMilestone()
		handler, ok := d.registry.Lookup(milestone)
		if !ok {
			env.Logf("no handler for %s milestone %s", arc.ID, milestone.Key())
			continue
		}
		env.Logf("event %s/%s", arc.ID, milestone.Key())
		if err := handler(ctx, env, sess); err != nil {
			return fmt.Errorf("%s: %w", milestone.Key(), err)
		}
	}
	return nil
}
