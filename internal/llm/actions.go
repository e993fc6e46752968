package llm

import (
	"context"
	"fmt"
	"strings"
)

// Action selects one of the fixed article-processing prompts.
type Action string

const (
	ActionAbout    Action = "about"
	ActionTheses   Action = "theses"
	ActionTelegram Action = "telegram"
)

// Generation limits per task
const (
	actionMaxTokens      = 2000
	actionTemperature    = 0.3
	translateMaxTokens   = 4000
	translateTemperature = 0.3
)

// Actions lists the closed set in display order.
func Actions() []Action {
	return []Action{ActionAbout, ActionTheses, ActionTelegram}
}

// ParseAction accepts only members of the closed set.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if _, ok := actionPrompts[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
	return a, nil
}

// Dispatcher maps tasks to their prompts and delegates to a Completer.
type Dispatcher struct {
	completer Completer
}

func NewDispatcher(completer Completer) *Dispatcher {
	return &Dispatcher{completer: completer}
}

// Run executes action over the article text. Unknown actions are rejected
// before anything is sent.
func (d *Dispatcher) Run(ctx context.Context, action Action, articleText string) (string, error) {
	p, ok := actionPrompts[action]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, string(action))
	}
	return d.completer.Complete(ctx, p.System, p.UserPrefix+strings.TrimSpace(articleText), actionMaxTokens, actionTemperature)
}

// Translate renders the text in Russian.
func (d *Dispatcher) Translate(ctx context.Context, text string) (string, error) {
	return d.completer.Complete(ctx, translatePrompt.System, translatePrompt.UserPrefix+text, translateMaxTokens, translateTemperature)
}
