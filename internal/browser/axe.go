package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/chromedp/cdproto/runtime"
)

// ErrRuleScriptNotFound is returned when the accessibility rule engine
// script is missing from the configured path. This is a configuration
// failure: it escalates immediately instead of degrading per page.
var ErrRuleScriptNotFound = errors.New("accessibility rule script not found")

// AxeViolation is one rule violation as reported by the injected engine.
type AxeViolation struct {
	// ID is the rule identifier, e.g. "color-contrast".
	ID string `json:"id"`

	// Impact is the engine-reported impact string
	// (critical, serious, moderate, or minor).
	Impact string `json:"impact"`

	// Description explains what the rule checks.
	Description string `json:"description"`

	// Help is the remediation documentation URL.
	Help string `json:"help"`

	// Nodes is the number of affected elements.
	Nodes int `json:"nodes"`
}

// AxeResult is the raw output of one rule engine invocation.
type AxeResult struct {
	// Violations lists every violated rule with its affected node count.
	Violations []AxeViolation `json:"violations"`

	// Passes lists the IDs of rules that passed.
	Passes []string `json:"passes"`

	// Incomplete lists the IDs of rules the engine could not decide.
	Incomplete []string `json:"incomplete"`
}

// axeRunTemplate invokes the injected axe-core engine scoped to a tag set
// and reshapes its output into the AxeResult JSON shape. The nodes arrays
// are collapsed to counts here so element markup never crosses the wire.
const axeRunTemplate = `axe.run(document, {runOnly: {type: "tag", values: %s}}).then(function(r) {
	return {
		violations: r.violations.map(function(v) {
			return {id: v.id, impact: v.impact || "", description: v.description, help: v.helpUrl, nodes: v.nodes.length};
		}),
		passes: r.passes.map(function(p) { return p.id; }),
		incomplete: r.incomplete.map(function(i) { return i.id; })
	};
})`

// Axe runs the axe-core accessibility rule engine inside the current page
// of an Engine. The engine script is read from disk once and injected after
// every navigation (page scripts do not survive navigation).
type Axe struct {
	engine     *Engine
	scriptPath string

	loadOnce sync.Once
	script   string
	loadErr  error
}

// NewAxe creates an Axe bound to the given engine and script path.
func NewAxe(engine *Engine, scriptPath string) *Axe {
	return &Axe{engine: engine, scriptPath: scriptPath}
}

// Analyze injects the rule engine into the current page and runs it scoped
// to the given rule tags. The current page is whatever the engine last
// navigated to.
func (a *Axe) Analyze(ctx context.Context, tags []string) (*AxeResult, error) {
	a.loadOnce.Do(func() {
		data, err := os.ReadFile(a.scriptPath)
		if err != nil {
			if os.IsNotExist(err) {
				a.loadErr = fmt.Errorf("%w: %s", ErrRuleScriptNotFound, a.scriptPath)
				return
			}
			a.loadErr = fmt.Errorf("failed to read rule script %s: %w", a.scriptPath, err)
			return
		}
		a.script = string(data)
	})
	if a.loadErr != nil {
		return nil, a.loadErr
	}

	if err := a.engine.Evaluate(ctx, a.script, nil); err != nil {
		return nil, fmt.Errorf("failed to inject rule engine: %w", err)
	}

	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rule tags: %w", err)
	}

	var result AxeResult
	if err := a.engine.Evaluate(ctx, fmt.Sprintf(axeRunTemplate, tagsJSON), &result); err != nil {
		return nil, fmt.Errorf("rule engine run failed: %w", err)
	}
	return &result, nil
}

// awaitPromise makes Evaluate resolve promises before returning the value.
func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}
