// Package pipeline assembles a rewrite.Strategy from a small, data-driven
// specification, so a long-lived rewriting service can describe the shape
// of a pass (which combinator, which named rules, in what order) as
// configuration rather than Go source.
package pipeline

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/gitrdm/rewritekit/pkg/rewrite"
)

// StepSpec names one step of a pipeline: a rule (or nested pipeline) by
// name, wrapped in an optional traversal combinator.
type StepSpec struct {
	// Rule is the name of a rule registered in a Registry.
	Rule string `mapstructure:"rule"`
	// Traversal selects how Rule is applied across a term: "", "topdown",
	// "bottomup", "innermost", "outermost", "oncetd", "oncebu", "repeat".
	Traversal string `mapstructure:"traversal"`
}

// PipelineSpec is the top-level decoded configuration: an ordered sequence
// of steps run left to right with Seq, the whole thing wrapped in Attempt
// when AllowFailure is set.
type PipelineSpec struct {
	Name         string     `mapstructure:"name"`
	Steps        []StepSpec `mapstructure:"steps"`
	AllowFailure bool       `mapstructure:"allow_failure"`
}

// Registry resolves rule names used in a StepSpec to actual strategies.
// Callers populate it with whatever rule set their domain exposes (the
// arith package's Fold, RenameVar, and so on, for instance).
type Registry map[string]rewrite.Strategy

// Decode parses raw (typically loaded from YAML/JSON/HCL) into a
// PipelineSpec using mapstructure, so configuration files can describe a
// pipeline without any Go-specific syntax.
func Decode(raw map[string]interface{}) (PipelineSpec, error) {
	var spec PipelineSpec
	if err := mapstructure.Decode(raw, &spec); err != nil {
		return PipelineSpec{}, errors.Wrap(err, "pipeline: decode spec")
	}
	return spec, nil
}

// Build resolves spec against reg, wrapping each named rule in its
// requested traversal and chaining the results with Seq. It returns an
// error (not a panic) when a step names a rule the registry does not
// have, or an unknown traversal: configuration mistakes are a caller
// problem, not a programmer error in this package.
func Build(spec PipelineSpec, reg Registry) (rewrite.Strategy, error) {
	if len(spec.Steps) == 0 {
		return rewrite.Strategy{}, errors.Errorf("pipeline %q: no steps", spec.Name)
	}

	chain := rewrite.Id
	for i, step := range spec.Steps {
		rule, ok := reg[step.Rule]
		if !ok {
			return rewrite.Strategy{}, errors.Errorf("pipeline %q: step %d: unknown rule %q", spec.Name, i, step.Rule)
		}

		wrapped, err := applyTraversal(step.Traversal, rule)
		if err != nil {
			return rewrite.Strategy{}, errors.Wrapf(err, "pipeline %q: step %d", spec.Name, i)
		}

		if i == 0 {
			chain = wrapped
		} else {
			chain = rewrite.Seq(chain, wrapped)
		}
	}

	if spec.AllowFailure {
		chain = rewrite.Attempt(chain)
	}
	return chain, nil
}

func applyTraversal(name string, s rewrite.Strategy) (rewrite.Strategy, error) {
	switch name {
	case "", "none":
		return s, nil
	case "topdown":
		return rewrite.Topdown(s), nil
	case "bottomup":
		return rewrite.Bottomup(s), nil
	case "innermost":
		return rewrite.Innermost(s), nil
	case "outermost":
		return rewrite.Outermost(s), nil
	case "oncetd":
		return rewrite.Oncetd(s), nil
	case "oncebu":
		return rewrite.Oncebu(s), nil
	case "repeat":
		return rewrite.Repeat(s), nil
	default:
		return rewrite.Strategy{}, errors.Errorf("unknown traversal %q", name)
	}
}
