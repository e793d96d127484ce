// Package ruleset resolves the effective rule plan of a run from a composed
// configuration.
//
// A rule set is a top level section of the baseline that carries an "active"
// key. Every nested section of a rule set is a rule. Whether a rule runs,
// whether it may auto-correct, its severity and the files it applies to are
// all looked up through the composed node, so CLI overrides and user files
// are honoured exactly as the rule itself would see them.
package ruleset

import (
	"fmt"

	"github.com/sonemaro/lintconf/pkg/config"
	"github.com/sonemaro/lintconf/pkg/pathfilter"
)

const (
	// DefaultSeverity is used when neither the rule nor its rule set names one.
	DefaultSeverity = "warning"

	// BuildSection holds run wide settings such as maxIssues.
	BuildSection = "build"

	// Unlimited disables the maxIssues threshold.
	Unlimited = -1
)

// Rule is the resolved configuration of one rule.
type Rule struct {
	Name        string              `json:"name" yaml:"name"`
	Path        string              `json:"path" yaml:"path"`
	Active      bool                `json:"active" yaml:"active"`
	AutoCorrect bool                `json:"autoCorrect" yaml:"autoCorrect"`
	Severity    string              `json:"severity" yaml:"severity"`
	Filters     *pathfilter.Filters `json:"-" yaml:"-"`
	Includes    []string            `json:"includes,omitempty" yaml:"includes,omitempty"`
	Excludes    []string            `json:"excludes,omitempty" yaml:"excludes,omitempty"`
}

// Applies reports whether the rule is active and not filtered out for path.
func (r Rule) Applies(path string) bool {
	return r.Active && !r.Filters.IsIgnored(path)
}

// RuleSet groups the rules of one top level section.
type RuleSet struct {
	Name   string `json:"name" yaml:"name"`
	Active bool   `json:"active" yaml:"active"`
	Rules  []Rule `json:"rules" yaml:"rules"`
}

// Plan is the resolved rule configuration of a run.
type Plan struct {
	MaxIssues int       `json:"maxIssues" yaml:"maxIssues"`
	RuleSets  []RuleSet `json:"ruleSets" yaml:"ruleSets"`
}

// ActiveRules returns every active rule across all rule sets.
func (p *Plan) ActiveRules() []Rule {
	var active []Rule
	for _, rs := range p.RuleSets {
		for _, r := range rs.Rules {
			if r.Active {
				active = append(active, r)
			}
		}
	}
	return active
}

// Count returns the number of rules and how many of them are active.
func (p *Plan) Count() (total, active int) {
	for _, rs := range p.RuleSets {
		total += len(rs.Rules)
		for _, r := range rs.Rules {
			if r.Active {
				active++
			}
		}
	}
	return total, active
}

// Select returns a plan holding only the rules sel keeps. Rule sets left
// without rules are dropped.
func (p *Plan) Select(sel Selector) *Plan {
	if sel.Empty() {
		return p
	}

	selected := &Plan{MaxIssues: p.MaxIssues}
	for _, rs := range p.RuleSets {
		kept := RuleSet{Name: rs.Name, Active: rs.Active}
		for _, r := range rs.Rules {
			if sel.Selects(r.Name) {
				kept.Rules = append(kept.Rules, r)
			}
		}
		if len(kept.Rules) > 0 {
			selected.RuleSets = append(selected.RuleSets, kept)
		}
	}
	return selected
}

// RuleNames returns the names of every rule of the plan in order.
func (p *Plan) RuleNames() []string {
	var names []string
	for _, rs := range p.RuleSets {
		for _, r := range rs.Rules {
			names = append(names, r.Name)
		}
	}
	return names
}

// Resolve walks the rule sets declared in baseline and resolves every rule
// through root.
func Resolve(root config.Node, baseline config.Tree) (*Plan, error) {
	maxIssues, err := config.Get(root.SubConfig(BuildSection), config.KeyMaxIssues, 0)
	if err != nil {
		return nil, err
	}

	plan := &Plan{MaxIssues: maxIssues}

	for _, name := range baseline.Keys() {
		section, ok := baseline.Sub(name)
		if !ok {
			continue
		}
		if _, isRuleSet := section[config.KeyActive]; !isRuleSet {
			continue
		}

		rs, err := resolveRuleSet(root.SubConfig(name), name, section)
		if err != nil {
			return nil, err
		}
		plan.RuleSets = append(plan.RuleSets, rs)
	}

	return plan, nil
}

func resolveRuleSet(node config.Node, name string, section config.Tree) (RuleSet, error) {
	active, err := config.Get(node, config.KeyActive, true)
	if err != nil {
		return RuleSet{}, err
	}
	severity, err := config.Get(node, config.KeySeverity, DefaultSeverity)
	if err != nil {
		return RuleSet{}, err
	}
	setFilters, err := pathfilter.FromConfig(node)
	if err != nil {
		return RuleSet{}, fmt.Errorf("rule set %s: %w", name, err)
	}

	rs := RuleSet{Name: name, Active: active}

	for _, ruleName := range section.Keys() {
		if _, ok := section.Sub(ruleName); !ok {
			continue
		}

		rule, err := resolveRule(node.SubConfig(ruleName), node.Path(ruleName), ruleName, severity, setFilters)
		if err != nil {
			return RuleSet{}, err
		}
		rule.Active = active && rule.Active
		rs.Rules = append(rs.Rules, rule)
	}

	return rs, nil
}

func resolveRule(node config.Node, path, name, setSeverity string, setFilters *pathfilter.Filters) (Rule, error) {
	active, err := config.Get(node, config.KeyActive, false)
	if err != nil {
		return Rule{}, err
	}
	autoCorrect, err := config.Get(node, config.KeyAutoCorrect, false)
	if err != nil {
		return Rule{}, err
	}
	severity, err := config.Get(node, config.KeySeverity, setSeverity)
	if err != nil {
		return Rule{}, err
	}
	filters, err := pathfilter.FromConfig(node)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %s: %w", path, err)
	}
	if filters == nil {
		filters = setFilters
	}

	return Rule{
		Name:        name,
		Path:        path,
		Active:      active,
		AutoCorrect: autoCorrect,
		Severity:    severity,
		Filters:     filters,
		Includes:    filters.Includes(),
		Excludes:    filters.Excludes(),
	}, nil
}
