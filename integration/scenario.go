// This file is part of Retroreplay.
//
// Retroreplay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Retroreplay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Retroreplay.  If not, see <https://www.gnu.org/licenses/>.

package integration

import (
	"io/fs"
	"sort"
	"strings"

	"github.com/jetsetilly/retroreplay/curated"
)

// Sentinel patterns for scenario errors.
const (
	UnknownOperator  = "integration: scenario %s: unknown operator (%s) for %s"
	UnknownCondition = "integration: scenario %s: unknown done condition (%s)"
	BadScriptRef     = "integration: scenario %s: bad script reference (%s)"
)

// Condition is a test of a variable's value.
//
// Valid operators are: equal, not-equal, less-than, greater-than,
// less-or-equal, greater-or-equal, zero, nonzero, negative, positive. The
// first six compare against the Reference value.
type Condition struct {
	Op        string `yaml:"op"`
	Reference int    `yaml:"reference"`
}

func (c Condition) valid() bool {
	switch c.Op {
	case "equal", "not-equal", "less-than", "greater-than", "less-or-equal",
		"greater-or-equal", "zero", "nonzero", "negative", "positive":
		return true
	}
	return false
}

func (c Condition) test(v int) bool {
	switch c.Op {
	case "equal":
		return v == c.Reference
	case "not-equal":
		return v != c.Reference
	case "less-than":
		return v < c.Reference
	case "greater-than":
		return v > c.Reference
	case "less-or-equal":
		return v <= c.Reference
	case "greater-or-equal":
		return v >= c.Reference
	case "zero":
		return v == 0
	case "nonzero":
		return v != 0
	case "negative":
		return v < 0
	case "positive":
		return v > 0
	}
	return false
}

// Done describes when an episode has terminated. Either Script or
// Variables is used, with Script taking priority.
type Done struct {
	// "any" (the default) or "all"
	Condition string               `yaml:"condition"`
	Variables map[string]Condition `yaml:"variables"`

	// reference to a script function. for example, "lua:isdone"
	Script string `yaml:"script"`
}

// RewardVariable describes how the change of a variable contributes to the
// reward.
type RewardVariable struct {
	// multiplier for positive measurements
	Reward float64 `yaml:"reward"`

	// multiplier for negative measurements
	Penalty float64 `yaml:"penalty"`

	// "delta" (the default) measures the change since the previous step.
	// "absolute" measures the current value
	Measure string `yaml:"measure"`
}

// Reward describes how the reward for each step is calculated. Either Script
// or Variables is used, with Script taking priority.
type Reward struct {
	Variables map[string]RewardVariable `yaml:"variables"`
	Script    string                    `yaml:"script"`
}

// Scenario is the set of rules that produce the reward and the done
// condition for every step.
type Scenario struct {
	Name string `yaml:"-"`

	Done   Done   `yaml:"done"`
	Reward Reward `yaml:"reward"`

	// script files to load before the scenario is used
	Scripts []string `yaml:"scripts"`

	// number of steps after which the episode is truncated. zero means no
	// truncation
	MaxSteps int `yaml:"max_steps"`

	rewardFn string
	doneFn   string
	lua      *luaScript
}

// Outcome of one step as judged by the scenario.
type Outcome struct {
	Reward     float64
	Terminated bool
	Truncated  bool
}

func scriptFunction(scenario, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	lang, fn, ok := strings.Cut(ref, ":")
	if !ok || lang != "lua" || fn == "" {
		return "", curated.Errorf(BadScriptRef, scenario, ref)
	}
	return fn, nil
}

// prepare the scenario after decoding. checks operators and loads scripts.
func (s *Scenario) prepare(fsys fs.FS) error {
	switch s.Done.Condition {
	case "":
		s.Done.Condition = "any"
	case "any", "all":
	default:
		return curated.Errorf(UnknownCondition, s.Name, s.Done.Condition)
	}

	for name, c := range s.Done.Variables {
		if !c.valid() {
			return curated.Errorf(UnknownOperator, s.Name, c.Op, name)
		}
	}

	for name, r := range s.Reward.Variables {
		switch r.Measure {
		case "", "delta", "absolute":
		default:
			return curated.Errorf(UnknownOperator, s.Name, r.Measure, name)
		}
	}

	var err error

	s.rewardFn, err = scriptFunction(s.Name, s.Reward.Script)
	if err != nil {
		return err
	}
	s.doneFn, err = scriptFunction(s.Name, s.Done.Script)
	if err != nil {
		return err
	}

	if len(s.Scripts) > 0 {
		s.lua, err = loadScripts(fsys, s.Scripts)
		if err != nil {
			return curated.Errorf("integration: scenario %s: %v", s.Name, err)
		}
	}

	if (s.rewardFn != "" || s.doneFn != "") && s.lua == nil {
		return curated.Errorf("integration: scenario %s: script functions named but no scripts loaded", s.Name)
	}

	return nil
}

// Validate checks that every variable named by the scenario is in the Data.
func (s *Scenario) Validate(d *Data) error {
	var names []string
	for name := range s.Done.Variables {
		names = append(names, name)
	}
	for name := range s.Reward.Variables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, ok := d.Info[name]; !ok {
			return curated.Errorf(MissingVariable, s.Name, name)
		}
	}
	return nil
}

// Evaluate the scenario for one step. The prev map contains the variable
// values of the previous step and curr contains the values of the step being
// evaluated. steps is the number of steps since the most recent reset,
// including this one.
func (s *Scenario) Evaluate(prev map[string]int, curr map[string]int, steps int) (Outcome, error) {
	var out Outcome
	var err error

	if s.rewardFn != "" {
		out.Reward, err = s.lua.reward(s.rewardFn, prev, curr, steps)
		if err != nil {
			return Outcome{}, err
		}
	} else {
		for name, r := range s.Reward.Variables {
			var m float64
			if r.Measure == "absolute" {
				m = float64(curr[name])
			} else {
				m = float64(curr[name] - prev[name])
			}
			if m > 0 {
				out.Reward += m * r.Reward
			} else if m < 0 {
				out.Reward += m * r.Penalty
			}
		}
	}

	if s.doneFn != "" {
		out.Terminated, err = s.lua.done(s.doneFn, prev, curr, steps)
		if err != nil {
			return Outcome{}, err
		}
	} else if len(s.Done.Variables) > 0 {
		all := true
		for name, c := range s.Done.Variables {
			if c.test(curr[name]) {
				out.Terminated = true
			} else {
				all = false
			}
		}
		if s.Done.Condition == "all" {
			out.Terminated = all
		}
	}

	if s.MaxSteps > 0 && steps >= s.MaxSteps {
		out.Truncated = true
	}

	return out, nil
}
