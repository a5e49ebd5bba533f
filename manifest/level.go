// Copyright 2025 kernelgen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package manifest

import "fmt"

// Level is the coarse instantiation-level knob controlling how aggressively
// the newest-tier generators explore schedule and cluster combinations.
type Level int

const (
	LevelPruned Level = iota
	LevelDefault
	LevelExhaustive
)

// ParseLevel maps the CLI spelling to a Level. An unrecognized spelling is
// a configuration error, not a silent default.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "pruned":
		return LevelPruned, nil
	case "", "default":
		return LevelDefault, nil
	case "exhaustive", "max":
		return LevelExhaustive, nil
	}
	return 0, fmt.Errorf("unknown instantiation level %q (valid: pruned, default, exhaustive)", s)
}

// InstantiationLevel maps the run's coarse level onto a generator-specific
// numeric level. Each generator supplies its own triple, so pruning can be
// tuned per data-type family without new plumbing.
func (m *Manifest) InstantiationLevel(pruned, dflt, exhaustive int) int {
	switch m.level {
	case LevelPruned:
		return pruned
	case LevelExhaustive:
		return exhaustive
	default:
		return dflt
	}
}
