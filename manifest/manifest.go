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

// Package manifest implements the append-only registry of accepted kernel
// variants for one generation run. The manifest applies the selection
// policy (compute-capability window, kernel-name filter) at append time and
// preserves insertion order, so two runs over the same generator sequence
// produce the same ordered catalog.
package manifest

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/ajroetker/kernelgen/library"
)

// Options configures a generation run.
type Options struct {
	// ComputeCapabilities lists the build targets. An operation is retained
	// only if some listed capability falls inside its feasibility window.
	ComputeCapabilities []int

	// KernelFilter holds wildcard patterns selecting kernels by procedural
	// name. An empty list puts the manifest in default mode, where
	// factories reduce tile and alignment axes to their canonical first
	// entries.
	KernelFilter []string

	// IgnoreKernels holds wildcard patterns excluding kernels even when
	// they match the filter.
	IgnoreKernels []string

	// DisableCCFilter retains operations regardless of the capability
	// window. Used when enumerating the full catalog for inspection.
	DisableCCFilter bool

	// Level controls schedule/cluster exploration on the newest tiers.
	Level Level

	Logger zerolog.Logger
}

// Manifest accumulates the accepted operations of one run. It is not safe
// for concurrent appends; generation is a strictly sequential fold.
type Manifest struct {
	computeCapabilities []int
	filterByCC          bool
	filters             []string
	ignores             []string
	level               Level
	log                 zerolog.Logger

	operations []library.Operation
	byName     map[string]library.Operation
}

// New constructs an empty manifest for one generation run.
func New(opts Options) *Manifest {
	return &Manifest{
		computeCapabilities: opts.ComputeCapabilities,
		filterByCC:          !opts.DisableCCFilter,
		filters:             opts.KernelFilter,
		ignores:             opts.IgnoreKernels,
		level:               opts.Level,
		log:                 opts.Logger,
		byName:              make(map[string]library.Operation),
	}
}

// DefaultMode reports whether no kernel filter is set. Factories consult
// this to decide whether to reduce tile/alignment axes to their first
// entries.
func (m *Manifest) DefaultMode() bool {
	return len(m.filters) == 0
}

// Append derives the operation's procedural name and either stores it or
// discards it per the selection policy. A name that cannot be derived or
// that collides with an already-stored operation is a defect in a factory
// or a missing naming axis, and is returned as an error.
func (m *Manifest) Append(op library.Operation) error {
	name, err := op.ProceduralName()
	if err != nil {
		return fmt.Errorf("append: %w", err)
	}
	minCC, maxCC := op.MinComputeCapability(), op.MaxComputeCapability()
	if minCC <= 0 || maxCC <= 0 || minCC > maxCC {
		return fmt.Errorf("append %s: invalid compute capability window [%d, %d]", name, minCC, maxCC)
	}

	if m.filterByCC && len(m.computeCapabilities) > 0 && !m.targetInWindow(minCC, maxCC) {
		m.log.Debug().Str("kernel", name).Msg("discard: no selected capability in window")
		return nil
	}
	if !m.selectedByFilter(name) {
		m.log.Debug().Str("kernel", name).Msg("discard: kernel filter")
		return nil
	}

	if _, ok := m.byName[name]; ok {
		return fmt.Errorf("append: duplicate procedural name %q", name)
	}
	m.byName[name] = op
	m.operations = append(m.operations, op)
	m.log.Debug().Str("kernel", name).Int("min_cc", minCC).Int("max_cc", maxCC).Msg("append")
	return nil
}

func (m *Manifest) targetInWindow(minCC, maxCC int) bool {
	for _, cc := range m.computeCapabilities {
		if minCC <= cc && cc <= maxCC {
			return true
		}
	}
	return false
}

func (m *Manifest) selectedByFilter(name string) bool {
	for _, pattern := range m.ignores {
		if wildcardMatch(pattern, name) {
			return false
		}
	}
	if len(m.filters) == 0 {
		return true
	}
	for _, pattern := range m.filters {
		if wildcardMatch(pattern, name) {
			return true
		}
	}
	return false
}

// Len returns the number of accepted operations.
func (m *Manifest) Len() int { return len(m.operations) }

// Logger returns the logger the manifest was configured with.
func (m *Manifest) Logger() zerolog.Logger { return m.log }

// Operations returns the accepted operations in insertion order. The
// returned slice is the manifest's own; callers iterate, they do not
// mutate.
func (m *Manifest) Operations() []library.Operation { return m.operations }

// Names returns the accepted procedural names in insertion order.
func (m *Manifest) Names() []string {
	return lo.Map(m.operations, func(op library.Operation, _ int) string {
		name, _ := op.ProceduralName()
		return name
	})
}

// CountByKind returns how many accepted operations each family contributed.
func (m *Manifest) CountByKind() map[library.OperationKind]int {
	return lo.CountValuesBy(m.operations, library.Operation.OperationKind)
}
