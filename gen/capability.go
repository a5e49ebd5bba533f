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

package gen

import (
	"fmt"

	"github.com/ajroetker/kernelgen/manifest"
)

// TierGenerator describes one architecture tier: the compute capability it
// targets, the minimum toolkit version able to compile its kernels, and
// the function that populates a manifest with its operations.
type TierGenerator struct {
	Name       string
	MinCC      int
	MinVersion [3]int
	Generate   func(*manifest.Manifest, ToolkitVersion) error
}

// Tiers lists every architecture tier in ascending compute capability
// order. GenerateAll walks this table; tests assert its ordering.
var Tiers = []TierGenerator{
	{Name: "sm50", MinCC: 50, MinVersion: [3]int{0, 0, 0}, Generate: GenerateSM50},
	{Name: "sm70", MinCC: 70, MinVersion: [3]int{10, 1, 0}, Generate: GenerateSM70},
	{Name: "sm75", MinCC: 75, MinVersion: [3]int{10, 2, 0}, Generate: GenerateSM75},
	{Name: "sm80", MinCC: 80, MinVersion: [3]int{11, 0, 0}, Generate: GenerateSM80},
	{Name: "sm89", MinCC: 89, MinVersion: [3]int{12, 4, 0}, Generate: GenerateSM89},
	{Name: "sm90", MinCC: 90, MinVersion: [3]int{12, 0, 0}, Generate: GenerateSM90},
}

// GenerateAll runs every tier whose minimum toolkit version the given
// version satisfies, in table order. Tiers gated out by the toolkit
// version are logged at debug level and skipped; a generation error
// aborts the walk.
func GenerateAll(m *manifest.Manifest, version ToolkitVersion) error {
	log := m.Logger()
	for _, tier := range Tiers {
		if !version.Satisfies(tier.MinVersion[0], tier.MinVersion[1], tier.MinVersion[2]) {
			log.Debug().
				Str("tier", tier.Name).
				Str("toolkit", version.String()).
				Msgf("skipping tier, needs toolkit %d.%d.%d",
					tier.MinVersion[0], tier.MinVersion[1], tier.MinVersion[2])
			continue
		}
		if err := tier.Generate(m, version); err != nil {
			return fmt.Errorf("generating %s kernels: %w", tier.Name, err)
		}
	}
	return nil
}
