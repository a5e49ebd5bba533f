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

// Package gen holds the combination generators: one family of functions
// per hardware tier that expands parameter axes into operation descriptors
// and appends them to a manifest.
package gen

import (
	"fmt"
	"strconv"
	"strings"
)

// Toolkit version components assumed when the version string leaves them
// unspecified. These are a baseline, not zeros: "11" parses as 11.0.132.
const (
	baselineMajor = 11
	baselineMinor = 0
	baselinePatch = 132
)

// ToolkitVersion is a parsed dotted toolkit version of up to three numeric
// components.
type ToolkitVersion struct {
	Major int
	Minor int
	Patch int
}

// ParseToolkitVersion parses a 1-3 component dotted version string.
// Unspecified trailing components default to the baseline components, and
// an empty string is the full baseline. A non-numeric or out-of-range
// component is an error.
func ParseToolkitVersion(s string) (ToolkitVersion, error) {
	v := ToolkitVersion{Major: baselineMajor, Minor: baselineMinor, Patch: baselinePatch}
	if s == "" {
		return v, nil
	}
	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return ToolkitVersion{}, fmt.Errorf("toolkit version %q has %d components, want at most 3", s, len(parts))
	}
	fields := []*int{&v.Major, &v.Minor, &v.Patch}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return ToolkitVersion{}, fmt.Errorf("toolkit version %q: bad component %q", s, part)
		}
		*fields[i] = n
	}
	return v, nil
}

// Satisfies reports whether the version is at least major.minor.patch,
// compared component-wise.
func (v ToolkitVersion) Satisfies(major, minor, patch int) bool {
	if v.Major != major {
		return v.Major > major
	}
	if v.Minor != minor {
		return v.Minor > minor
	}
	return v.Patch >= patch
}

func (v ToolkitVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
