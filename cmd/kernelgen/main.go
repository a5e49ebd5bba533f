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

// Command kernelgen enumerates the kernel catalog for the selected
// architectures and toolkit version and writes the accepted kernel names.
package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ajroetker/kernelgen/gen"
	"github.com/ajroetker/kernelgen/library"
	"github.com/ajroetker/kernelgen/manifest"
)

type options struct {
	architectures      string
	cudaVersion        string
	kernels            string
	ignoreKernels      string
	instantiationLevel string
	filterByCC         bool
	selectedKernelList string
	logLevel           string
}

func main() {
	opts := options{filterByCC: true}

	cmd := &cobra.Command{
		Use:           "kernelgen",
		Short:         "Enumerate the kernel catalog for the selected GPU architectures",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.architectures, "architectures", "", "semicolon-separated compute capabilities (e.g. \"80;90\"); empty selects all")
	flags.StringVar(&opts.cudaVersion, "cuda-version", "", "toolkit version as 1-3 dotted components (default 11.0.132)")
	flags.StringVar(&opts.kernels, "kernels", "", "comma-separated kernel name patterns to generate; * matches all")
	flags.StringVar(&opts.ignoreKernels, "ignore-kernels", "", "comma-separated kernel name patterns to exclude")
	flags.StringVar(&opts.instantiationLevel, "instantiation-level", "", "schedule exploration level: pruned, default, or exhaustive")
	flags.BoolVar(&opts.filterByCC, "filter-by-cc", true, "discard kernels outside the selected compute capabilities")
	flags.StringVar(&opts.selectedKernelList, "selected-kernel-list", "", "write the accepted kernel names to this file")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug prints one line per accepted kernel)")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "kernelgen:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, opts options) error {
	logLevel, err := zerolog.ParseLevel(opts.logLevel)
	if err != nil {
		return fmt.Errorf("parsing --log-level: %w", err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(logLevel).With().Timestamp().Logger()

	version, err := gen.ParseToolkitVersion(opts.cudaVersion)
	if err != nil {
		return fmt.Errorf("parsing --cuda-version: %w", err)
	}

	level, err := manifest.ParseLevel(opts.instantiationLevel)
	if err != nil {
		return fmt.Errorf("parsing --instantiation-level: %w", err)
	}

	architectures, err := parseArchitectures(opts.architectures)
	if err != nil {
		return fmt.Errorf("parsing --architectures: %w", err)
	}

	m := manifest.New(manifest.Options{
		ComputeCapabilities: architectures,
		KernelFilter:        splitPatterns(opts.kernels),
		IgnoreKernels:       splitPatterns(opts.ignoreKernels),
		DisableCCFilter:     !opts.filterByCC,
		Level:               level,
		Logger:              logger,
	})

	if err := gen.GenerateAll(m, version); err != nil {
		return err
	}

	if opts.selectedKernelList != "" {
		names := strings.Join(m.Names(), "\n") + "\n"
		if err := os.WriteFile(opts.selectedKernelList, []byte(names), 0o644); err != nil {
			return fmt.Errorf("writing --selected-kernel-list: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d kernels\n", m.Len())
	counts := m.CountByKind()
	kinds := make([]library.OperationKind, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, kind := range kinds {
		name, err := kind.Name()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s: %d\n", name, counts[kind])
	}
	return nil
}

// parseArchitectures splits the original semicolon-separated compute
// capability list; commas are accepted too.
func parseArchitectures(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' })
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		cc, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("invalid compute capability %q", f)
		}
		out = append(out, cc)
	}
	return out, nil
}

func splitPatterns(s string) []string {
	if s == "" {
		return nil
	}
	fields := strings.Split(s, ",")
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
