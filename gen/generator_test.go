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
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ajroetker/kernelgen/library"
	"github.com/ajroetker/kernelgen/manifest"
)

func mustVersion(t *testing.T, s string) ToolkitVersion {
	t.Helper()
	v, err := ParseToolkitVersion(s)
	if err != nil {
		t.Fatalf("ParseToolkitVersion(%q) error = %v", s, err)
	}
	return v
}

func TestTiersAscending(t *testing.T) {
	for i, tier := range Tiers {
		if want := fmt.Sprintf("sm%d", tier.MinCC); tier.Name != want {
			t.Errorf("Tiers[%d].Name = %q, want %q", i, tier.Name, want)
		}
		if i > 0 && Tiers[i-1].MinCC >= tier.MinCC {
			t.Errorf("Tiers[%d].MinCC = %d not above Tiers[%d].MinCC = %d",
				i, tier.MinCC, i-1, Tiers[i-1].MinCC)
		}
		if tier.Generate == nil {
			t.Errorf("Tiers[%d].Generate is nil", i)
		}
	}
}

func TestGenerateAllVersionGating(t *testing.T) {
	// 10.2.89 admits the sm50/sm70/sm75 tiers only.
	m := defaultManifest()
	if err := GenerateAll(m, mustVersion(t, "10.2.89")); err != nil {
		t.Fatalf("GenerateAll error = %v", err)
	}
	if m.Len() == 0 {
		t.Fatal("GenerateAll produced no kernels at 10.2.89")
	}
	for _, op := range m.Operations() {
		if op.MinComputeCapability() >= 80 {
			name, _ := op.ProceduralName()
			t.Errorf("kernel %s requires cc %d, gated out at toolkit 10.2.89",
				name, op.MinComputeCapability())
		}
	}

	// 11.0 adds Ampere but not Ada or Hopper.
	m = defaultManifest()
	if err := GenerateAll(m, mustVersion(t, "11.0.0")); err != nil {
		t.Fatalf("GenerateAll error = %v", err)
	}
	var sawAmpere bool
	for _, op := range m.Operations() {
		switch op.MinComputeCapability() {
		case 80:
			sawAmpere = true
		case 89, 90:
			name, _ := op.ProceduralName()
			t.Errorf("kernel %s requires cc %d, gated out at toolkit 11.0.0",
				name, op.MinComputeCapability())
		}
	}
	if !sawAmpere {
		t.Error("no Ampere kernels at toolkit 11.0.0")
	}
}

func TestGenerateAllIdempotent(t *testing.T) {
	version := mustVersion(t, "12.4")

	run := func() []string {
		m := manifest.New(manifest.Options{Level: manifest.LevelDefault, Logger: zerolog.Nop()})
		if err := GenerateAll(m, version); err != nil {
			t.Fatalf("GenerateAll error = %v", err)
		}
		return m.Names()
	}

	first, second := run(), run()
	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("name %d differs between runs: %q vs %q", i, first[i], second[i])
		}
	}
}

// The full catalog walk doubles as the injectivity check: a name collision
// anywhere fails the append.
func TestGenerateAllFullCatalog(t *testing.T) {
	m := manifest.New(manifest.Options{
		KernelFilter: []string{"*"},
		Level:        manifest.LevelPruned,
		Logger:       zerolog.Nop(),
	})
	if err := GenerateAll(m, mustVersion(t, "12.4")); err != nil {
		t.Fatalf("GenerateAll error = %v", err)
	}

	counts := m.CountByKind()
	for _, kind := range []library.OperationKind{
		library.OpGemm, library.OpConv2d, library.OpConv3d,
		library.OpRankK, library.OpTrmm, library.OpSymm,
	} {
		if counts[kind] == 0 {
			name, _ := kind.Name()
			t.Errorf("full catalog has no %s kernels", name)
		}
	}

	for _, op := range m.Operations() {
		if op.MinComputeCapability() > op.MaxComputeCapability() {
			name, _ := op.ProceduralName()
			t.Errorf("kernel %s has inverted capability window [%d, %d]",
				name, op.MinComputeCapability(), op.MaxComputeCapability())
		}
	}
}

func TestGenerateSM70MixedVariants(t *testing.T) {
	m := filterManifest()
	if err := GenerateSM70(m, mustVersion(t, "12.4")); err != nil {
		t.Fatalf("GenerateSM70 error = %v", err)
	}

	var sawMixed, sawSame bool
	for _, name := range m.Names() {
		if strings.Contains(name, "f16_s884gemm_f16") {
			sawMixed = true
		}
		if strings.Contains(name, "_h884gemm_") {
			sawSame = true
		}
		// The f16-accumulator instruction must not grow a redundant
		// f16-output variant.
		if strings.Contains(name, "f16_h884gemm") || strings.Contains(name, "h884gemm_f16") {
			t.Errorf("kernel %s is a mixed variant of a same-type instruction", name)
		}
	}
	if !sawMixed {
		t.Error("no f16-output variant of the f32-accumulator instruction")
	}
	if !sawSame {
		t.Error("no f16-accumulator kernels")
	}
}

func TestGenerateSM80MixedInputNames(t *testing.T) {
	// The upcast families vary only the narrow-side operand element, so
	// the names must spell out both operands to stay distinct.
	m := filterManifest(
		"cutlass_tensorop_s16816gemm_s8_*",
		"cutlass_tensorop_h16816gemm_f16_s8_*",
	)
	if err := GenerateSM80(m, mustVersion(t, "12.4")); err != nil {
		t.Fatalf("GenerateSM80 error = %v", err)
	}

	var sawF16, sawBF16, sawNarrowB bool
	for _, name := range m.Names() {
		switch {
		case strings.Contains(name, "s16816gemm_s8_f16_"):
			sawF16 = true
		case strings.Contains(name, "s16816gemm_s8_bf16_"):
			sawBF16 = true
		case strings.Contains(name, "h16816gemm_f16_s8_"):
			sawNarrowB = true
		}
	}
	if !sawF16 {
		t.Error("no s8/f16 upcast kernels")
	}
	if !sawBF16 {
		t.Error("no s8/bf16 upcast kernels")
	}
	if !sawNarrowB {
		t.Error("no f16/s8 narrow-B upcast kernels")
	}
}

func TestGenerateSM80SymmAlignmentVariants(t *testing.T) {
	// Every entry of the alignment axis must survive under a filter with
	// its own name.
	m := filterManifest("cutlass_tensorop_s1688symm_*")
	if err := GenerateSM80(m, mustVersion(t, "12.4")); err != nil {
		t.Fatalf("GenerateSM80 error = %v", err)
	}
	if m.Len() == 0 {
		t.Fatal("no symm kernels generated")
	}
	seen := map[string]bool{}
	for _, name := range m.Names() {
		seen[name[strings.LastIndex(name, "_")+1:]] = true
	}
	for _, want := range []string{"align1", "align2", "align4"} {
		if !seen[want] {
			t.Errorf("no symm kernels with %s", want)
		}
	}
}

func TestGenerateSM89MixedOperandNames(t *testing.T) {
	m := filterManifest()
	if err := GenerateSM89(m, mustVersion(t, "12.4")); err != nil {
		t.Fatalf("GenerateSM89 error = %v", err)
	}

	var sawE4M3E5M2, sawE5M2E4M3, sawFixedChannels bool
	for _, name := range m.Names() {
		if strings.Contains(name, "_e4m3_e5m2_") {
			sawE4M3E5M2 = true
		}
		if strings.Contains(name, "_e5m2_e4m3_") {
			sawE5M2E4M3 = true
		}
		if strings.Contains(name, "_fixed_channels_") {
			sawFixedChannels = true
		}
	}
	if !sawE4M3E5M2 {
		t.Error("no e4m3/e5m2 kernels")
	}
	if !sawE5M2E4M3 {
		t.Error("no e5m2/e4m3 kernels")
	}
	if !sawFixedChannels {
		t.Error("no fixed-channel convolution kernels")
	}
}

func TestGenerateSM80ChannelConvolutions(t *testing.T) {
	m := filterManifest("*_fixed_channels_*", "*_few_channels_*")
	if err := GenerateSM80(m, mustVersion(t, "12.4")); err != nil {
		t.Fatalf("GenerateSM80 error = %v", err)
	}

	var fixed, few int
	for _, op := range m.Operations() {
		conv, ok := op.(*library.ConvOperation)
		if !ok {
			name, _ := op.ProceduralName()
			t.Fatalf("kernel %s is not a convolution", name)
		}
		switch conv.IteratorAlgorithm {
		case library.IteratorFixedChannels:
			fixed++
		case library.IteratorFewChannels:
			few++
		}
		if conv.ConvKind != library.ConvFprop {
			t.Errorf("ConvKind = %v, want fprop only", conv.ConvKind)
		}
	}
	if fixed == 0 {
		t.Error("no fixed-channel convolutions")
	}
	if few == 0 {
		t.Error("no few-channel convolutions")
	}
}

func TestGenerateSM75NarrowOutputAlignment(t *testing.T) {
	// Retain only the clamped integer kernels, which carry the
	// post-corrected output alignment.
	m := filterManifest("cutlass_tensorop_s8_*", "cutlass_tensorop_u8_*")
	if err := GenerateSM75(m, mustVersion(t, "12.4")); err != nil {
		t.Fatalf("GenerateSM75 error = %v", err)
	}
	if m.Len() == 0 {
		t.Fatal("no clamped integer kernels generated")
	}
	for _, op := range m.Operations() {
		gemm, ok := op.(*library.GemmOperation)
		if !ok {
			continue
		}
		want := 8
		if gemm.Tile.ThreadblockShape[1] >= 128 {
			want = 16
		}
		if gemm.C.Alignment != want {
			name, _ := gemm.ProceduralName()
			t.Errorf("kernel %s C.Alignment = %d, want %d", name, gemm.C.Alignment, want)
		}
	}
}

func TestGenerateSM89OutputAlignment(t *testing.T) {
	m := filterManifest()
	if err := GenerateSM89(m, mustVersion(t, "12.4")); err != nil {
		t.Fatalf("GenerateSM89 error = %v", err)
	}
	if m.Len() == 0 {
		t.Fatal("no Ada kernels generated")
	}
	for _, op := range m.Operations() {
		gemm, ok := op.(*library.GemmOperation)
		if !ok {
			continue
		}
		if got := gemm.C.Alignment; got != wideOutputAlignment(gemm.Tile) {
			name, _ := gemm.ProceduralName()
			t.Errorf("kernel %s C.Alignment = %d, want %d",
				name, got, wideOutputAlignment(gemm.Tile))
		}
	}
}

func TestWideOutputAlignment(t *testing.T) {
	tests := []struct {
		shape [3]int
		want  int
	}{
		{[3]int{256, 128, 64}, 16},
		{[3]int{128, 256, 128}, 16},
		{[3]int{32, 256, 64}, 8},
		{[3]int{32, 128, 128}, 8},
		{[3]int{128, 64, 64}, 8},
		{[3]int{64, 64, 64}, 8},
	}
	for _, tt := range tests {
		tile := library.TileDescription{ThreadblockShape: tt.shape}
		if got := wideOutputAlignment(tile); got != tt.want {
			t.Errorf("wideOutputAlignment(%v) = %d, want %d", tt.shape, got, tt.want)
		}
	}
}
