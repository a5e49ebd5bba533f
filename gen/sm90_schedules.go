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

import "github.com/ajroetker/kernelgen/library"

// Instantiation levels for the Hopper generators. A tier generator maps
// the coarse pruned/default/exhaustive knob to one of these numeric
// levels; larger levels only ever add cluster shapes and schedule pairs.
const (
	sm90LevelPruned     = 100
	sm90LevelAlignx     = 101
	sm90LevelDefault    = 131
	sm90LevelExhaustive = 9999
)

// sm90ClusterShapes enumerates the thread-block cluster shapes explored
// at the given instantiation level. The list is monotone in the level.
func sm90ClusterShapes(level int) [][3]int {
	shapes := [][3]int{
		{1, 1, 1},
		{2, 1, 1},
	}
	if level >= sm90LevelAlignx {
		shapes = append(shapes, [3]int{1, 2, 1}, [3]int{2, 2, 1})
	}
	if level >= sm90LevelDefault {
		shapes = append(shapes, [3]int{4, 1, 1}, [3]int{1, 4, 1})
	}
	if level >= sm90LevelExhaustive {
		shapes = append(shapes, [3]int{4, 2, 1}, [3]int{2, 4, 1}, [3]int{4, 4, 1})
	}
	return shapes
}

// tmaAlignmentBits is the minimum operand access width for the TMA
// warp-specialized mainloops.
const tmaAlignmentBits = 128

// canUseTma reports whether both input operands satisfy the 128-bit
// access requirement of the TMA schedules under the given layout
// alignments.
func canUseTma(dt DataTypes3x, layout [3]LayoutAlign) bool {
	return layout[0].Alignment*dt.A.Bits() >= tmaAlignmentBits &&
		layout[1].Alignment*dt.B.Bits() >= tmaAlignmentBits
}

func isFP8(t library.DataType) bool {
	return t == library.E4M3 || t == library.E5M2
}

// validSchedules enumerates the kernel/epilogue schedule pairs that are
// buildable for one tile, data-type and layout combination, before any
// descriptor is constructed. The second return value lists the subset of
// pairs that additionally support the stream-K tile scheduler; it is
// empty when the toolkit predates stream-K support on Hopper.
func validSchedules(tile library.TileDescription, version ToolkitVersion,
	aligned bool, dt DataTypes3x, level int,
	layout [3]LayoutAlign) (schedules, streamK []library.SchedulePair) {

	if !aligned || !canUseTma(dt, layout) {
		// The cp.async mainloop is the only one without an operand
		// alignment requirement. It keeps the epilogue out of shared
		// memory and has no stream-K variant.
		return []library.SchedulePair{
			{Kernel: library.KernelCpAsync, Epilogue: library.EpilogueNoSmem},
		}, nil
	}

	cooperative := library.SchedulePair{
		Kernel:   library.KernelTmaCooperative,
		Epilogue: library.EpilogueTmaCooperative,
	}
	pingpong := library.SchedulePair{
		Kernel:   library.KernelTmaPingpong,
		Epilogue: library.EpilogueTma,
	}
	schedules = []library.SchedulePair{cooperative, pingpong}
	if level >= sm90LevelDefault {
		schedules = append(schedules,
			library.SchedulePair{Kernel: library.KernelTma, Epilogue: library.EpilogueTma},
			library.SchedulePair{Kernel: library.KernelScheduleAuto, Epilogue: library.EpilogueScheduleAuto},
		)
	}

	if isFP8(dt.A) || isFP8(dt.B) {
		fastCooperative := library.SchedulePair{
			Kernel:   library.KernelTmaCooperativeFP8FastAccum,
			Epilogue: library.EpilogueTmaCooperative,
		}
		schedules = append(schedules,
			fastCooperative,
			library.SchedulePair{Kernel: library.KernelTmaPingpongFP8FastAccum, Epilogue: library.EpilogueTma},
		)
		if level >= sm90LevelDefault {
			schedules = append(schedules,
				library.SchedulePair{Kernel: library.KernelTmaFP8FastAccum, Epilogue: library.EpilogueTma},
			)
		}
		if version.Satisfies(12, 1, 0) {
			streamK = []library.SchedulePair{cooperative, fastCooperative}
		}
		return schedules, streamK
	}

	if version.Satisfies(12, 1, 0) {
		streamK = []library.SchedulePair{cooperative}
	}
	return schedules, streamK
}

// fixAlignments narrows per-operand alignments so no access exceeds the
// given width in bits, and pins the C alignment to one element when the
// source operand is void (epilogues without a source read nothing).
func fixAlignments(dt DataTypes3x, layout [3]LayoutAlign, alignmentBits int) [3]LayoutAlign {
	elements := [3]library.DataType{dt.A, dt.B, dt.C}
	for i := range layout {
		if elements[i] == library.Void {
			layout[i].Alignment = 1
			continue
		}
		if limit := alignmentBits / elements[i].Bits(); layout[i].Alignment > limit {
			layout[i].Alignment = limit
		}
	}
	return layout
}

// sm90DataTypes builds the data-type variants explored for one math
// instruction: accumulator-typed output with and without a source
// operand, plus (for mixed precision) output in the input type.
func sm90DataTypes(inst library.MathInstruction, withVoid bool) []DataTypes3x {
	base := DataTypes3x{
		A:           inst.ElementA,
		B:           inst.ElementB,
		C:           inst.ElementAccumulator,
		D:           inst.ElementAccumulator,
		Accumulator: inst.ElementAccumulator,
		Epilogue:    inst.ElementAccumulator,
	}
	variants := []DataTypes3x{base}
	if withVoid {
		noSource := base
		noSource.C = library.Void
		variants = append(variants, noSource)
	}
	if inst.ElementA != inst.ElementAccumulator {
		mixed := base
		mixed.C = inst.ElementA
		mixed.D = inst.ElementA
		variants = append(variants, mixed)
		if withVoid {
			mixedNoSource := mixed
			mixedNoSource.C = library.Void
			variants = append(variants, mixedNoSource)
		}
	}
	return variants
}
