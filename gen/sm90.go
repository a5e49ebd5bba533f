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
	"github.com/ajroetker/kernelgen/library"
	"github.com/ajroetker/kernelgen/manifest"
)

// GenerateSM90 emits the Hopper collective-builder GEMM families. Each
// family enumerates valid kernel/epilogue schedule pairs per tile and
// layout, so infeasible combinations never reach the manifest.
func GenerateSM90(m *manifest.Manifest, version ToolkitVersion) error {
	steps := []func(*manifest.Manifest, ToolkitVersion) error{
		generateSM90TensorOp16b,
		generateSM90TensorOp16bAlignx,
		generateSM90TensorOpTF32,
		generateSM90TensorOpInt8,
		generateSM90TensorOpFP8,
	}
	for _, step := range steps {
		if err := step(m, version); err != nil {
			return err
		}
	}
	return nil
}

// sm90Tiles expands a tile-shape table into cluster-annotated tile
// descriptions for one math instruction. Stage count zero lets the
// collective builder pick the deepest pipeline that fits.
func sm90Tiles(shapes [][3]int, inst library.MathInstruction, level int) []library.TileDescription {
	const minCC, maxCC = 90, 90
	if level <= sm90LevelPruned && len(shapes) > 3 {
		shapes = shapes[:3]
	}
	var tiles []library.TileDescription
	for _, shape := range shapes {
		for _, cluster := range sm90ClusterShapes(level) {
			tiles = append(tiles, library.NewClusterTileDescription(
				shape, 0, [3]int{4, 1, 1}, inst, minCC, maxCC, cluster))
		}
	}
	return tiles
}

// emitSM90Family runs the shared schedule-enumeration loop for one family:
// every (tile, layout, data-type) point gets its valid schedule pairs, and
// stream-K variants are registered under the stream-K tile scheduler.
func emitSM90Family(m *manifest.Manifest, version ToolkitVersion, aligned bool,
	level int, layouts [][3]LayoutAlign, tiles []library.TileDescription,
	dataTypes func(library.MathInstruction) []DataTypes3x) error {
	// The factory sees one tile per call, so the default-mode tile
	// reduction has to happen here.
	if m.DefaultMode() && len(tiles) > 1 {
		tiles = tiles[:1]
	}
	for _, tile := range tiles {
		for _, dt := range dataTypes(tile.MathInstruction) {
			for _, layout := range layouts {
				layout = fixAlignments(dt, layout, tmaAlignmentBits)
				schedules, streamK := validSchedules(tile, version, aligned, dt, level, layout)
				if len(schedules) == 0 {
					continue
				}
				if _, err := CreateGemmUniversal3xOperator(m, [][3]LayoutAlign{layout},
					[]library.TileDescription{tile}, dt, schedules, nil); err != nil {
					return err
				}
				if len(streamK) > 0 {
					if _, err := CreateGemmUniversal3xOperator(m, [][3]LayoutAlign{layout},
						[]library.TileDescription{tile}, dt, streamK,
						[]library.TileScheduler{library.TileSchedulerStreamK}); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

var sm9016bInstructions = []library.MathInstruction{
	{Shape: [3]int{64, 128, 16}, ElementA: library.F16, ElementB: library.F16, ElementAccumulator: library.F16,
		OpcodeClass: library.TensorOp, MathOperation: library.MultiplyAdd},
	{Shape: [3]int{64, 128, 16}, ElementA: library.F16, ElementB: library.F16, ElementAccumulator: library.F32,
		OpcodeClass: library.TensorOp, MathOperation: library.MultiplyAdd},
	{Shape: [3]int{64, 128, 16}, ElementA: library.BF16, ElementB: library.BF16, ElementAccumulator: library.F32,
		OpcodeClass: library.TensorOp, MathOperation: library.MultiplyAdd},
}

var sm9016bShapes = [][3]int{
	{128, 128, 64},
	{128, 256, 64},
	{256, 128, 64},
	{64, 128, 64},
	{128, 64, 64},
	{64, 64, 64},
}

func generateSM90TensorOp16b(m *manifest.Manifest, version ToolkitVersion) error {
	level := m.InstantiationLevel(sm90LevelPruned, sm90LevelDefault, sm90LevelExhaustive)

	layouts := [][3]LayoutAlign{
		{{library.ColumnMajor, 8}, {library.ColumnMajor, 8}, {library.ColumnMajor, 1}},
		{{library.ColumnMajor, 8}, {library.RowMajor, 8}, {library.ColumnMajor, 1}},
		{{library.RowMajor, 8}, {library.ColumnMajor, 8}, {library.ColumnMajor, 1}},
		{{library.RowMajor, 8}, {library.RowMajor, 8}, {library.ColumnMajor, 1}},
	}

	for _, inst := range sm9016bInstructions {
		tiles := sm90Tiles(sm9016bShapes, inst, level)
		err := emitSM90Family(m, version, true, level, layouts, tiles,
			func(inst library.MathInstruction) []DataTypes3x {
				return sm90DataTypes(inst, true)
			})
		if err != nil {
			return err
		}
	}
	return nil
}

func generateSM90TensorOp16bAlignx(m *manifest.Manifest, version ToolkitVersion) error {
	level := m.InstantiationLevel(sm90LevelPruned, sm90LevelAlignx, sm90LevelExhaustive)

	layouts := [][3]LayoutAlign{
		{{library.RowMajor, 4}, {library.ColumnMajor, 4}, {library.ColumnMajor, 1}},
		{{library.RowMajor, 4}, {library.RowMajor, 4}, {library.ColumnMajor, 1}},
		{{library.ColumnMajor, 4}, {library.ColumnMajor, 4}, {library.ColumnMajor, 1}},
		{{library.ColumnMajor, 4}, {library.RowMajor, 4}, {library.ColumnMajor, 1}},
		{{library.RowMajor, 2}, {library.ColumnMajor, 2}, {library.ColumnMajor, 1}},
		{{library.RowMajor, 2}, {library.RowMajor, 2}, {library.ColumnMajor, 1}},
		{{library.ColumnMajor, 2}, {library.ColumnMajor, 2}, {library.ColumnMajor, 1}},
		{{library.ColumnMajor, 2}, {library.RowMajor, 2}, {library.ColumnMajor, 1}},
	}

	for _, inst := range sm9016bInstructions {
		tiles := sm90Tiles(sm9016bShapes, inst, level)
		err := emitSM90Family(m, version, false, level, layouts, tiles,
			func(inst library.MathInstruction) []DataTypes3x {
				// Sub-TMA alignments cannot elide the source operand.
				return sm90DataTypes(inst, false)
			})
		if err != nil {
			return err
		}
	}
	return nil
}

func generateSM90TensorOpTF32(m *manifest.Manifest, version ToolkitVersion) error {
	level := m.InstantiationLevel(sm90LevelPruned, sm90LevelDefault, sm90LevelExhaustive)

	layouts := [][3]LayoutAlign{
		{{library.RowMajor, 4}, {library.ColumnMajor, 4}, {library.ColumnMajor, 1}},
		{{library.RowMajor, 4}, {library.RowMajor, 4}, {library.ColumnMajor, 1}},
		{{library.ColumnMajor, 4}, {library.ColumnMajor, 4}, {library.ColumnMajor, 1}},
		{{library.ColumnMajor, 4}, {library.RowMajor, 4}, {library.ColumnMajor, 1}},
	}

	inst := library.MathInstruction{
		Shape:              [3]int{64, 128, 8},
		ElementA:           library.TF32,
		ElementB:           library.TF32,
		ElementAccumulator: library.F32,
		OpcodeClass:        library.TensorOp,
		MathOperation:      library.MultiplyAdd,
	}

	shapes := [][3]int{
		{128, 128, 32},
		{128, 256, 32},
		{256, 128, 32},
		{64, 128, 32},
		{128, 64, 32},
		{64, 64, 32},
	}

	tiles := sm90Tiles(shapes, inst, level)
	return emitSM90Family(m, version, true, level, layouts, tiles,
		func(inst library.MathInstruction) []DataTypes3x {
			return sm90DataTypes(inst, true)
		})
}

func generateSM90TensorOpInt8(m *manifest.Manifest, version ToolkitVersion) error {
	level := m.InstantiationLevel(sm90LevelPruned, sm90LevelDefault, sm90LevelExhaustive)

	layouts := [][3]LayoutAlign{
		{{library.RowMajor, 16}, {library.ColumnMajor, 16}, {library.ColumnMajor, 1}},
	}

	instructions := []library.MathInstruction{
		{Shape: [3]int{64, 128, 32}, ElementA: library.S8, ElementB: library.S8, ElementAccumulator: library.S32,
			OpcodeClass: library.TensorOp, MathOperation: library.MultiplyAdd},
		{Shape: [3]int{64, 128, 32}, ElementA: library.U8, ElementB: library.U8, ElementAccumulator: library.S32,
			OpcodeClass: library.TensorOp, MathOperation: library.MultiplyAdd},
	}

	shapes := [][3]int{
		{128, 128, 128},
		{128, 256, 128},
		{256, 128, 128},
		{64, 128, 128},
		{128, 64, 128},
		{64, 64, 128},
	}

	for _, inst := range instructions {
		tiles := sm90Tiles(shapes, inst, level)
		err := emitSM90Family(m, version, true, level, layouts, tiles,
			func(inst library.MathInstruction) []DataTypes3x {
				return sm90DataTypes(inst, true)
			})
		if err != nil {
			return err
		}
	}
	return nil
}

func generateSM90TensorOpFP8(m *manifest.Manifest, version ToolkitVersion) error {
	level := m.InstantiationLevel(sm90LevelPruned, sm90LevelDefault, sm90LevelExhaustive)

	layouts := [][3]LayoutAlign{
		{{library.RowMajor, 16}, {library.ColumnMajor, 16}, {library.ColumnMajor, 1}},
	}

	var instructions []library.MathInstruction
	for _, pair := range [][2]library.DataType{
		{library.E4M3, library.E4M3},
		{library.E4M3, library.E5M2},
		{library.E5M2, library.E4M3},
		{library.E5M2, library.E5M2},
	} {
		instructions = append(instructions, library.MathInstruction{
			Shape:              [3]int{64, 128, 32},
			ElementA:           pair[0],
			ElementB:           pair[1],
			ElementAccumulator: library.F32,
			OpcodeClass:        library.TensorOp,
			MathOperation:      library.MultiplyAdd,
		})
	}

	shapes := [][3]int{
		{128, 128, 128},
		{128, 256, 128},
		{256, 128, 128},
		{64, 128, 128},
		{128, 64, 128},
		{64, 64, 128},
	}

	for _, inst := range instructions {
		tiles := sm90Tiles(shapes, inst, level)
		err := emitSM90Family(m, version, true, level, layouts, tiles,
			func(inst library.MathInstruction) []DataTypes3x {
				// FP8 kernels can write back in f32 or bf16 on top of
				// the usual accumulator-typed variants.
				variants := sm90DataTypes(inst, true)
				narrow := variants[0]
				narrow.C = library.BF16
				narrow.D = library.BF16
				return append(variants, narrow)
			})
		if err != nil {
			return err
		}
	}
	return nil
}
