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

// tileSpec is a compact row in a tile table: threadblock shape, stage
// count and warp arrangement. The math instruction and CC window are
// shared per table and filled in by expandTiles.
type tileSpec struct {
	shape  [3]int
	stages int
	warps  [3]int
}

func expandTiles(specs []tileSpec, inst library.MathInstruction, minCC, maxCC int) []library.TileDescription {
	tiles := make([]library.TileDescription, len(specs))
	for i, s := range specs {
		tiles[i] = library.NewTileDescription(s.shape, s.stages, s.warps, inst, minCC, maxCC)
	}
	return tiles
}

// GenerateSM80 emits the Ampere families: 16x8x16 F16/BF16 GEMM with
// grouped and convolution variants, TF32 16x8x8 GEMM and BLAS3 updates,
// mixed-input upcast GEMM, 16x8x32 integer GEMM, and the SIMT fallbacks.
func GenerateSM80(m *manifest.Manifest, version ToolkitVersion) error {
	steps := []func(*manifest.Manifest) error{
		generateSM80TensorOp16816,
		generateSM80TensorOp1688,
		generateSM80TensorOp1688RankK,
		generateSM80TensorOp1688Trmm,
		generateSM80TensorOp1688Symm,
		generateSM80MixedInputUpcastA,
		generateSM80MixedInputUpcastB,
		generateSM80TensorOp16832TN,
		generateSM80SimtF32,
		generateSM80SimtF64,
	}
	for _, step := range steps {
		if err := step(m); err != nil {
			return err
		}
	}
	return nil
}

func generateSM80TensorOp16816(m *manifest.Manifest) error {
	const minCC, maxCC = 80, 1024

	instructions := []library.MathInstruction{
		{
			Shape:              [3]int{16, 8, 16},
			ElementA:           library.F16,
			ElementB:           library.F16,
			ElementAccumulator: library.F32,
			OpcodeClass:        library.TensorOp,
			MathOperation:      library.MultiplyAdd,
		},
		{
			Shape:              [3]int{16, 8, 16},
			ElementA:           library.F16,
			ElementB:           library.F16,
			ElementAccumulator: library.F16,
			OpcodeClass:        library.TensorOp,
			MathOperation:      library.MultiplyAdd,
		},
		{
			Shape:              [3]int{16, 8, 16},
			ElementA:           library.BF16,
			ElementB:           library.BF16,
			ElementAccumulator: library.F32,
			OpcodeClass:        library.TensorOp,
			MathOperation:      library.MultiplyAdd,
		},
	}

	specs := []tileSpec{
		{[3]int{256, 128, 32}, 3, [3]int{4, 2, 1}},
		{[3]int{128, 256, 32}, 3, [3]int{2, 4, 1}},
		{[3]int{256, 64, 32}, 3, [3]int{4, 1, 1}},
		{[3]int{256, 64, 32}, 4, [3]int{4, 1, 1}},
		{[3]int{64, 256, 32}, 4, [3]int{1, 4, 1}},
		{[3]int{128, 128, 32}, 3, [3]int{2, 2, 1}},
		{[3]int{128, 128, 32}, 4, [3]int{2, 2, 1}},
		{[3]int{128, 128, 32}, 5, [3]int{2, 2, 1}},
		{[3]int{128, 64, 32}, 6, [3]int{2, 2, 1}},
		{[3]int{64, 128, 32}, 6, [3]int{2, 2, 1}},
		{[3]int{64, 64, 32}, 10, [3]int{2, 2, 1}},
		{[3]int{256, 128, 64}, 3, [3]int{4, 2, 1}},
		{[3]int{128, 256, 64}, 3, [3]int{2, 4, 1}},
		{[3]int{256, 64, 64}, 4, [3]int{4, 1, 1}},
		{[3]int{64, 256, 64}, 4, [3]int{1, 4, 1}},
		{[3]int{128, 128, 64}, 4, [3]int{2, 2, 1}},
		{[3]int{256, 64, 64}, 3, [3]int{4, 1, 1}},
		{[3]int{64, 256, 64}, 3, [3]int{1, 4, 1}},
		{[3]int{128, 128, 64}, 3, [3]int{2, 2, 1}},
		{[3]int{128, 64, 64}, 3, [3]int{2, 2, 1}},
		{[3]int{64, 128, 64}, 3, [3]int{2, 2, 1}},
		{[3]int{64, 64, 64}, 5, [3]int{2, 2, 1}},
	}

	alignments := alignmentsOf(8, 4, 2)

	for _, inst := range instructions {
		tiles := expandTiles(specs, inst, minCC, maxCC)

		emit := func(dt GemmDataType, grouped bool) error {
			if _, err := CreateGemmOperator(m, gemmLayoutsNT, tiles, dt, alignments, nil,
				library.LinearCombination, library.SwizzleIdentity8); err != nil {
				return err
			}
			if grouped {
				if _, err := CreateGemmGroupedOperator(m, gemmLayoutsNT, tiles, dt, alignments, nil,
					library.LinearCombination, library.SwizzleIdentity8); err != nil {
					return err
				}
			}
			if _, err := CreateConv2dOperator(m, convLayoutNHWC, tiles, dt, alignments,
				allConvKinds, library.LinearCombination, library.SwizzleIdentity4); err != nil {
				return err
			}
			if _, err := CreateConv2dFixedChannelsOperator(m, convLayoutNHWC, tiles, dt,
				[]int{4, 8}, library.LinearCombination, library.SwizzleIdentity4); err != nil {
				return err
			}
			if _, err := CreateConv3dOperator(m, library.TensorNDHWC, tiles, dt, 8,
				allConvKinds, library.LinearCombination, library.SwizzleIdentity1); err != nil {
				return err
			}
			return nil
		}

		dt := GemmDataType{
			A:        inst.ElementA,
			B:        inst.ElementB,
			C:        inst.ElementAccumulator,
			Epilogue: inst.ElementAccumulator,
		}
		if err := emit(dt, true); err != nil {
			return err
		}

		if inst.ElementA != inst.ElementAccumulator {
			mixed := GemmDataType{
				A:        inst.ElementA,
				B:        inst.ElementB,
				C:        inst.ElementA,
				Epilogue: inst.ElementAccumulator,
			}
			if err := emit(mixed, false); err != nil {
				return err
			}
		}
	}
	return nil
}

var sm80TF32Instruction = library.MathInstruction{
	Shape:              [3]int{16, 8, 8},
	ElementA:           library.TF32,
	ElementB:           library.TF32,
	ElementAccumulator: library.F32,
	OpcodeClass:        library.TensorOp,
	MathOperation:      library.MultiplyAdd,
}

var sm80FastF32Instruction = library.MathInstruction{
	Shape:              [3]int{16, 8, 8},
	ElementA:           library.F32,
	ElementB:           library.F32,
	ElementAccumulator: library.F32,
	OpcodeClass:        library.TensorOp,
	MathOperation:      library.MultiplyAddFastF32,
}

func generateSM80TensorOp1688(m *manifest.Manifest) error {
	const minCC, maxCC = 80, 1024

	specs := []tileSpec{
		{[3]int{256, 128, 16}, 3, [3]int{4, 2, 1}},
		{[3]int{128, 256, 16}, 3, [3]int{2, 4, 1}},
		{[3]int{256, 64, 16}, 4, [3]int{4, 1, 1}},
		{[3]int{64, 256, 16}, 4, [3]int{1, 4, 1}},
		{[3]int{128, 128, 16}, 5, [3]int{2, 2, 1}},
		{[3]int{128, 128, 16}, 4, [3]int{2, 2, 1}},
		{[3]int{128, 128, 16}, 3, [3]int{2, 2, 1}},
		{[3]int{128, 64, 16}, 6, [3]int{2, 2, 1}},
		{[3]int{64, 128, 16}, 6, [3]int{2, 2, 1}},
		{[3]int{64, 64, 16}, 10, [3]int{2, 2, 1}},
		{[3]int{256, 128, 32}, 3, [3]int{4, 2, 1}},
		{[3]int{128, 256, 32}, 3, [3]int{2, 4, 1}},
		{[3]int{256, 64, 32}, 4, [3]int{4, 1, 1}},
		{[3]int{64, 256, 32}, 4, [3]int{1, 4, 1}},
		{[3]int{128, 128, 32}, 4, [3]int{2, 2, 1}},
		{[3]int{128, 128, 32}, 3, [3]int{2, 2, 1}},
		{[3]int{128, 64, 32}, 3, [3]int{2, 2, 1}},
		{[3]int{64, 128, 32}, 3, [3]int{2, 2, 1}},
		{[3]int{64, 64, 32}, 5, [3]int{2, 2, 1}},
	}

	inst := sm80TF32Instruction
	tiles := expandTiles(specs, inst, minCC, maxCC)
	alignments := alignmentsOf(4, 2, 1)

	dt := GemmDataType{A: inst.ElementA, B: inst.ElementB, C: inst.ElementAccumulator, Epilogue: inst.ElementAccumulator}
	mixed := GemmDataType{A: inst.ElementA, B: inst.ElementB, C: inst.ElementA, Epilogue: inst.ElementAccumulator}

	for _, d := range []GemmDataType{dt, mixed} {
		if _, err := CreateGemmOperator(m, gemmLayoutsNT, tiles, d, alignments, nil,
			library.LinearCombination, library.SwizzleIdentity8); err != nil {
			return err
		}
		if _, err := CreateConv2dOperator(m, convLayoutNHWC, tiles, d, alignments,
			allConvKinds, library.LinearCombination, library.SwizzleIdentity4); err != nil {
			return err
		}
	}
	return nil
}

// sm80Blas3Specs is the pruned tile table shared by the TF32 rank-k and
// symm generators.
var sm80Blas3Specs = []tileSpec{
	{[3]int{256, 128, 16}, 3, [3]int{4, 2, 1}},
	{[3]int{128, 256, 16}, 3, [3]int{2, 4, 1}},
	{[3]int{128, 128, 16}, 5, [3]int{2, 2, 1}},
	{[3]int{256, 128, 32}, 3, [3]int{4, 2, 1}},
	{[3]int{128, 256, 32}, 3, [3]int{2, 4, 1}},
	{[3]int{128, 128, 32}, 4, [3]int{2, 2, 1}},
}

func generateSM80TensorOp1688RankK(m *manifest.Manifest) error {
	const minCC, maxCC = 80, 1024

	layouts := [][2]library.LayoutType{
		{library.ColumnMajor, library.ColumnMajor},
		{library.RowMajor, library.ColumnMajor},
	}
	fills := []library.FillMode{library.FillLower, library.FillUpper}
	alignments := []int{1, 2, 4}

	for _, inst := range []library.MathInstruction{sm80TF32Instruction, sm80FastF32Instruction} {
		tiles := expandTiles(sm80Blas3Specs, inst, minCC, maxCC)
		dt := RankKDataType{A: library.F32, C: library.F32, Epilogue: library.F32}
		if _, err := CreateRankKOperator(m, layouts, fills, tiles, dt, alignments,
			library.BlasSymmetric, library.LinearCombination, library.SwizzleIdentity8); err != nil {
			return err
		}
	}
	return nil
}

func generateSM80TensorOp1688Trmm(m *manifest.Manifest) error {
	const minCC, maxCC = 80, 1024

	layouts := [][3]library.LayoutType{
		{library.ColumnMajor, library.ColumnMajor, library.ColumnMajor},
		{library.RowMajor, library.ColumnMajor, library.ColumnMajor},
	}
	sides := []library.SideMode{library.SideLeft, library.SideRight}
	fills := []library.FillMode{library.FillLower, library.FillUpper}
	diags := []library.DiagType{library.DiagNonUnit, library.DiagUnit}
	alignments := []int{1, 2, 4}

	specs := []tileSpec{
		{[3]int{256, 128, 16}, 3, [3]int{4, 2, 1}},
		{[3]int{128, 256, 16}, 3, [3]int{2, 4, 1}},
		{[3]int{256, 64, 16}, 4, [3]int{4, 1, 1}},
		{[3]int{64, 256, 16}, 4, [3]int{1, 4, 1}},
		{[3]int{128, 128, 16}, 5, [3]int{2, 2, 1}},
		{[3]int{128, 64, 16}, 6, [3]int{2, 2, 1}},
		{[3]int{64, 64, 16}, 10, [3]int{2, 2, 1}},
		{[3]int{256, 128, 32}, 3, [3]int{4, 2, 1}},
		{[3]int{128, 256, 32}, 3, [3]int{2, 4, 1}},
		{[3]int{128, 128, 32}, 4, [3]int{2, 2, 1}},
	}

	for _, inst := range []library.MathInstruction{sm80TF32Instruction, sm80FastF32Instruction} {
		tiles := expandTiles(specs, inst, minCC, maxCC)
		dt := GemmDataType{A: library.F32, B: library.F32, C: library.F32, Epilogue: library.F32}
		if _, err := CreateTrmmOperator(m, layouts, sides, fills, diags, tiles, dt, alignments,
			nil, library.LinearCombination, library.SwizzleIdentity8); err != nil {
			return err
		}
	}
	return nil
}

func generateSM80TensorOp1688Symm(m *manifest.Manifest) error {
	const minCC, maxCC = 80, 1024

	layouts := [][2]library.LayoutType{
		{library.ColumnMajor, library.ColumnMajor},
	}
	sides := []library.SideMode{library.SideLeft, library.SideRight}
	fills := []library.FillMode{library.FillLower, library.FillUpper}
	alignments := []int{1, 2, 4}

	for _, inst := range []library.MathInstruction{sm80TF32Instruction, sm80FastF32Instruction} {
		tiles := expandTiles(sm80Blas3Specs, inst, minCC, maxCC)
		dt := GemmDataType{A: library.F32, B: library.F32, C: library.F32, Epilogue: library.F32}
		if _, err := CreateSymmOperator(m, layouts, sides, fills, tiles, dt, alignments,
			library.BlasSymmetric, library.LinearCombination, library.SwizzleIdentity8); err != nil {
			return err
		}
	}
	return nil
}

var layoutsTN = [][3]library.LayoutType{
	{library.RowMajor, library.ColumnMajor, library.ColumnMajor},
}

func generateSM80MixedInputUpcastA(m *manifest.Manifest) error {
	const minCC, maxCC = 80, 1024

	instructions := []library.MathInstruction{
		{Shape: [3]int{16, 8, 16}, ElementA: library.S8, ElementB: library.F16, ElementAccumulator: library.F32,
			OpcodeClass: library.TensorOp, MathOperation: library.MultiplyAddMixedInputUpcast},
		{Shape: [3]int{16, 8, 16}, ElementA: library.U8, ElementB: library.F16, ElementAccumulator: library.F32,
			OpcodeClass: library.TensorOp, MathOperation: library.MultiplyAddMixedInputUpcast},
		{Shape: [3]int{16, 8, 16}, ElementA: library.S8, ElementB: library.BF16, ElementAccumulator: library.F32,
			OpcodeClass: library.TensorOp, MathOperation: library.MultiplyAddMixedInputUpcast},
		{Shape: [3]int{16, 8, 16}, ElementA: library.U8, ElementB: library.BF16, ElementAccumulator: library.F32,
			OpcodeClass: library.TensorOp, MathOperation: library.MultiplyAddMixedInputUpcast},
		{Shape: [3]int{16, 8, 16}, ElementA: library.S8, ElementB: library.F16, ElementAccumulator: library.F16,
			OpcodeClass: library.TensorOp, MathOperation: library.MultiplyAddMixedInputUpcast},
		{Shape: [3]int{16, 8, 16}, ElementA: library.U8, ElementB: library.F16, ElementAccumulator: library.F16,
			OpcodeClass: library.TensorOp, MathOperation: library.MultiplyAddMixedInputUpcast},
	}

	specs := []tileSpec{
		{[3]int{128, 128, 64}, 4, [3]int{2, 2, 1}},
		{[3]int{128, 128, 64}, 3, [3]int{2, 2, 1}},
		{[3]int{128, 64, 64}, 5, [3]int{2, 2, 1}},
		{[3]int{128, 64, 64}, 4, [3]int{2, 2, 1}},
		{[3]int{128, 64, 64}, 3, [3]int{2, 2, 1}},
		{[3]int{128, 32, 64}, 9, [3]int{2, 2, 1}},
		{[3]int{128, 32, 64}, 5, [3]int{2, 2, 1}},
		{[3]int{128, 16, 64}, 5, [3]int{2, 1, 1}},
		{[3]int{128, 16, 64}, 3, [3]int{2, 1, 1}},
	}

	// The 8-bit operand loads 16 elements per access, the 16-bit one 8.
	alignments := []library.Alignment{library.AlignABC(16, 8, 8)}

	for _, inst := range instructions {
		tiles := expandTiles(specs, inst, minCC, maxCC)

		dt := GemmDataType{A: inst.ElementA, B: inst.ElementB, C: inst.ElementAccumulator, Epilogue: inst.ElementAccumulator}
		ops, err := CreateGemmOperator(m, layoutsTN, tiles, dt, alignments, nil,
			library.LinearCombination, library.SwizzleIdentity8)
		if err != nil {
			return err
		}

		if inst.ElementB != inst.ElementAccumulator {
			mixed := GemmDataType{A: inst.ElementA, B: inst.ElementB, C: inst.ElementB, Epilogue: inst.ElementAccumulator}
			more, err := CreateGemmOperator(m, layoutsTN, tiles, mixed, alignments, nil,
				library.LinearCombination, library.SwizzleIdentity8)
			if err != nil {
				return err
			}
			ops = append(ops, more...)
		}

		// Narrow tiles cannot sustain a full 128-bit store of a 16-bit C.
		for _, op := range ops {
			if op.C.Element.Bits() == 16 && op.Tile.ThreadblockShape[1] <= 32 {
				op.C.Alignment = 4
			}
		}
	}
	return nil
}

func generateSM80MixedInputUpcastB(m *manifest.Manifest) error {
	const minCC, maxCC = 80, 1024

	instructions := []library.MathInstruction{
		{Shape: [3]int{16, 8, 16}, ElementA: library.F16, ElementB: library.S8, ElementAccumulator: library.F32,
			OpcodeClass: library.TensorOp, MathOperation: library.MultiplyAddMixedInputUpcast},
		{Shape: [3]int{16, 8, 16}, ElementA: library.F16, ElementB: library.U8, ElementAccumulator: library.F32,
			OpcodeClass: library.TensorOp, MathOperation: library.MultiplyAddMixedInputUpcast},
		{Shape: [3]int{16, 8, 16}, ElementA: library.BF16, ElementB: library.S8, ElementAccumulator: library.F32,
			OpcodeClass: library.TensorOp, MathOperation: library.MultiplyAddMixedInputUpcast},
		{Shape: [3]int{16, 8, 16}, ElementA: library.BF16, ElementB: library.U8, ElementAccumulator: library.F32,
			OpcodeClass: library.TensorOp, MathOperation: library.MultiplyAddMixedInputUpcast},
		{Shape: [3]int{16, 8, 16}, ElementA: library.F16, ElementB: library.S8, ElementAccumulator: library.F16,
			OpcodeClass: library.TensorOp, MathOperation: library.MultiplyAddMixedInputUpcast},
		{Shape: [3]int{16, 8, 16}, ElementA: library.F16, ElementB: library.U8, ElementAccumulator: library.F16,
			OpcodeClass: library.TensorOp, MathOperation: library.MultiplyAddMixedInputUpcast},
	}

	specs := []tileSpec{
		{[3]int{128, 128, 64}, 4, [3]int{2, 2, 1}},
		{[3]int{128, 128, 64}, 3, [3]int{2, 2, 1}},
		{[3]int{128, 64, 64}, 5, [3]int{2, 2, 1}},
		{[3]int{128, 64, 64}, 4, [3]int{2, 2, 1}},
		{[3]int{128, 64, 64}, 3, [3]int{2, 2, 1}},
		{[3]int{128, 32, 64}, 9, [3]int{2, 2, 1}},
		{[3]int{128, 32, 64}, 5, [3]int{2, 2, 1}},
		{[3]int{128, 32, 32}, 9, [3]int{2, 2, 1}},
		{[3]int{128, 32, 32}, 5, [3]int{2, 2, 1}},
		{[3]int{128, 16, 64}, 5, [3]int{2, 1, 1}},
		{[3]int{128, 16, 64}, 3, [3]int{2, 1, 1}},
		{[3]int{128, 16, 32}, 9, [3]int{2, 1, 1}},
		{[3]int{128, 16, 32}, 5, [3]int{2, 1, 1}},
		{[3]int{128, 16, 32}, 3, [3]int{2, 1, 1}},
		{[3]int{256, 16, 32}, 5, [3]int{2, 1, 1}},
		{[3]int{256, 16, 32}, 3, [3]int{2, 1, 1}},
	}

	alignments := []library.Alignment{library.AlignABC(8, 16, 8)}

	for _, inst := range instructions {
		tiles := expandTiles(specs, inst, minCC, maxCC)

		dt := GemmDataType{A: inst.ElementA, B: inst.ElementB, C: inst.ElementAccumulator, Epilogue: inst.ElementAccumulator}
		ops, err := CreateGemmOperator(m, layoutsTN, tiles, dt, alignments, nil,
			library.LinearCombination, library.SwizzleIdentity8)
		if err != nil {
			return err
		}

		if inst.ElementA != inst.ElementAccumulator {
			mixed := GemmDataType{A: inst.ElementA, B: inst.ElementB, C: inst.ElementA, Epilogue: inst.ElementAccumulator}
			more, err := CreateGemmOperator(m, layoutsTN, tiles, mixed, alignments, nil,
				library.LinearCombination, library.SwizzleIdentity8)
			if err != nil {
				return err
			}
			ops = append(ops, more...)
		}

		for _, op := range ops {
			if op.Tile.ThreadblockShape[1] <= 32 {
				op.C.Alignment = 4
			}
		}
	}
	return nil
}

func generateSM80TensorOp16832TN(m *manifest.Manifest) error {
	const minCC, maxCC = 80, 1024

	instructions := []library.MathInstruction{
		{Shape: [3]int{16, 8, 32}, ElementA: library.S8, ElementB: library.S8, ElementAccumulator: library.S32,
			OpcodeClass: library.TensorOp, MathOperation: library.MultiplyAddSaturate},
		{Shape: [3]int{16, 8, 32}, ElementA: library.U8, ElementB: library.U8, ElementAccumulator: library.S32,
			OpcodeClass: library.TensorOp, MathOperation: library.MultiplyAddSaturate},
	}

	specs := []tileSpec{
		{[3]int{256, 128, 64}, 3, [3]int{4, 2, 1}},
		{[3]int{128, 256, 64}, 3, [3]int{2, 4, 1}},
		{[3]int{256, 64, 64}, 4, [3]int{4, 1, 1}},
		{[3]int{64, 256, 64}, 4, [3]int{1, 4, 1}},
		{[3]int{256, 32, 64}, 4, [3]int{4, 1, 1}},
		{[3]int{32, 256, 64}, 4, [3]int{1, 4, 1}},
		{[3]int{128, 128, 64}, 5, [3]int{2, 2, 1}},
		{[3]int{128, 64, 64}, 6, [3]int{2, 2, 1}},
		{[3]int{64, 128, 64}, 6, [3]int{2, 2, 1}},
		{[3]int{128, 32, 64}, 6, [3]int{4, 1, 1}},
		{[3]int{32, 128, 64}, 6, [3]int{1, 4, 1}},
		{[3]int{64, 64, 64}, 10, [3]int{2, 2, 1}},
		{[3]int{256, 128, 128}, 3, [3]int{4, 2, 1}},
		{[3]int{128, 256, 128}, 3, [3]int{2, 4, 1}},
		{[3]int{256, 64, 128}, 4, [3]int{4, 1, 1}},
		{[3]int{64, 256, 128}, 4, [3]int{1, 4, 1}},
		{[3]int{256, 32, 128}, 4, [3]int{4, 1, 1}},
		{[3]int{32, 256, 128}, 4, [3]int{1, 4, 1}},
		{[3]int{128, 128, 128}, 4, [3]int{2, 2, 1}},
		{[3]int{128, 64, 128}, 3, [3]int{2, 2, 1}},
		{[3]int{64, 128, 128}, 3, [3]int{2, 2, 1}},
		{[3]int{128, 32, 128}, 4, [3]int{4, 1, 1}},
		{[3]int{32, 128, 128}, 4, [3]int{1, 4, 1}},
		{[3]int{64, 64, 128}, 5, [3]int{2, 2, 1}},
	}

	alignments := alignmentsOf(16)

	for _, inst := range instructions {
		tiles := expandTiles(specs, inst, minCC, maxCC)

		dt := GemmDataType{A: inst.ElementA, B: inst.ElementB, C: inst.ElementAccumulator, Epilogue: library.S32}
		if _, err := CreateGemmOperator(m, layoutsTN, tiles, dt, alignments, nil,
			library.LinearCombination, library.SwizzleIdentity8); err != nil {
			return err
		}
		if _, err := CreateConv2dOperator(m, convLayoutNHWC, tiles, dt, alignments,
			[]library.ConvKind{library.ConvFprop}, library.LinearCombination,
			library.SwizzleIdentity4); err != nil {
			return err
		}

		mixed := GemmDataType{A: inst.ElementA, B: inst.ElementB, C: inst.ElementA, Epilogue: library.F32}
		gemms, err := CreateGemmOperator(m, layoutsTN, tiles, mixed, alignments, nil,
			library.LinearCombinationClamp, library.SwizzleIdentity8)
		if err != nil {
			return err
		}
		convs, err := CreateConv2dOperator(m, convLayoutNHWC, tiles, mixed, alignments,
			[]library.ConvKind{library.ConvFprop}, library.LinearCombinationClamp,
			library.SwizzleIdentity4)
		if err != nil {
			return err
		}
		fixed, err := CreateConv2dFixedChannelsOperator(m, convLayoutNHWC, tiles, mixed,
			[]int{16, 8, 4}, library.LinearCombinationClamp, library.SwizzleIdentity4)
		if err != nil {
			return err
		}
		few, err := CreateConv2dFewChannelsOperator(m, convLayoutNHWC, tiles, mixed,
			[]int{16, 8, 4}, library.LinearCombinationClamp, library.SwizzleIdentity4)
		if err != nil {
			return err
		}
		convs = append(convs, fixed...)
		convs = append(convs, few...)
		for _, op := range gemms {
			op.C.Alignment = wideOutputAlignment(op.Tile)
		}
		for _, op := range convs {
			op.C.Alignment = wideOutputAlignment(op.Tile)
		}
	}
	return nil
}

// wideOutputAlignment picks the 8-bit output store width for the 16x8x32
// integer kernels. Wide tiles store 16 elements unless the M extent is a
// single warp tile.
func wideOutputAlignment(tile library.TileDescription) int {
	if tile.ThreadblockShape[1] >= 128 {
		if tile.ThreadblockShape[0] == 32 {
			return 8
		}
		return 16
	}
	return 8
}

func generateSM80SimtF32(m *manifest.Manifest) error {
	const minCC, maxCC = 80, 1024

	inst := library.MathInstruction{
		Shape:              [3]int{1, 1, 1},
		ElementA:           library.F32,
		ElementB:           library.F32,
		ElementAccumulator: library.F32,
		OpcodeClass:        library.Simt,
		MathOperation:      library.MultiplyAdd,
	}

	specs := []tileSpec{
		{[3]int{256, 128, 8}, 5, [3]int{4, 2, 1}},
		{[3]int{128, 256, 8}, 5, [3]int{2, 4, 1}},
		{[3]int{128, 128, 8}, 5, [3]int{4, 2, 1}},
		{[3]int{256, 128, 8}, 4, [3]int{4, 2, 1}},
		{[3]int{128, 256, 8}, 4, [3]int{2, 4, 1}},
		{[3]int{128, 128, 8}, 4, [3]int{4, 2, 1}},
		{[3]int{128, 64, 8}, 5, [3]int{2, 2, 1}},
		{[3]int{64, 128, 8}, 5, [3]int{2, 2, 1}},
		{[3]int{64, 64, 8}, 5, [3]int{2, 1, 1}},
		{[3]int{128, 32, 8}, 5, [3]int{2, 1, 1}},
		{[3]int{32, 128, 8}, 5, [3]int{1, 2, 1}},
	}

	tiles := expandTiles(specs, inst, minCC, maxCC)
	alignments := []library.Alignment{library.Align(1)}
	dt := GemmDataType{A: library.F32, B: library.F32, C: library.F32, Epilogue: library.F32}

	if _, err := CreateGemmOperator(m, gemmLayoutsNT, tiles, dt, alignments, nil,
		library.LinearCombination, library.SwizzleIdentity8); err != nil {
		return err
	}
	_, err := CreateConv2dOperator(m, convLayoutNHWC, tiles, dt, alignments,
		allConvKinds, library.LinearCombination, library.SwizzleIdentity4)
	return err
}

func generateSM80SimtF64(m *manifest.Manifest) error {
	const minCC, maxCC = 80, 1024

	inst := library.MathInstruction{
		Shape:              [3]int{1, 1, 1},
		ElementA:           library.F64,
		ElementB:           library.F64,
		ElementAccumulator: library.F64,
		OpcodeClass:        library.Simt,
		MathOperation:      library.MultiplyAdd,
	}

	specs := []tileSpec{
		{[3]int{128, 128, 8}, 3, [3]int{4, 2, 1}},
		{[3]int{128, 64, 8}, 4, [3]int{2, 2, 1}},
		{[3]int{64, 128, 8}, 4, [3]int{2, 2, 1}},
		{[3]int{64, 64, 8}, 5, [3]int{2, 1, 1}},
		{[3]int{128, 32, 8}, 5, [3]int{2, 1, 1}},
		{[3]int{32, 128, 8}, 5, [3]int{1, 2, 1}},
	}

	tiles := expandTiles(specs, inst, minCC, maxCC)
	alignments := []library.Alignment{library.Align(1)}
	dt := GemmDataType{A: library.F64, B: library.F64, C: library.F64, Epilogue: library.F64}

	_, err := CreateGemmOperator(m, gemmLayoutsNT, tiles, dt, alignments, nil,
		library.LinearCombination, library.SwizzleIdentity8)
	return err
}
