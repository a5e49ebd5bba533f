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

// GenerateSM75 emits the Turing tensor-core families: F16 GEMM and 2-D
// convolution on the 16x8x8 instruction, and integer GEMM and forward
// convolution on the 8x8x16 instruction.
func GenerateSM75(m *manifest.Manifest, version ToolkitVersion) error {
	if err := generateSM75TensorOp1688(m); err != nil {
		return err
	}
	return generateSM75TensorOp8816TN(m)
}

func generateSM75TensorOp1688(m *manifest.Manifest) error {
	const minCC, maxCC = 75, 1024

	instructions := []library.MathInstruction{
		{
			Shape:              [3]int{16, 8, 8},
			ElementA:           library.F16,
			ElementB:           library.F16,
			ElementAccumulator: library.F32,
			OpcodeClass:        library.TensorOp,
			MathOperation:      library.MultiplyAdd,
		},
		{
			Shape:              [3]int{16, 8, 8},
			ElementA:           library.F16,
			ElementB:           library.F16,
			ElementAccumulator: library.F16,
			OpcodeClass:        library.TensorOp,
			MathOperation:      library.MultiplyAdd,
		},
	}

	alignments := alignmentsOf(8, 4, 2, 1)

	for _, inst := range instructions {
		tiles := []library.TileDescription{
			library.NewTileDescription([3]int{256, 128, 32}, 2, [3]int{4, 2, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{128, 256, 32}, 2, [3]int{2, 4, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{128, 128, 32}, 2, [3]int{2, 2, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{64, 256, 32}, 2, [3]int{1, 4, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{256, 64, 32}, 2, [3]int{4, 1, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{64, 128, 32}, 2, [3]int{2, 2, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{128, 64, 32}, 2, [3]int{2, 2, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{64, 64, 32}, 2, [3]int{2, 2, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{64, 128, 64}, 2, [3]int{1, 2, 2}, inst, minCC, maxCC),
		}

		dt := GemmDataType{
			A:        inst.ElementA,
			B:        inst.ElementB,
			C:        inst.ElementAccumulator,
			Epilogue: inst.ElementAccumulator,
		}

		if _, err := CreateGemmOperator(m, gemmLayoutsNT, tiles, dt, alignments, nil,
			library.LinearCombination, library.SwizzleIdentity8); err != nil {
			return err
		}
		if _, err := CreateConv2dOperator(m, convLayoutNHWC, tiles, dt, alignments,
			allConvKinds, library.LinearCombination, library.SwizzleIdentity4); err != nil {
			return err
		}

		if inst.ElementA != inst.ElementAccumulator {
			mixed := GemmDataType{
				A:        inst.ElementA,
				B:        inst.ElementB,
				C:        inst.ElementA,
				Epilogue: inst.ElementAccumulator,
			}
			if _, err := CreateGemmOperator(m, gemmLayoutsNT, tiles, mixed, alignments, nil,
				library.LinearCombination, library.SwizzleIdentity8); err != nil {
				return err
			}
			if _, err := CreateConv2dOperator(m, convLayoutNHWC, tiles, mixed, alignments,
				allConvKinds, library.LinearCombination, library.SwizzleIdentity4); err != nil {
				return err
			}
		}
	}
	return nil
}

func generateSM75TensorOp8816TN(m *manifest.Manifest) error {
	const minCC, maxCC = 75, 90

	layouts := [][3]library.LayoutType{
		{library.RowMajor, library.ColumnMajor, library.ColumnMajor},
	}

	instructions := []library.MathInstruction{
		{
			Shape:              [3]int{8, 8, 16},
			ElementA:           library.S8,
			ElementB:           library.S8,
			ElementAccumulator: library.S32,
			OpcodeClass:        library.TensorOp,
			MathOperation:      library.MultiplyAddSaturate,
		},
		{
			Shape:              [3]int{8, 8, 16},
			ElementA:           library.U8,
			ElementB:           library.U8,
			ElementAccumulator: library.S32,
			OpcodeClass:        library.TensorOp,
			MathOperation:      library.MultiplyAddSaturate,
		},
	}

	alignments := alignmentsOf(16)

	for _, inst := range instructions {
		tiles := []library.TileDescription{
			library.NewTileDescription([3]int{256, 128, 64}, 2, [3]int{4, 2, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{128, 256, 64}, 2, [3]int{2, 4, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{128, 128, 64}, 2, [3]int{2, 2, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{64, 256, 64}, 2, [3]int{1, 4, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{256, 64, 64}, 2, [3]int{4, 1, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{64, 128, 64}, 2, [3]int{2, 2, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{128, 64, 64}, 2, [3]int{2, 2, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{64, 64, 64}, 2, [3]int{2, 2, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{256, 32, 64}, 2, [3]int{4, 1, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{32, 256, 64}, 2, [3]int{1, 4, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{128, 32, 64}, 2, [3]int{4, 1, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{64, 32, 64}, 2, [3]int{2, 1, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{256, 128, 32}, 2, [3]int{4, 2, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{128, 256, 32}, 2, [3]int{2, 4, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{128, 128, 32}, 2, [3]int{2, 2, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{64, 256, 32}, 2, [3]int{1, 4, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{256, 64, 32}, 2, [3]int{4, 1, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{64, 128, 32}, 2, [3]int{2, 2, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{128, 64, 32}, 2, [3]int{2, 2, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{64, 64, 32}, 2, [3]int{2, 2, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{128, 32, 32}, 2, [3]int{2, 1, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{64, 32, 32}, 2, [3]int{2, 1, 1}, inst, minCC, maxCC),
		}

		dt := GemmDataType{
			A:        inst.ElementA,
			B:        inst.ElementB,
			C:        inst.ElementAccumulator,
			Epilogue: library.S32,
		}

		if _, err := CreateGemmOperator(m, layouts, tiles, dt, alignments, nil,
			library.LinearCombination, library.SwizzleIdentity8); err != nil {
			return err
		}
		if _, err := CreateConv2dOperator(m, convLayoutNHWC, tiles, dt, alignments,
			[]library.ConvKind{library.ConvFprop}, library.LinearCombination,
			library.SwizzleIdentity4); err != nil {
			return err
		}

		// Integer inputs accumulating into s32 also get a clamped variant
		// writing back in the input type. The epilogue runs in f32 so the
		// clamp bounds are representable.
		mixed := GemmDataType{
			A:        inst.ElementA,
			B:        inst.ElementB,
			C:        inst.ElementA,
			Epilogue: library.F32,
		}
		gemms, err := CreateGemmOperator(m, layouts, tiles, mixed, alignments, nil,
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
		for _, op := range gemms {
			op.C.Alignment = narrowOutputAlignment(op.Tile)
		}
		for _, op := range convs {
			op.C.Alignment = narrowOutputAlignment(op.Tile)
		}
	}
	return nil
}

// narrowOutputAlignment widens the C operand of 8-bit output kernels to a
// full 128-bit store when the tile is wide enough.
func narrowOutputAlignment(tile library.TileDescription) int {
	if tile.ThreadblockShape[1] >= 128 {
		return 16
	}
	return 8
}
