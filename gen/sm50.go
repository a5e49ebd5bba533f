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

// gemmLayoutsNT is the standard four-way layout cross product with a
// column-major C operand, ordered canonical-first.
var gemmLayoutsNT = [][3]library.LayoutType{
	{library.ColumnMajor, library.ColumnMajor, library.ColumnMajor},
	{library.ColumnMajor, library.RowMajor, library.ColumnMajor},
	{library.RowMajor, library.ColumnMajor, library.ColumnMajor},
	{library.RowMajor, library.RowMajor, library.ColumnMajor},
}

var convLayoutNHWC = [3]library.LayoutType{
	library.TensorNHWC, library.TensorNHWC, library.TensorNHWC,
}

var allConvKinds = []library.ConvKind{
	library.ConvFprop, library.ConvDgrad, library.ConvWgrad,
}

// GenerateSM50 emits the SIMT single and double precision GEMM families,
// plus the single precision 2-D convolutions.
func GenerateSM50(m *manifest.Manifest, version ToolkitVersion) error {
	const minCC, maxCC = 50, 1024

	instructions := []library.MathInstruction{
		{
			Shape:              [3]int{1, 1, 1},
			ElementA:           library.F32,
			ElementB:           library.F32,
			ElementAccumulator: library.F32,
			OpcodeClass:        library.Simt,
			MathOperation:      library.MultiplyAdd,
		},
		{
			Shape:              [3]int{1, 1, 1},
			ElementA:           library.F64,
			ElementB:           library.F64,
			ElementAccumulator: library.F64,
			OpcodeClass:        library.Simt,
			MathOperation:      library.MultiplyAdd,
		},
	}

	alignments := []library.Alignment{library.Align(1)}

	for _, inst := range instructions {
		tiles := []library.TileDescription{
			library.NewTileDescription([3]int{128, 128, 8}, 2, [3]int{4, 2, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{128, 64, 8}, 2, [3]int{2, 2, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{64, 128, 8}, 2, [3]int{2, 2, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{64, 64, 8}, 2, [3]int{2, 1, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{128, 32, 8}, 2, [3]int{2, 1, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{32, 128, 8}, 2, [3]int{1, 2, 1}, inst, minCC, maxCC),
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

		if inst.ElementA == library.F32 {
			if _, err := CreateConv2dOperator(m, convLayoutNHWC, tiles, dt, alignments,
				allConvKinds, library.LinearCombination, library.SwizzleIdentity4); err != nil {
				return err
			}
		}
	}
	return nil
}
