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

func alignmentsOf(values ...int) []library.Alignment {
	out := make([]library.Alignment, len(values))
	for i, v := range values {
		out[i] = library.Align(v)
	}
	return out
}

// GenerateSM70 emits the first-generation tensor-core F16 GEMM and 2-D
// convolution families using the 8x8x4 instruction. Kernels are capped at
// compute capability 75 because later architectures carry their own
// instruction shapes.
func GenerateSM70(m *manifest.Manifest, version ToolkitVersion) error {
	const minCC, maxCC = 70, 75

	instructions := []library.MathInstruction{
		{
			Shape:              [3]int{8, 8, 4},
			ElementA:           library.F16,
			ElementB:           library.F16,
			ElementAccumulator: library.F32,
			OpcodeClass:        library.TensorOp,
			MathOperation:      library.MultiplyAdd,
		},
		{
			Shape:              [3]int{8, 8, 4},
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
			library.NewTileDescription([3]int{256, 64, 32}, 2, [3]int{4, 1, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{64, 256, 32}, 2, [3]int{1, 4, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{64, 128, 32}, 2, [3]int{2, 2, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{128, 64, 32}, 2, [3]int{2, 2, 1}, inst, minCC, maxCC),
			library.NewTileDescription([3]int{64, 64, 32}, 2, [3]int{2, 2, 1}, inst, minCC, maxCC),
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

		// Skip the mixed variant when accumulation happens in the input
		// type; the two kernels would be identical.
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
