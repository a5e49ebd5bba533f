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

// GenerateSM89 emits the Ada FP8 GEMM and forward convolution families on
// the 16x8x32 instruction. These kernels are pinned to compute capability
// 89 exactly; Hopper carries its own FP8 path.
func GenerateSM89(m *manifest.Manifest, version ToolkitVersion) error {
	const minCC, maxCC = 89, 89

	// A row-major C variant exists in hardware but is indistinguishable
	// under the 2.x naming scheme, which encodes only the A and B
	// layouts. Emitting it would collide with the column-major variant.
	layouts := [][3]library.LayoutType{
		{library.RowMajor, library.ColumnMajor, library.ColumnMajor},
	}

	var instructions []library.MathInstruction
	for _, mathOp := range []library.MathOperation{library.MultiplyAdd, library.MultiplyAddFastAccum} {
		for _, pair := range [][2]library.DataType{
			{library.E4M3, library.E4M3},
			{library.E4M3, library.E5M2},
			{library.E5M2, library.E4M3},
			{library.E5M2, library.E5M2},
		} {
			instructions = append(instructions, library.MathInstruction{
				Shape:              [3]int{16, 8, 32},
				ElementA:           pair[0],
				ElementB:           pair[1],
				ElementAccumulator: library.F32,
				OpcodeClass:        library.TensorOp,
				MathOperation:      mathOp,
			})
		}
	}

	specs := []tileSpec{
		{[3]int{256, 128, 128}, 3, [3]int{4, 2, 1}},
		{[3]int{256, 128, 64}, 3, [3]int{4, 2, 1}},
		{[3]int{256, 128, 64}, 6, [3]int{4, 2, 1}},
		{[3]int{128, 256, 128}, 3, [3]int{2, 4, 1}},
		{[3]int{128, 256, 64}, 3, [3]int{2, 4, 1}},
		{[3]int{128, 256, 64}, 6, [3]int{2, 4, 1}},
		{[3]int{256, 64, 128}, 4, [3]int{4, 1, 1}},
		{[3]int{256, 64, 64}, 3, [3]int{4, 1, 1}},
		{[3]int{256, 64, 64}, 4, [3]int{4, 1, 1}},
		{[3]int{64, 256, 128}, 4, [3]int{1, 4, 1}},
		{[3]int{64, 256, 64}, 3, [3]int{1, 4, 1}},
		{[3]int{64, 256, 64}, 4, [3]int{1, 4, 1}},
		{[3]int{256, 32, 128}, 4, [3]int{4, 1, 1}},
		{[3]int{256, 32, 64}, 4, [3]int{4, 1, 1}},
		{[3]int{32, 256, 128}, 4, [3]int{1, 4, 1}},
		{[3]int{32, 256, 64}, 4, [3]int{1, 4, 1}},
		{[3]int{128, 128, 128}, 3, [3]int{2, 2, 1}},
		{[3]int{128, 128, 128}, 4, [3]int{2, 2, 1}},
		{[3]int{128, 128, 128}, 5, [3]int{2, 2, 1}},
		{[3]int{128, 128, 64}, 3, [3]int{2, 2, 1}},
		{[3]int{128, 128, 64}, 4, [3]int{2, 2, 1}},
		{[3]int{128, 128, 64}, 5, [3]int{2, 2, 1}},
		{[3]int{128, 128, 64}, 6, [3]int{2, 2, 1}},
		{[3]int{128, 64, 128}, 3, [3]int{2, 2, 1}},
		{[3]int{128, 64, 128}, 4, [3]int{2, 2, 1}},
		{[3]int{64, 128, 128}, 3, [3]int{2, 2, 1}},
		{[3]int{64, 128, 128}, 4, [3]int{2, 2, 1}},
		{[3]int{128, 64, 64}, 3, [3]int{2, 2, 1}},
		{[3]int{128, 64, 64}, 4, [3]int{2, 2, 1}},
		{[3]int{128, 64, 64}, 5, [3]int{2, 2, 1}},
		{[3]int{128, 64, 64}, 6, [3]int{2, 2, 1}},
		{[3]int{64, 128, 64}, 3, [3]int{2, 2, 1}},
		{[3]int{64, 128, 64}, 4, [3]int{2, 2, 1}},
		{[3]int{64, 128, 64}, 5, [3]int{2, 2, 1}},
		{[3]int{64, 128, 64}, 6, [3]int{2, 2, 1}},
		{[3]int{128, 32, 128}, 4, [3]int{4, 1, 1}},
		{[3]int{128, 32, 64}, 6, [3]int{4, 1, 1}},
		{[3]int{32, 128, 128}, 4, [3]int{1, 4, 1}},
		{[3]int{32, 128, 64}, 6, [3]int{1, 4, 1}},
		{[3]int{64, 64, 128}, 5, [3]int{2, 2, 1}},
		{[3]int{64, 64, 128}, 6, [3]int{2, 2, 1}},
		{[3]int{64, 64, 64}, 6, [3]int{2, 2, 1}},
		{[3]int{64, 64, 64}, 10, [3]int{2, 2, 1}},
	}

	alignments := alignmentsOf(16)

	for _, inst := range instructions {
		tiles := expandTiles(specs, inst, minCC, maxCC)

		for _, out := range []library.DataType{library.F32, library.BF16} {
			dt := GemmDataType{A: inst.ElementA, B: inst.ElementB, C: out, Epilogue: inst.ElementAccumulator}

			gemms, err := CreateGemmOperator(m, layouts, tiles, dt, alignments, nil,
				library.LinearCombination, library.SwizzleIdentity8)
			if err != nil {
				return err
			}
			convs, err := CreateConv2dOperator(m, convLayoutNHWC, tiles, dt, alignments,
				[]library.ConvKind{library.ConvFprop}, library.LinearCombination,
				library.SwizzleIdentity4)
			if err != nil {
				return err
			}
			fixed, err := CreateConv2dFixedChannelsOperator(m, convLayoutNHWC, tiles, dt,
				[]int{16, 8, 4}, library.LinearCombination, library.SwizzleIdentity4)
			if err != nil {
				return err
			}
			convs = append(convs, fixed...)
			for _, op := range gemms {
				op.C.Alignment = wideOutputAlignment(op.Tile)
			}
			for _, op := range convs {
				op.C.Alignment = wideOutputAlignment(op.Tile)
			}
		}
	}
	return nil
}
