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

package library

import (
	"strings"
	"testing"
)

var (
	simtF32 = MathInstruction{
		Shape:              [3]int{1, 1, 1},
		ElementA:           F32,
		ElementB:           F32,
		ElementAccumulator: F32,
		OpcodeClass:        Simt,
		MathOperation:      MultiplyAdd,
	}
	tensorOp884F16AccF32 = MathInstruction{
		Shape:              [3]int{8, 8, 4},
		ElementA:           F16,
		ElementB:           F16,
		ElementAccumulator: F32,
		OpcodeClass:        TensorOp,
		MathOperation:      MultiplyAdd,
	}
	tensorOp884F16AccF16 = MathInstruction{
		Shape:              [3]int{8, 8, 4},
		ElementA:           F16,
		ElementB:           F16,
		ElementAccumulator: F16,
		OpcodeClass:        TensorOp,
		MathOperation:      MultiplyAdd,
	}
	tensorOp16816F16AccF32 = MathInstruction{
		Shape:              [3]int{16, 8, 16},
		ElementA:           F16,
		ElementB:           F16,
		ElementAccumulator: F32,
		OpcodeClass:        TensorOp,
		MathOperation:      MultiplyAdd,
	}
	tensorOp1688FastF32 = MathInstruction{
		Shape:              [3]int{16, 8, 8},
		ElementA:           TF32,
		ElementB:           TF32,
		ElementAccumulator: F32,
		OpcodeClass:        TensorOp,
		MathOperation:      MultiplyAddFastF32,
	}
	tensorOp1688TF32 = MathInstruction{
		Shape:              [3]int{16, 8, 8},
		ElementA:           TF32,
		ElementB:           TF32,
		ElementAccumulator: F32,
		OpcodeClass:        TensorOp,
		MathOperation:      MultiplyAdd,
	}
	tensorOp16816S8F16AccF32 = MathInstruction{
		Shape:              [3]int{16, 8, 16},
		ElementA:           S8,
		ElementB:           F16,
		ElementAccumulator: F32,
		OpcodeClass:        TensorOp,
		MathOperation:      MultiplyAddMixedInputUpcast,
	}
	tensorOp16816S8BF16AccF32 = MathInstruction{
		Shape:              [3]int{16, 8, 16},
		ElementA:           S8,
		ElementB:           BF16,
		ElementAccumulator: F32,
		OpcodeClass:        TensorOp,
		MathOperation:      MultiplyAddMixedInputUpcast,
	}
	tensorOp16816F16S8AccF16 = MathInstruction{
		Shape:              [3]int{16, 8, 16},
		ElementA:           F16,
		ElementB:           S8,
		ElementAccumulator: F16,
		OpcodeClass:        TensorOp,
		MathOperation:      MultiplyAddMixedInputUpcast,
	}
	tensorOp16832E4M3E5M2 = MathInstruction{
		Shape:              [3]int{16, 8, 32},
		ElementA:           E4M3,
		ElementB:           E5M2,
		ElementAccumulator: F32,
		OpcodeClass:        TensorOp,
		MathOperation:      MultiplyAdd,
	}
	tensorOp16832FP8FastAccum = MathInstruction{
		Shape:              [3]int{16, 8, 32},
		ElementA:           E4M3,
		ElementB:           E4M3,
		ElementAccumulator: F32,
		OpcodeClass:        TensorOp,
		MathOperation:      MultiplyAddFastAccum,
	}
)

func TestGemmProceduralName(t *testing.T) {
	tests := []struct {
		name string
		op   *GemmOperation
		want string
	}{
		{
			name: "simt sgemm",
			op: NewGemmOperation(GemmUniversal, 50,
				NewTileDescription([3]int{128, 128, 8}, 2, [3]int{4, 2, 1}, simtF32, 50, 1024),
				NewTensorDescription(F32, ColumnMajor, 1, TransformNone),
				NewTensorDescription(F32, ColumnMajor, 1, TransformNone),
				NewTensorDescription(F32, ColumnMajor, 1, TransformNone),
				F32, LinearCombination, SwizzleIdentity8),
			want: "cutlass_simt_sgemm_128x128_8x2_nn_align1",
		},
		{
			name: "tensorop f16 accumulation",
			op: NewGemmOperation(GemmUniversal, 70,
				NewTileDescription([3]int{256, 128, 32}, 2, [3]int{4, 2, 1}, tensorOp884F16AccF16, 70, 75),
				NewTensorDescription(F16, ColumnMajor, 8, TransformNone),
				NewTensorDescription(F16, RowMajor, 8, TransformNone),
				NewTensorDescription(F16, ColumnMajor, 8, TransformNone),
				F16, LinearCombination, SwizzleIdentity8),
			want: "cutlass_tensorop_h884gemm_256x128_32x2_nt_align8",
		},
		{
			name: "tensorop mixed output",
			op: NewGemmOperation(GemmUniversal, 70,
				NewTileDescription([3]int{256, 128, 32}, 2, [3]int{4, 2, 1}, tensorOp884F16AccF32, 70, 75),
				NewTensorDescription(F16, ColumnMajor, 8, TransformNone),
				NewTensorDescription(F16, RowMajor, 8, TransformNone),
				NewTensorDescription(F16, ColumnMajor, 8, TransformNone),
				F32, LinearCombination, SwizzleIdentity8),
			want: "cutlass_tensorop_f16_s884gemm_f16_256x128_32x2_nt_align8",
		},
		{
			name: "tensorop f32 output keeps input suffix",
			op: NewGemmOperation(GemmUniversal, 70,
				NewTileDescription([3]int{256, 128, 32}, 2, [3]int{4, 2, 1}, tensorOp884F16AccF32, 70, 75),
				NewTensorDescription(F16, ColumnMajor, 8, TransformNone),
				NewTensorDescription(F16, ColumnMajor, 8, TransformNone),
				NewTensorDescription(F32, ColumnMajor, 8, TransformNone),
				F32, LinearCombination, SwizzleIdentity8),
			want: "cutlass_tensorop_s884gemm_f16_256x128_32x2_nn_align8",
		},
		{
			// F32 operands match the accumulator, so only the tf32 infix
			// separates this family from the plain one.
			name: "fast f32 intermediate infix",
			op: NewGemmOperation(GemmUniversal, 80,
				NewTileDescription([3]int{128, 128, 16}, 3, [3]int{2, 2, 1}, tensorOp1688FastF32, 80, 1024),
				NewTensorDescription(F32, RowMajor, 4, TransformNone),
				NewTensorDescription(F32, ColumnMajor, 4, TransformNone),
				NewTensorDescription(F32, ColumnMajor, 4, TransformNone),
				F32, LinearCombination, SwizzleIdentity8),
			want: "cutlass_tensorop_s1688tf32gemm_128x128_16x3_tn_align4",
		},
		{
			name: "grouped kind word",
			op: NewGemmOperation(GemmGrouped, 80,
				NewTileDescription([3]int{128, 128, 32}, 3, [3]int{2, 2, 1}, tensorOp16816F16AccF32, 80, 1024),
				NewTensorDescription(F16, ColumnMajor, 8, TransformNone),
				NewTensorDescription(F16, ColumnMajor, 8, TransformNone),
				NewTensorDescription(F32, ColumnMajor, 8, TransformNone),
				F32, LinearCombination, SwizzleIdentity8),
			want: "cutlass_tensorop_s16816gemm_grouped_f16_128x128_32x3_nn_align8",
		},
		{
			name: "mixed input f16 side",
			op: NewGemmOperation(GemmUniversal, 80,
				NewTileDescription([3]int{128, 128, 64}, 4, [3]int{2, 2, 1}, tensorOp16816S8F16AccF32, 80, 1024),
				NewTensorDescription(S8, RowMajor, 16, TransformNone),
				NewTensorDescription(F16, ColumnMajor, 8, TransformNone),
				NewTensorDescription(F32, ColumnMajor, 8, TransformNone),
				F32, LinearCombination, SwizzleIdentity8),
			want: "cutlass_tensorop_s16816gemm_s8_f16_128x128_64x4_tn_align16",
		},
		{
			name: "mixed input bf16 side",
			op: NewGemmOperation(GemmUniversal, 80,
				NewTileDescription([3]int{128, 128, 64}, 4, [3]int{2, 2, 1}, tensorOp16816S8BF16AccF32, 80, 1024),
				NewTensorDescription(S8, RowMajor, 16, TransformNone),
				NewTensorDescription(BF16, ColumnMajor, 8, TransformNone),
				NewTensorDescription(F32, ColumnMajor, 8, TransformNone),
				F32, LinearCombination, SwizzleIdentity8),
			want: "cutlass_tensorop_s16816gemm_s8_bf16_128x128_64x4_tn_align16",
		},
		{
			name: "mixed input narrow b with f16 accumulation",
			op: NewGemmOperation(GemmUniversal, 80,
				NewTileDescription([3]int{128, 128, 64}, 4, [3]int{2, 2, 1}, tensorOp16816F16S8AccF16, 80, 1024),
				NewTensorDescription(F16, RowMajor, 8, TransformNone),
				NewTensorDescription(S8, ColumnMajor, 16, TransformNone),
				NewTensorDescription(F16, ColumnMajor, 8, TransformNone),
				F16, LinearCombination, SwizzleIdentity8),
			want: "cutlass_tensorop_h16816gemm_f16_s8_128x128_64x4_tn_align8",
		},
		{
			name: "mixed fp8 operands",
			op: NewGemmOperation(GemmUniversal, 89,
				NewTileDescription([3]int{256, 128, 128}, 3, [3]int{4, 2, 1}, tensorOp16832E4M3E5M2, 89, 89),
				NewTensorDescription(E4M3, RowMajor, 16, TransformNone),
				NewTensorDescription(E5M2, ColumnMajor, 16, TransformNone),
				NewTensorDescription(F32, ColumnMajor, 4, TransformNone),
				F32, LinearCombination, SwizzleIdentity8),
			want: "cutlass_tensorop_s16832gemm_e4m3_e5m2_256x128_128x3_tn_align16",
		},
		{
			name: "fast accumulation variant",
			op: NewGemmOperation(GemmUniversal, 89,
				NewTileDescription([3]int{128, 128, 64}, 4, [3]int{2, 2, 1}, tensorOp16832FP8FastAccum, 89, 89),
				NewTensorDescription(E4M3, RowMajor, 16, TransformNone),
				NewTensorDescription(E4M3, ColumnMajor, 16, TransformNone),
				NewTensorDescription(F32, ColumnMajor, 4, TransformNone),
				F32, LinearCombination, SwizzleIdentity8),
			want: "cutlass_tensorop_s16832gemm_fastaccum_e4m3_128x128_64x4_tn_align16",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op.ProceduralName()
			if err != nil {
				t.Fatalf("ProceduralName() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ProceduralName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGemm3xProceduralName(t *testing.T) {
	inst := tensorOp16816F16AccF32
	tile := NewClusterTileDescription([3]int{128, 128, 64}, 0, [3]int{4, 1, 1}, inst, 90, 90, [3]int{2, 1, 1})

	base := func() *GemmOperation {
		op := NewGemmOperation(GemmUniversal3x, 90, tile,
			NewTensorDescription(F16, RowMajor, 8, TransformNone),
			NewTensorDescription(F16, ColumnMajor, 8, TransformNone),
			NewTensorDescription(F32, ColumnMajor, 4, TransformNone),
			F32, LinearCombination, SwizzleIdentity1)
		return op
	}

	tests := []struct {
		name    string
		mutate  func(op *GemmOperation)
		want    string
	}{
		{
			name:   "auto schedules contribute no suffix",
			mutate: func(op *GemmOperation) {},
			want:   "cutlass3x_sm90_tensorop_gemm_f16_f16_f32_f32_f32_128x128x64_2x1x1_0_tnn_align8",
		},
		{
			name: "cooperative with tma epilogue",
			mutate: func(op *GemmOperation) {
				op.KernelSchedule = KernelTmaCooperative
				op.EpilogueSchedule = EpilogueTmaCooperative
			},
			want: "cutlass3x_sm90_tensorop_gemm_f16_f16_f32_f32_f32_128x128x64_2x1x1_0_tnn_align8_warpspecialized_cooperative_epi_tma",
		},
		{
			name: "stream-k scheduler suffix",
			mutate: func(op *GemmOperation) {
				op.KernelSchedule = KernelTmaCooperative
				op.EpilogueSchedule = EpilogueTmaCooperative
				op.TileScheduler = TileSchedulerStreamK
			},
			want: "cutlass3x_sm90_tensorop_gemm_f16_f16_f32_f32_f32_128x128x64_2x1x1_0_tnn_align8_warpspecialized_cooperative_epi_tma_stream_k",
		},
		{
			name: "void source operand",
			mutate: func(op *GemmOperation) {
				op.C = NewTensorDescription(Void, ColumnMajor, 1, TransformNone)
				op.KernelSchedule = KernelTmaPingpong
				op.EpilogueSchedule = EpilogueTma
			},
			want: "cutlass3x_sm90_tensorop_gemm_f16_f16_f32_void_f32_128x128x64_2x1x1_0_tnn_align8_warpspecialized_pingpong_epi_tma",
		},
		{
			name: "cpasync for sub-tma alignment",
			mutate: func(op *GemmOperation) {
				op.A.Alignment = 4
				op.KernelSchedule = KernelCpAsync
				op.EpilogueSchedule = EpilogueNoSmem
			},
			want: "cutlass3x_sm90_tensorop_gemm_f16_f16_f32_f32_f32_128x128x64_2x1x1_0_tnn_align4_cpasync_warpspecialized_epi_nosmem",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := base()
			tt.mutate(op)
			got, err := op.ProceduralName()
			if err != nil {
				t.Fatalf("ProceduralName() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ProceduralName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvProceduralName(t *testing.T) {
	nhwc := func(elem DataType, align int) TensorDescription {
		return NewTensorDescription(elem, TensorNHWC, align, TransformNone)
	}
	ndhwc := func(elem DataType, align int) TensorDescription {
		return NewTensorDescription(elem, TensorNDHWC, align, TransformNone)
	}
	tile16816 := NewTileDescription([3]int{128, 128, 32}, 3, [3]int{2, 2, 1}, tensorOp16816F16AccF32, 80, 1024)

	tests := []struct {
		name string
		op   *ConvOperation
		want string
	}{
		{
			name: "fprop unity stride",
			op: NewConvOperation(ConvFprop, IteratorOptimized, StrideUnity, 2, 80, tile16816,
				nhwc(F16, 8), nhwc(F16, 8), nhwc(F32, 8), F32, LinearCombination, SwizzleIdentity4),
			want: "cutlass_tensorop_s16816fprop_f16_optimized_128x128_32x3_nhwc_unity_stride_align8",
		},
		{
			name: "dgrad strided",
			op: NewConvOperation(ConvDgrad, IteratorAnalytic, StrideStrided, 2, 80, tile16816,
				nhwc(F16, 8), nhwc(F16, 8), nhwc(F32, 8), F32, LinearCombination, SwizzleStridedDgradIdentity1),
			want: "cutlass_tensorop_s16816dgrad_f16_analytic_128x128_32x3_nhwc_align8",
		},
		{
			name: "f16 accumulation fprop",
			op: NewConvOperation(ConvFprop, IteratorOptimized, StrideStrided, 2, 80,
				NewTileDescription([3]int{128, 128, 32}, 3, [3]int{2, 2, 1}, MathInstruction{
					Shape:              [3]int{16, 8, 16},
					ElementA:           F16,
					ElementB:           F16,
					ElementAccumulator: F16,
					OpcodeClass:        TensorOp,
					MathOperation:      MultiplyAdd,
				}, 80, 1024),
				nhwc(F16, 8), nhwc(F16, 8), nhwc(F16, 8), F16, LinearCombination, SwizzleIdentity4),
			want: "cutlass_tensorop_h16816fprop_optimized_128x128_32x3_nhwc_align8",
		},
		{
			name: "conv3d ndhwc",
			op: NewConvOperation(ConvWgrad, IteratorOptimized, StrideStrided, 3, 80, tile16816,
				ndhwc(F16, 8), ndhwc(F16, 8), ndhwc(F32, 8), F32, LinearCombination, SwizzleIdentity1),
			want: "cutlass_tensorop_s16816wgrad_f16_optimized_128x128_32x3_ndhwc_align8",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op.ProceduralName()
			if err != nil {
				t.Fatalf("ProceduralName() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ProceduralName() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("spatial dims kind", func(t *testing.T) {
		op2 := NewConvOperation(ConvFprop, IteratorOptimized, StrideStrided, 2, 80, tile16816,
			nhwc(F16, 8), nhwc(F16, 8), nhwc(F32, 8), F32, LinearCombination, SwizzleIdentity4)
		if got := op2.OperationKind(); got != OpConv2d {
			t.Errorf("OperationKind() = %v, want OpConv2d", got)
		}
		op3 := NewConvOperation(ConvFprop, IteratorOptimized, StrideStrided, 3, 80, tile16816,
			ndhwc(F16, 8), ndhwc(F16, 8), ndhwc(F32, 8), F32, LinearCombination, SwizzleIdentity1)
		if got := op3.OperationKind(); got != OpConv3d {
			t.Errorf("OperationKind() = %v, want OpConv3d", got)
		}
	})

	t.Run("invalid spatial dims", func(t *testing.T) {
		op := NewConvOperation(ConvFprop, IteratorOptimized, StrideStrided, 4, 80, tile16816,
			nhwc(F16, 8), nhwc(F16, 8), nhwc(F32, 8), F32, LinearCombination, SwizzleIdentity4)
		if _, err := op.ProceduralName(); err == nil {
			t.Fatal("ProceduralName() = nil error for 4 spatial dims, want error")
		}
	})
}

func TestRankKProceduralName(t *testing.T) {
	tile := NewTileDescription([3]int{128, 128, 16}, 3, [3]int{2, 2, 1}, tensorOp1688TF32, 80, 1024)

	tests := []struct {
		name string
		op   *RankKOperation
		want string
	}{
		{
			name: "syrk lower",
			op: NewRankKOperation(1, BlasSymmetric, 80, tile,
				NewTensorDescription(TF32, ColumnMajor, 1, TransformNone),
				NewTensorDescription(F32, ColumnMajor, 1, TransformNone),
				FillLower, F32, LinearCombination, SwizzleIdentity8),
			want: "cutlass_tensorop_s1688syrk_tf32_l_128x128_16x3_n_align1",
		},
		{
			name: "syr2k upper",
			op: NewRankKOperation(2, BlasSymmetric, 80, tile,
				NewTensorDescription(TF32, RowMajor, 2, TransformNone),
				NewTensorDescription(F32, ColumnMajor, 1, TransformNone),
				FillUpper, F32, LinearCombination, SwizzleIdentity8),
			want: "cutlass_tensorop_s1688syr2k_tf32_u_128x128_16x3_t_align2",
		},
		{
			name: "herk conjugate operand",
			op: NewRankKOperation(1, BlasHermitian, 80, tile,
				NewTensorDescription(TF32, RowMajor, 1, TransformConjugate),
				NewTensorDescription(F32, ColumnMajor, 1, TransformNone),
				FillLower, F32, LinearCombination, SwizzleIdentity8),
			want: "cutlass_tensorop_s1688herk_tf32_l_128x128_16x3_h_align1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op.ProceduralName()
			if err != nil {
				t.Fatalf("ProceduralName() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ProceduralName() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("invalid rank", func(t *testing.T) {
		op := NewRankKOperation(3, BlasSymmetric, 80, tile,
			NewTensorDescription(TF32, ColumnMajor, 1, TransformNone),
			NewTensorDescription(F32, ColumnMajor, 1, TransformNone),
			FillLower, F32, LinearCombination, SwizzleIdentity8)
		if _, err := op.ProceduralName(); err == nil {
			t.Fatal("ProceduralName() = nil error for rank 3, want error")
		}
	})
}

func TestTrmmProceduralName(t *testing.T) {
	tile := NewTileDescription([3]int{128, 128, 16}, 3, [3]int{2, 2, 1}, tensorOp1688TF32, 80, 1024)
	op := NewTrmmOperation(80, tile, SideLeft, FillUpper, DiagNonUnit,
		NewTensorDescription(TF32, ColumnMajor, 1, TransformNone),
		NewTensorDescription(TF32, RowMajor, 1, TransformNone),
		NewTensorDescription(F32, ColumnMajor, 1, TransformNone),
		F32, LinearCombination, SwizzleIdentity8)
	got, err := op.ProceduralName()
	if err != nil {
		t.Fatalf("ProceduralName() error = %v", err)
	}
	want := "cutlass_tensorop_s1688trmm_tf32_ls_u_nu_128x128_16x3_nt_align1"
	if got != want {
		t.Errorf("ProceduralName() = %q, want %q", got, want)
	}
}

func TestSymmProceduralName(t *testing.T) {
	tile := NewTileDescription([3]int{128, 128, 16}, 3, [3]int{2, 2, 1}, tensorOp1688TF32, 80, 1024)

	symm := NewSymmOperation(BlasSymmetric, 80, tile, SideRight, FillLower,
		NewTensorDescription(TF32, ColumnMajor, 1, TransformNone),
		NewTensorDescription(TF32, ColumnMajor, 4, TransformNone),
		NewTensorDescription(F32, ColumnMajor, 4, TransformNone),
		F32, LinearCombination, SwizzleIdentity8)
	got, err := symm.ProceduralName()
	if err != nil {
		t.Fatalf("ProceduralName() error = %v", err)
	}
	// The name carries the vectorized output alignment, not the unit
	// alignment of the triangular operand.
	want := "cutlass_tensorop_s1688symm_tf32_rs_l_128x128_16x3_nn_align4"
	if got != want {
		t.Errorf("ProceduralName() = %q, want %q", got, want)
	}

	hemm := NewSymmOperation(BlasHermitian, 80, tile, SideLeft, FillUpper,
		NewTensorDescription(TF32, ColumnMajor, 1, TransformNone),
		NewTensorDescription(TF32, ColumnMajor, 4, TransformNone),
		NewTensorDescription(F32, ColumnMajor, 4, TransformNone),
		F32, LinearCombination, SwizzleIdentity8)
	got, err = hemm.ProceduralName()
	if err != nil {
		t.Fatalf("ProceduralName() error = %v", err)
	}
	if !strings.Contains(got, "hemm") {
		t.Errorf("ProceduralName() = %q, want hermitian kind word %q", got, "hemm")
	}
}

func TestProceduralNameUnmappedEnum(t *testing.T) {
	tile := NewTileDescription([3]int{128, 128, 32}, 3, [3]int{2, 2, 1}, tensorOp16816F16AccF32, 80, 1024)

	t.Run("unmapped output element", func(t *testing.T) {
		op := NewGemmOperation(GemmUniversal, 80, tile,
			NewTensorDescription(F16, ColumnMajor, 8, TransformNone),
			NewTensorDescription(F16, ColumnMajor, 8, TransformNone),
			NewTensorDescription(DataType(99), ColumnMajor, 8, TransformNone),
			F32, LinearCombination, SwizzleIdentity8)
		if _, err := op.ProceduralName(); err == nil {
			t.Fatal("ProceduralName() = nil error for unmapped DataType, want error")
		}
	})

	t.Run("unmapped gemm kind", func(t *testing.T) {
		op := NewGemmOperation(GemmKind(99), 80, tile,
			NewTensorDescription(F16, ColumnMajor, 8, TransformNone),
			NewTensorDescription(F16, ColumnMajor, 8, TransformNone),
			NewTensorDescription(F32, ColumnMajor, 8, TransformNone),
			F32, LinearCombination, SwizzleIdentity8)
		if _, err := op.ProceduralName(); err == nil {
			t.Fatal("ProceduralName() = nil error for unmapped GemmKind, want error")
		}
	})

	t.Run("void accumulator has no short code", func(t *testing.T) {
		inst := tensorOp16816F16AccF32
		inst.ElementAccumulator = Void
		op := NewGemmOperation(GemmUniversal, 80,
			NewTileDescription([3]int{128, 128, 32}, 3, [3]int{2, 2, 1}, inst, 80, 1024),
			NewTensorDescription(F16, ColumnMajor, 8, TransformNone),
			NewTensorDescription(F16, ColumnMajor, 8, TransformNone),
			NewTensorDescription(F32, ColumnMajor, 8, TransformNone),
			F32, LinearCombination, SwizzleIdentity8)
		if _, err := op.ProceduralName(); err == nil {
			t.Fatal("ProceduralName() = nil error for Void accumulator, want error")
		}
	})
}

func TestTileDescriptionValidate(t *testing.T) {
	tests := []struct {
		name    string
		min     int
		max     int
		wantErr bool
	}{
		{"valid window", 80, 1024, false},
		{"degenerate window", 89, 89, false},
		{"zero min", 0, 1024, true},
		{"zero max", 80, 0, true},
		{"inverted window", 90, 80, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			td := NewTileDescription([3]int{128, 128, 32}, 3, [3]int{2, 2, 1}, tensorOp16816F16AccF32, tt.min, tt.max)
			err := td.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
