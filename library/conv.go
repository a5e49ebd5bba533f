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

import "fmt"

// ConvKind distinguishes the three convolution gradients.
type ConvKind int

const (
	ConvFprop ConvKind = iota
	ConvDgrad
	ConvWgrad
)

func (k ConvKind) Name() (string, error) {
	switch k {
	case ConvFprop:
		return "fprop", nil
	case ConvDgrad:
		return "dgrad", nil
	case ConvWgrad:
		return "wgrad", nil
	}
	return "", fmt.Errorf("unmapped ConvKind %d", int(k))
}

// StrideSupport states which problem strides a conv variant accepts.
type StrideSupport int

const (
	StrideStrided StrideSupport = iota
	StrideUnity
)

// Suffix returns the procedural-name segment for the stride support. The
// general strided form contributes no segment.
func (s StrideSupport) Suffix() (string, error) {
	switch s {
	case StrideStrided:
		return "", nil
	case StrideUnity:
		return "unity_stride", nil
	}
	return "", fmt.Errorf("unmapped StrideSupport %d", int(s))
}

// IteratorAlgorithm selects the activation/filter tile iterator strategy.
type IteratorAlgorithm int

const (
	IteratorAnalytic IteratorAlgorithm = iota
	IteratorOptimized
	IteratorFixedChannels
	IteratorFewChannels
)

func (a IteratorAlgorithm) Name() (string, error) {
	switch a {
	case IteratorAnalytic:
		return "analytic", nil
	case IteratorOptimized:
		return "optimized", nil
	case IteratorFixedChannels:
		return "fixed_channels", nil
	case IteratorFewChannels:
		return "few_channels", nil
	}
	return "", fmt.Errorf("unmapped IteratorAlgorithm %d", int(a))
}

// ConvOperation is one implicit-GEMM convolution kernel variant.
// SpatialDims is 2 or 3, selecting the conv2d or conv3d family.
type ConvOperation struct {
	ConvKind          ConvKind
	IteratorAlgorithm IteratorAlgorithm
	StrideSupport     StrideSupport
	SpatialDims       int
	Arch              int
	Tile              TileDescription
	A                 TensorDescription
	B                 TensorDescription
	C                 TensorDescription
	ElementEpilogue   DataType
	EpilogueFunctor   EpilogueFunctor
	Swizzling         SwizzlingFunctor
}

func NewConvOperation(kind ConvKind, algo IteratorAlgorithm, stride StrideSupport, spatialDims, arch int, tile TileDescription,
	a, b, c TensorDescription, elementEpilogue DataType, epilogue EpilogueFunctor, swizzling SwizzlingFunctor) *ConvOperation {
	return &ConvOperation{
		ConvKind:          kind,
		IteratorAlgorithm: algo,
		StrideSupport:     stride,
		SpatialDims:       spatialDims,
		Arch:              arch,
		Tile:              tile,
		A:                 a,
		B:                 b,
		C:                 c,
		ElementEpilogue:   elementEpilogue,
		EpilogueFunctor:   epilogue,
		Swizzling:         swizzling,
	}
}

func (op *ConvOperation) OperationKind() OperationKind {
	if op.SpatialDims == 3 {
		return OpConv3d
	}
	return OpConv2d
}

func (op *ConvOperation) MinComputeCapability() int { return op.Tile.MinComputeCapability }
func (op *ConvOperation) MaxComputeCapability() int { return op.Tile.MaxComputeCapability }

// ProceduralName derives the unique name of the variant, e.g.
// "cutlass_tensorop_h16816fprop_optimized_128x128_32x3_nhwc_align8".
func (op *ConvOperation) ProceduralName() (string, error) {
	if op.SpatialDims != 2 && op.SpatialDims != 3 {
		return "", fmt.Errorf("conv operation has %d spatial dims, want 2 or 3", op.SpatialDims)
	}
	opcode, err := op.Tile.MathInstruction.OpcodeClass.Name()
	if err != nil {
		return "", err
	}
	kindWord, err := op.ConvKind.Name()
	if err != nil {
		return "", err
	}
	core, err := coreName(op.Tile.MathInstruction, kindWord)
	if err != nil {
		return "", err
	}
	algo, err := op.IteratorAlgorithm.Name()
	if err != nil {
		return "", err
	}
	extended, err := extendedName(core, op.A.Element, op.B.Element, op.C.Element, op.Tile.MathInstruction.ElementAccumulator)
	if err != nil {
		return "", err
	}
	layout, err := ShortLayoutName(op.A.Layout, op.A.ComplexTransform)
	if err != nil {
		return "", err
	}
	stride, err := op.StrideSupport.Suffix()
	if err != nil {
		return "", err
	}
	return joinSegments(
		"cutlass",
		opcode,
		extended,
		algo,
		op.Tile.Name(),
		op.Tile.DepthName(),
		layout,
		stride,
		fmt.Sprintf("align%d", op.A.Alignment),
	), nil
}
