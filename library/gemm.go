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

// GemmKind distinguishes the API generations and batching flavors of the
// matrix-multiply family.
type GemmKind int

const (
	GemmUniversal GemmKind = iota
	GemmUniversal3x
	GemmGrouped
)

// KindWord returns the operation word embedded in the core name.
func (k GemmKind) KindWord() (string, error) {
	switch k {
	case GemmUniversal, GemmUniversal3x:
		return "gemm", nil
	case GemmGrouped:
		return "gemm_grouped", nil
	}
	return "", fmt.Errorf("unmapped GemmKind %d", int(k))
}

// GemmOperation is one matrix-multiply kernel variant.
type GemmOperation struct {
	GemmKind        GemmKind
	Arch            int
	Tile            TileDescription
	A               TensorDescription
	B               TensorDescription
	C               TensorDescription
	D               TensorDescription
	ElementEpilogue DataType
	EpilogueFunctor EpilogueFunctor
	Swizzling       SwizzlingFunctor

	// Schedules apply only to Universal3x kinds; earlier kinds carry the
	// Auto zero values, which contribute no name segment.
	KernelSchedule   KernelSchedule
	EpilogueSchedule EpilogueSchedule
	TileScheduler    TileScheduler
}

// NewGemmOperation constructs a 2.x-API GEMM variant. D mirrors C.
func NewGemmOperation(kind GemmKind, arch int, tile TileDescription, a, b, c TensorDescription,
	elementEpilogue DataType, epilogue EpilogueFunctor, swizzling SwizzlingFunctor) *GemmOperation {
	return &GemmOperation{
		GemmKind:        kind,
		Arch:            arch,
		Tile:            tile,
		A:               a,
		B:               b,
		C:               c,
		D:               c,
		ElementEpilogue: elementEpilogue,
		EpilogueFunctor: epilogue,
		Swizzling:       swizzling,
	}
}

func (op *GemmOperation) OperationKind() OperationKind { return OpGemm }
func (op *GemmOperation) MinComputeCapability() int    { return op.Tile.MinComputeCapability }
func (op *GemmOperation) MaxComputeCapability() int    { return op.Tile.MaxComputeCapability }

// ProceduralName derives the unique name of the variant. Universal3x kinds
// use the 3.x segment layout with the full element list, cluster shape, and
// schedule suffixes; earlier kinds use the 2.x layout.
func (op *GemmOperation) ProceduralName() (string, error) {
	if op.GemmKind == GemmUniversal3x {
		return op.procedural3xName()
	}
	opcode, err := op.Tile.MathInstruction.OpcodeClass.Name()
	if err != nil {
		return "", err
	}
	kindWord, err := op.GemmKind.KindWord()
	if err != nil {
		return "", err
	}
	core, err := coreName(op.Tile.MathInstruction, kindWord)
	if err != nil {
		return "", err
	}
	extended, err := extendedName(core, op.A.Element, op.B.Element, op.C.Element, op.Tile.MathInstruction.ElementAccumulator)
	if err != nil {
		return "", err
	}
	layoutA, err := ShortLayoutName(op.A.Layout, op.A.ComplexTransform)
	if err != nil {
		return "", err
	}
	layoutB, err := ShortLayoutName(op.B.Layout, op.B.ComplexTransform)
	if err != nil {
		return "", err
	}
	return joinSegments(
		"cutlass",
		opcode,
		extended,
		op.Tile.Name(),
		op.Tile.DepthName(),
		layoutA+layoutB,
		fmt.Sprintf("align%d", op.A.Alignment),
	), nil
}

func (op *GemmOperation) procedural3xName() (string, error) {
	opcode, err := op.Tile.MathInstruction.OpcodeClass.Name()
	if err != nil {
		return "", err
	}
	elems := make([]string, 0, 5)
	for _, t := range []DataType{op.A.Element, op.B.Element, op.Tile.MathInstruction.ElementAccumulator, op.C.Element, op.D.Element} {
		name, err := t.Name()
		if err != nil {
			return "", err
		}
		elems = append(elems, name)
	}
	layouts := ""
	for _, td := range []TensorDescription{op.A, op.B, op.C} {
		l, err := ShortLayoutName(td.Layout, td.ComplexTransform)
		if err != nil {
			return "", err
		}
		layouts += l
	}
	kernelSuffix, err := op.KernelSchedule.Suffix()
	if err != nil {
		return "", err
	}
	epilogueSuffix, err := op.EpilogueSchedule.Suffix()
	if err != nil {
		return "", err
	}
	schedulerSuffix, err := op.TileScheduler.Suffix()
	if err != nil {
		return "", err
	}
	return joinSegments(
		"cutlass3x",
		fmt.Sprintf("sm%d", op.Arch),
		opcode,
		"gemm",
		joinSegments(elems...),
		op.Tile.ShapeName(),
		op.Tile.ClusterName(),
		fmt.Sprintf("%d", op.Tile.Stages),
		layouts,
		fmt.Sprintf("align%d", op.A.Alignment),
		kernelSuffix,
		epilogueSuffix,
		schedulerSuffix,
	), nil
}
