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

// RankKOperation is one rank-k or rank-2k symmetric/hermitian update
// variant (SYRK/HERK/SYR2K/HER2K).
type RankKOperation struct {
	Rank            int // 1 for SYRK/HERK, 2 for SYR2K/HER2K
	BlasMode        BlasMode
	Arch            int
	Tile            TileDescription
	A               TensorDescription
	C               TensorDescription
	FillC           FillMode
	ElementEpilogue DataType
	EpilogueFunctor EpilogueFunctor
	Swizzling       SwizzlingFunctor
}

func NewRankKOperation(rank int, blas BlasMode, arch int, tile TileDescription,
	a, c TensorDescription, fillC FillMode, elementEpilogue DataType,
	epilogue EpilogueFunctor, swizzling SwizzlingFunctor) *RankKOperation {
	return &RankKOperation{
		Rank:            rank,
		BlasMode:        blas,
		Arch:            arch,
		Tile:            tile,
		A:               a,
		C:               c,
		FillC:           fillC,
		ElementEpilogue: elementEpilogue,
		EpilogueFunctor: epilogue,
		Swizzling:       swizzling,
	}
}

func (op *RankKOperation) OperationKind() OperationKind { return OpRankK }
func (op *RankKOperation) MinComputeCapability() int    { return op.Tile.MinComputeCapability }
func (op *RankKOperation) MaxComputeCapability() int    { return op.Tile.MaxComputeCapability }

// kindWord maps (rank, blas mode) to the BLAS routine word.
func (op *RankKOperation) kindWord() (string, error) {
	switch {
	case op.Rank == 1 && op.BlasMode == BlasSymmetric:
		return "syrk", nil
	case op.Rank == 1 && op.BlasMode == BlasHermitian:
		return "herk", nil
	case op.Rank == 2 && op.BlasMode == BlasSymmetric:
		return "syr2k", nil
	case op.Rank == 2 && op.BlasMode == BlasHermitian:
		return "her2k", nil
	}
	return "", fmt.Errorf("rank-k update has rank %d, want 1 or 2", op.Rank)
}

func (op *RankKOperation) ProceduralName() (string, error) {
	opcode, err := op.Tile.MathInstruction.OpcodeClass.Name()
	if err != nil {
		return "", err
	}
	kindWord, err := op.kindWord()
	if err != nil {
		return "", err
	}
	core, err := coreName(op.Tile.MathInstruction, kindWord)
	if err != nil {
		return "", err
	}
	// Rank-k updates have a single input operand.
	extended, err := extendedName(core, op.A.Element, op.A.Element, op.C.Element, op.Tile.MathInstruction.ElementAccumulator)
	if err != nil {
		return "", err
	}
	fill, err := op.FillC.Name()
	if err != nil {
		return "", err
	}
	layoutA, err := ShortLayoutName(op.A.Layout, op.A.ComplexTransform)
	if err != nil {
		return "", err
	}
	return joinSegments(
		"cutlass",
		opcode,
		extended,
		fill,
		op.Tile.Name(),
		op.Tile.DepthName(),
		layoutA,
		fmt.Sprintf("align%d", op.A.Alignment),
	), nil
}

// TrmmOperation is one triangular matrix-multiply variant.
type TrmmOperation struct {
	Arch            int
	Tile            TileDescription
	Side            SideMode
	Fill            FillMode
	Diag            DiagType
	A               TensorDescription
	B               TensorDescription
	C               TensorDescription
	ElementEpilogue DataType
	EpilogueFunctor EpilogueFunctor
	Swizzling       SwizzlingFunctor
}

func NewTrmmOperation(arch int, tile TileDescription, side SideMode, fill FillMode,
	diag DiagType, a, b, c TensorDescription, elementEpilogue DataType,
	epilogue EpilogueFunctor, swizzling SwizzlingFunctor) *TrmmOperation {
	return &TrmmOperation{
		Arch:            arch,
		Tile:            tile,
		Side:            side,
		Fill:            fill,
		Diag:            diag,
		A:               a,
		B:               b,
		C:               c,
		ElementEpilogue: elementEpilogue,
		EpilogueFunctor: epilogue,
		Swizzling:       swizzling,
	}
}

func (op *TrmmOperation) OperationKind() OperationKind { return OpTrmm }
func (op *TrmmOperation) MinComputeCapability() int    { return op.Tile.MinComputeCapability }
func (op *TrmmOperation) MaxComputeCapability() int    { return op.Tile.MaxComputeCapability }

func (op *TrmmOperation) ProceduralName() (string, error) {
	opcode, err := op.Tile.MathInstruction.OpcodeClass.Name()
	if err != nil {
		return "", err
	}
	core, err := coreName(op.Tile.MathInstruction, "trmm")
	if err != nil {
		return "", err
	}
	extended, err := extendedName(core, op.A.Element, op.B.Element, op.C.Element, op.Tile.MathInstruction.ElementAccumulator)
	if err != nil {
		return "", err
	}
	side, err := op.Side.Name()
	if err != nil {
		return "", err
	}
	fill, err := op.Fill.Name()
	if err != nil {
		return "", err
	}
	diag, err := op.Diag.Name()
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
		side,
		fill,
		diag,
		op.Tile.Name(),
		op.Tile.DepthName(),
		layoutA+layoutB,
		fmt.Sprintf("align%d", op.A.Alignment),
	), nil
}

// SymmOperation is one symmetric/hermitian matrix-multiply variant.
type SymmOperation struct {
	BlasMode        BlasMode
	Arch            int
	Tile            TileDescription
	Side            SideMode
	Fill            FillMode
	A               TensorDescription
	B               TensorDescription
	C               TensorDescription
	ElementEpilogue DataType
	EpilogueFunctor EpilogueFunctor
	Swizzling       SwizzlingFunctor
}

func NewSymmOperation(blas BlasMode, arch int, tile TileDescription, side SideMode,
	fill FillMode, a, b, c TensorDescription, elementEpilogue DataType,
	epilogue EpilogueFunctor, swizzling SwizzlingFunctor) *SymmOperation {
	return &SymmOperation{
		BlasMode:        blas,
		Arch:            arch,
		Tile:            tile,
		Side:            side,
		Fill:            fill,
		A:               a,
		B:               b,
		C:               c,
		ElementEpilogue: elementEpilogue,
		EpilogueFunctor: epilogue,
		Swizzling:       swizzling,
	}
}

func (op *SymmOperation) OperationKind() OperationKind { return OpSymm }
func (op *SymmOperation) MinComputeCapability() int    { return op.Tile.MinComputeCapability }
func (op *SymmOperation) MaxComputeCapability() int    { return op.Tile.MaxComputeCapability }

func (op *SymmOperation) kindWord() (string, error) {
	switch op.BlasMode {
	case BlasSymmetric:
		return "symm", nil
	case BlasHermitian:
		return "hemm", nil
	}
	return "", fmt.Errorf("unmapped BlasMode %d", int(op.BlasMode))
}

func (op *SymmOperation) ProceduralName() (string, error) {
	opcode, err := op.Tile.MathInstruction.OpcodeClass.Name()
	if err != nil {
		return "", err
	}
	kindWord, err := op.kindWord()
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
	side, err := op.Side.Name()
	if err != nil {
		return "", err
	}
	fill, err := op.Fill.Name()
	if err != nil {
		return "", err
	}
	layoutA, err := ShortLayoutName(op.A.Layout, op.A.ComplexTransform)
	if err != nil {
		return "", err
	}
	layoutC, err := ShortLayoutName(op.C.Layout, op.C.ComplexTransform)
	if err != nil {
		return "", err
	}
	return joinSegments(
		"cutlass",
		opcode,
		extended,
		side,
		fill,
		op.Tile.Name(),
		op.Tile.DepthName(),
		layoutA+layoutC,
		// The triangular A operand is pinned to alignment one; the name
		// carries the vectorized output alignment.
		fmt.Sprintf("align%d", op.C.Alignment),
	), nil
}
