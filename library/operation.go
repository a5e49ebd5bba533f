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
	"fmt"
	"strings"
)

// OperationKind identifies the operation family of a variant.
type OperationKind int

const (
	OpGemm OperationKind = iota
	OpRankK
	OpTrmm
	OpSymm
	OpConv2d
	OpConv3d
)

func (k OperationKind) Name() (string, error) {
	switch k {
	case OpGemm:
		return "gemm", nil
	case OpRankK:
		return "rank_k", nil
	case OpTrmm:
		return "trmm", nil
	case OpSymm:
		return "symm", nil
	case OpConv2d:
		return "conv2d", nil
	case OpConv3d:
		return "conv3d", nil
	}
	return "", fmt.Errorf("unmapped OperationKind %d", int(k))
}

// Operation is one fully-specified kernel variant. Implementations are
// immutable value records except for the documented post-hoc output
// alignment corrections applied by generators before the catalog is
// observed.
type Operation interface {
	OperationKind() OperationKind
	// ProceduralName derives the variant's unique name. It is a pure
	// function of the record's fields; an unmapped enum anywhere in the
	// derivation is an error, never a silent default.
	ProceduralName() (string, error)
	MinComputeCapability() int
	MaxComputeCapability() int
}

// FillMode selects which triangle of a symmetric operand is referenced.
type FillMode int

const (
	FillLower FillMode = iota
	FillUpper
)

func (f FillMode) Name() (string, error) {
	switch f {
	case FillLower:
		return "l", nil
	case FillUpper:
		return "u", nil
	}
	return "", fmt.Errorf("unmapped FillMode %d", int(f))
}

// SideMode selects which side a triangular/symmetric operand multiplies on.
type SideMode int

const (
	SideLeft SideMode = iota
	SideRight
)

func (s SideMode) Name() (string, error) {
	switch s {
	case SideLeft:
		return "ls", nil
	case SideRight:
		return "rs", nil
	}
	return "", fmt.Errorf("unmapped SideMode %d", int(s))
}

// DiagType states whether a triangular operand has a unit diagonal.
type DiagType int

const (
	DiagNonUnit DiagType = iota
	DiagUnit
)

func (d DiagType) Name() (string, error) {
	switch d {
	case DiagNonUnit:
		return "nu", nil
	case DiagUnit:
		return "un", nil
	}
	return "", fmt.Errorf("unmapped DiagType %d", int(d))
}

// BlasMode distinguishes the symmetric and hermitian variants of the BLAS-3
// update operations.
type BlasMode int

const (
	BlasSymmetric BlasMode = iota
	BlasHermitian
)

func (b BlasMode) Name() (string, error) {
	switch b {
	case BlasSymmetric:
		return "symmetric", nil
	case BlasHermitian:
		return "hermitian", nil
	}
	return "", fmt.Errorf("unmapped BlasMode %d", int(b))
}

// coreName builds the "<acc><shape><intermediate><kind>" segment shared by
// all 2.x procedural names, e.g. "s16816gemm" or "s1688tf32gemm".
func coreName(mi MathInstruction, kindWord string) (string, error) {
	acc, err := mi.ElementAccumulator.ShortName()
	if err != nil {
		return "", err
	}
	inter, err := mi.MathOperation.IntermediateTypeName()
	if err != nil {
		return "", err
	}
	// SIMT instructions have a degenerate 1x1x1 shape that contributes
	// nothing to the name.
	shape := ""
	if mi.OpcodeClass != Simt {
		shape = mi.ShapeName()
	}
	name := acc + shape + inter + kindWord
	// Fast-accumulation variants share every other axis with their plain
	// counterparts, so the variant must be name-distinguishing.
	if mi.MathOperation == MultiplyAddFastAccum {
		name += "_fastaccum"
	}
	return name, nil
}

// extendedName decorates the core name with the output and input element
// codes when they differ from the accumulator type, e.g.
// "f16_s16816gemm_f16". Mixed-input instructions list both operand
// elements ("s16816gemm_s8_f16"); the accumulator alone cannot tell the
// B variants apart and the name must stay injective.
func extendedName(core string, elementA, elementB, elementC, elementAccumulator DataType) (string, error) {
	var sb strings.Builder
	if elementC != elementAccumulator {
		c, err := elementC.Name()
		if err != nil {
			return "", err
		}
		sb.WriteString(c)
		sb.WriteString("_")
	}
	sb.WriteString(core)
	switch {
	case elementA != elementB:
		a, err := elementA.Name()
		if err != nil {
			return "", err
		}
		b, err := elementB.Name()
		if err != nil {
			return "", err
		}
		sb.WriteString("_")
		sb.WriteString(a)
		sb.WriteString("_")
		sb.WriteString(b)
	case elementA != elementAccumulator:
		a, err := elementA.Name()
		if err != nil {
			return "", err
		}
		sb.WriteString("_")
		sb.WriteString(a)
	}
	return sb.String(), nil
}

// joinSegments concatenates non-empty name segments with underscores.
func joinSegments(segments ...string) string {
	parts := segments[:0:0]
	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "_")
}
