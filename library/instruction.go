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

// OpcodeClass identifies which hardware math unit a variant targets.
type OpcodeClass int

const (
	Simt OpcodeClass = iota
	TensorOp
	WmmaTensorOp
	SparseTensorOp
)

// Name returns the opcode-class segment of a procedural name.
func (c OpcodeClass) Name() (string, error) {
	switch c {
	case Simt:
		return "simt", nil
	case TensorOp:
		return "tensorop", nil
	case WmmaTensorOp:
		return "wmma_tensorop", nil
	case SparseTensorOp:
		return "sptensorop", nil
	}
	return "", fmt.Errorf("unmapped OpcodeClass %d", int(c))
}

// MathOperation identifies the math performed per instruction, beyond the
// plain multiply-add: saturating, reduced-precision-fast, complex, and
// mixed-input-upcast variants.
type MathOperation int

const (
	MultiplyAdd MathOperation = iota
	MultiplyAddSaturate
	MultiplyAddFastBF16
	MultiplyAddFastF16
	MultiplyAddFastF32
	MultiplyAddComplex
	MultiplyAddMixedInputUpcast
	MultiplyAddFastAccum
)

// IntermediateTypeName returns the core-name infix marking a math operation
// that internally converts operands to a narrower type. Plain operations
// contribute an empty segment, which is a valid (absent) segment rather
// than a mapping failure.
func (m MathOperation) IntermediateTypeName() (string, error) {
	switch m {
	case MultiplyAdd, MultiplyAddSaturate, MultiplyAddComplex, MultiplyAddMixedInputUpcast, MultiplyAddFastAccum:
		return "", nil
	case MultiplyAddFastBF16:
		return "bf16", nil
	case MultiplyAddFastF16:
		return "f16", nil
	case MultiplyAddFastF32:
		return "tf32", nil
	}
	return "", fmt.Errorf("unmapped MathOperation %d", int(m))
}

// MathInstruction describes one hardware math instruction: its MxNxK shape,
// operand and accumulator element types, opcode class, and math variant.
type MathInstruction struct {
	Shape              [3]int
	ElementA           DataType
	ElementB           DataType
	ElementAccumulator DataType
	OpcodeClass        OpcodeClass
	MathOperation      MathOperation
}

// ShapeName returns the compact instruction-shape string ("16816", "884").
func (mi MathInstruction) ShapeName() string {
	return fmt.Sprintf("%d%d%d", mi.Shape[0], mi.Shape[1], mi.Shape[2])
}
