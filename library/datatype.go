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

// Package library defines the descriptor model for enumerated kernel
// variants: element types, layouts, math instructions, tile geometry, and
// the operation records that derive unique procedural names from them.
//
// Every enum in this package is closed: the name and size mappings are
// exhaustive switches, and an unmapped member surfaces as an error rather
// than an empty string. A blank segment in a kernel name would silently
// break name uniqueness downstream, so mapping failures are treated as
// contract violations.
package library

import "fmt"

// DataType identifies the element type of an operand or accumulator.
type DataType int

const (
	F16 DataType = iota
	BF16
	F32
	TF32
	F64
	S8
	U8
	S32
	E4M3
	E5M2
	Void
)

// Name returns the short type code used in procedural names.
func (t DataType) Name() (string, error) {
	switch t {
	case F16:
		return "f16", nil
	case BF16:
		return "bf16", nil
	case F32:
		return "f32", nil
	case TF32:
		return "tf32", nil
	case F64:
		return "f64", nil
	case S8:
		return "s8", nil
	case U8:
		return "u8", nil
	case S32:
		return "s32", nil
	case E4M3:
		return "e4m3", nil
	case E5M2:
		return "e5m2", nil
	case Void:
		return "void", nil
	}
	return "", fmt.Errorf("unmapped DataType %d", int(t))
}

// ShortName returns the single-letter accumulator code used as the leading
// character of a core name ("s16816gemm").
func (t DataType) ShortName() (string, error) {
	switch t {
	case F16:
		return "h", nil
	case BF16:
		return "bf16_", nil
	case F32, TF32:
		return "s", nil
	case F64:
		return "d", nil
	case S8:
		return "s8_", nil
	case U8:
		return "u8_", nil
	case S32:
		return "i", nil
	case E4M3:
		return "e4m3_", nil
	case E5M2:
		return "e5m2_", nil
	}
	return "", fmt.Errorf("DataType %d has no accumulator code", int(t))
}

// Bits returns the storage width of one element in bits. Void is zero.
func (t DataType) Bits() int {
	switch t {
	case S8, U8, E4M3, E5M2:
		return 8
	case F16, BF16:
		return 16
	case F32, TF32, S32:
		return 32
	case F64:
		return 64
	}
	return 0
}
