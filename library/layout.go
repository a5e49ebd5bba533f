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

// LayoutType identifies the memory layout of an operand tensor.
type LayoutType int

const (
	ColumnMajor LayoutType = iota
	RowMajor
	TensorNHWC
	TensorNDHWC
)

// ComplexTransform selects an elementwise transform applied to an operand.
type ComplexTransform int

const (
	TransformNone ComplexTransform = iota
	TransformConjugate
)

// Name returns the long layout code for diagnostics.
func (l LayoutType) Name() (string, error) {
	switch l {
	case ColumnMajor:
		return "column", nil
	case RowMajor:
		return "row", nil
	case TensorNHWC:
		return "nhwc", nil
	case TensorNDHWC:
		return "ndhwc", nil
	}
	return "", fmt.Errorf("unmapped LayoutType %d", int(l))
}

// ShortLayoutName returns the one-letter (or tensor) layout code used in
// procedural names. The column/row codes follow BLAS transpose convention
// and fold in the complex transform: a conjugated column-major operand is
// "c", a conjugated row-major operand is "h".
func ShortLayoutName(l LayoutType, t ComplexTransform) (string, error) {
	switch l {
	case ColumnMajor:
		switch t {
		case TransformNone:
			return "n", nil
		case TransformConjugate:
			return "c", nil
		}
	case RowMajor:
		switch t {
		case TransformNone:
			return "t", nil
		case TransformConjugate:
			return "h", nil
		}
	case TensorNHWC:
		if t == TransformNone {
			return "nhwc", nil
		}
	case TensorNDHWC:
		if t == TransformNone {
			return "ndhwc", nil
		}
	default:
		return "", fmt.Errorf("unmapped LayoutType %d", int(l))
	}
	return "", fmt.Errorf("layout %d does not admit complex transform %d", int(l), int(t))
}
