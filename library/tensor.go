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

// TensorDescription describes one operand of a kernel variant: element
// type, layout, byte alignment of vectorized access, and an optional
// complex transform.
type TensorDescription struct {
	Element          DataType
	Layout           LayoutType
	Alignment        int
	ComplexTransform ComplexTransform
}

func NewTensorDescription(element DataType, layout LayoutType, alignment int, transform ComplexTransform) TensorDescription {
	return TensorDescription{Element: element, Layout: layout, Alignment: alignment, ComplexTransform: transform}
}

// Alignment carries per-operand alignment constraints as a fixed triple.
// Generators historically passed either a scalar or a three-element tuple;
// the constructors below normalize both forms once, at the boundary.
type Alignment struct {
	A int
	B int
	C int
}

// Align broadcasts a scalar constraint to all operands. The output operand
// is capped at 8, matching the widest epilogue access the non-cluster
// kernels perform.
func Align(n int) Alignment {
	return Alignment{A: n, B: n, C: min(8, n)}
}

// AlignABC carries distinct per-operand constraints through unchanged.
func AlignABC(a, b, c int) Alignment {
	return Alignment{A: a, B: b, C: c}
}
