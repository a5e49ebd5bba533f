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
	"fmt"

	"github.com/ajroetker/kernelgen/library"
	"github.com/ajroetker/kernelgen/manifest"
)

// GemmDataType names the operand and epilogue element types of a GEMM
// family. The accumulator type lives on the math instruction inside each
// tile description.
type GemmDataType struct {
	A        library.DataType
	B        library.DataType
	C        library.DataType
	Epilogue library.DataType
}

// RankKDataType names the operand and epilogue element types of a
// rank-k update family. Rank-k updates have no independent B operand.
type RankKDataType struct {
	A        library.DataType
	C        library.DataType
	Epilogue library.DataType
}

// DataTypes3x names all six element types of a collective-builder GEMM.
type DataTypes3x struct {
	A           library.DataType
	B           library.DataType
	C           library.DataType
	D           library.DataType
	Accumulator library.DataType
	Epilogue    library.DataType
}

// LayoutAlign pairs a layout with the operand alignment used alongside it
// by the collective-builder factories.
type LayoutAlign struct {
	Layout    library.LayoutType
	Alignment int
}

func defaultTransforms(transforms [][2]library.ComplexTransform) [][2]library.ComplexTransform {
	if len(transforms) == 0 {
		return [][2]library.ComplexTransform{{library.TransformNone, library.TransformNone}}
	}
	return transforms
}

// reduceDefault trims the tile and alignment axes to their canonical first
// entries when the manifest carries no kernel filter. Layout and transform
// axes are kept in full.
func reduceDefault[T any, A any](m *manifest.Manifest, tiles []T, alignments []A) ([]T, []A, error) {
	if !m.DefaultMode() {
		return tiles, alignments, nil
	}
	if len(tiles) == 0 || len(alignments) == 0 {
		return nil, nil, fmt.Errorf("gen: empty tile or alignment axis")
	}
	return tiles[:1], alignments[:1], nil
}

// CreateGemmOperator expands the cross product of layouts, tiles,
// alignments and complex transforms into universal GEMM operations and
// registers each with the manifest. The created operations are returned in
// registration order.
func CreateGemmOperator(m *manifest.Manifest, layouts [][3]library.LayoutType,
	tiles []library.TileDescription, dt GemmDataType, alignments []library.Alignment,
	transforms [][2]library.ComplexTransform, epilogue library.EpilogueFunctor,
	swizzling library.SwizzlingFunctor) ([]*library.GemmOperation, error) {
	return createGemm(m, library.GemmUniversal, layouts, tiles, dt, alignments, transforms, epilogue, swizzling)
}

// CreateGemmGroupedOperator is CreateGemmOperator for grouped (batched
// pointer-array) GEMM kernels.
func CreateGemmGroupedOperator(m *manifest.Manifest, layouts [][3]library.LayoutType,
	tiles []library.TileDescription, dt GemmDataType, alignments []library.Alignment,
	transforms [][2]library.ComplexTransform, epilogue library.EpilogueFunctor,
	swizzling library.SwizzlingFunctor) ([]*library.GemmOperation, error) {
	return createGemm(m, library.GemmGrouped, layouts, tiles, dt, alignments, transforms, epilogue, swizzling)
}

func createGemm(m *manifest.Manifest, kind library.GemmKind, layouts [][3]library.LayoutType,
	tiles []library.TileDescription, dt GemmDataType, alignments []library.Alignment,
	transforms [][2]library.ComplexTransform, epilogue library.EpilogueFunctor,
	swizzling library.SwizzlingFunctor) ([]*library.GemmOperation, error) {
	tiles, alignments, err := reduceDefault(m, tiles, alignments)
	if err != nil {
		return nil, err
	}
	transforms = defaultTransforms(transforms)

	var ops []*library.GemmOperation
	for _, layout := range layouts {
		for _, tile := range tiles {
			for _, align := range alignments {
				for _, transform := range transforms {
					a := library.NewTensorDescription(dt.A, layout[0], align.A, transform[0])
					b := library.NewTensorDescription(dt.B, layout[1], align.B, transform[1])
					c := library.NewTensorDescription(dt.C, layout[2], align.C, library.TransformNone)
					op := library.NewGemmOperation(kind, tile.MinComputeCapability, tile,
						a, b, c, dt.Epilogue, epilogue, swizzling)
					if err := m.Append(op); err != nil {
						return nil, err
					}
					ops = append(ops, op)
				}
			}
		}
	}
	return ops, nil
}

// CreateGemmUniversal3xOperator expands collective-builder GEMM operations
// for one (layouts x tiles x schedules x tile schedulers) block. Only the
// tile axis is trimmed in default mode; the layout-alignment, schedule and
// scheduler axes always expand in full.
func CreateGemmUniversal3xOperator(m *manifest.Manifest, layouts [][3]LayoutAlign,
	tiles []library.TileDescription, dt DataTypes3x, schedules []library.SchedulePair,
	tileSchedulers []library.TileScheduler) ([]*library.GemmOperation, error) {
	if len(tileSchedulers) == 0 {
		tileSchedulers = []library.TileScheduler{library.TileSchedulerDefault}
	}
	if m.DefaultMode() {
		if len(tiles) == 0 {
			return nil, fmt.Errorf("gen: empty tile axis")
		}
		tiles = tiles[:1]
	}

	var ops []*library.GemmOperation
	for _, layout := range layouts {
		for _, scheduler := range tileSchedulers {
			for _, tile := range tiles {
				for _, schedule := range schedules {
					a := library.NewTensorDescription(dt.A, layout[0].Layout, layout[0].Alignment, library.TransformNone)
					b := library.NewTensorDescription(dt.B, layout[1].Layout, layout[1].Alignment, library.TransformNone)
					c := library.NewTensorDescription(dt.C, layout[2].Layout, layout[2].Alignment, library.TransformNone)
					d := library.NewTensorDescription(dt.D, layout[2].Layout, layout[2].Alignment, library.TransformNone)

					tile := tile
					tile.MathInstruction.ElementAccumulator = dt.Accumulator
					op := library.NewGemmOperation(library.GemmUniversal3x, tile.MinComputeCapability,
						tile, a, b, c, dt.Epilogue, library.LinearCombination, library.SwizzleIdentity1)
					op.D = d
					op.KernelSchedule = schedule.Kernel
					op.EpilogueSchedule = schedule.Epilogue
					op.TileScheduler = scheduler
					if err := m.Append(op); err != nil {
						return nil, err
					}
					ops = append(ops, op)
				}
			}
		}
	}
	return ops, nil
}

// CreateConv2dOperator expands 2-D convolution operations for the given
// operator kinds. Forward propagation emits a unity-stride specialization
// per iterator algorithm; data-gradient emits both a unity-stride and a
// strided specialization; weight-gradient supports only general strides.
// In default mode the iterator-algorithm axis is restricted to the
// optimized variant in addition to the tile and alignment reduction.
func CreateConv2dOperator(m *manifest.Manifest, layout [3]library.LayoutType,
	tiles []library.TileDescription, dt GemmDataType, alignments []library.Alignment,
	convKinds []library.ConvKind, epilogue library.EpilogueFunctor,
	swizzling library.SwizzlingFunctor) ([]*library.ConvOperation, error) {
	tiles, alignments, err := reduceDefault(m, tiles, alignments)
	if err != nil {
		return nil, err
	}
	algorithms := []library.IteratorAlgorithm{library.IteratorAnalytic, library.IteratorOptimized}
	if m.DefaultMode() {
		algorithms = []library.IteratorAlgorithm{library.IteratorOptimized}
	}

	var ops []*library.ConvOperation
	emit := func(kind library.ConvKind, algo library.IteratorAlgorithm,
		stride library.StrideSupport, sw library.SwizzlingFunctor,
		tile library.TileDescription, align library.Alignment) error {
		a := library.NewTensorDescription(dt.A, layout[0], align.A, library.TransformNone)
		b := library.NewTensorDescription(dt.B, layout[1], align.B, library.TransformNone)
		c := library.NewTensorDescription(dt.C, layout[2], align.C, library.TransformNone)
		op := library.NewConvOperation(kind, algo, stride, 2, tile.MinComputeCapability,
			tile, a, b, c, dt.Epilogue, epilogue, sw)
		if err := m.Append(op); err != nil {
			return err
		}
		ops = append(ops, op)
		return nil
	}

	for _, tile := range tiles {
		for _, align := range alignments {
			for _, kind := range convKinds {
				for _, algo := range algorithms {
					switch kind {
					case library.ConvFprop:
						if err := emit(kind, algo, library.StrideUnity, swizzling, tile, align); err != nil {
							return nil, err
						}
					case library.ConvDgrad:
						if err := emit(kind, algo, library.StrideUnity, swizzling, tile, align); err != nil {
							return nil, err
						}
						if err := emit(kind, algo, library.StrideStrided,
							library.SwizzleStridedDgradIdentity1, tile, align); err != nil {
							return nil, err
						}
					case library.ConvWgrad:
						if err := emit(kind, algo, library.StrideStrided, swizzling, tile, align); err != nil {
							return nil, err
						}
					default:
						return nil, fmt.Errorf("gen: conv2d does not support kind %d", kind)
					}
				}
			}
		}
	}
	return ops, nil
}

// epilogueAlignment caps an output alignment by the number of elements
// one thread handles per epilogue step under the tile's warp arrangement.
func epilogueAlignment(maxAlignment int, tile library.TileDescription) int {
	const epilogueSteps = 8
	warps := tile.WarpCount[0] * tile.WarpCount[1] * tile.WarpCount[2]
	elementsPerThread := tile.ThreadblockShape[0] * tile.ThreadblockShape[1] / warps / 32 / epilogueSteps
	return min(maxAlignment, elementsPerThread)
}

// CreateConv2dFixedChannelsOperator expands forward-propagation
// convolutions whose input channel count is known at compile time. The
// channel count doubles as the operand alignment, so the channel axis
// replaces the usual alignment axis and reduces the same way in default
// mode.
func CreateConv2dFixedChannelsOperator(m *manifest.Manifest, layout [3]library.LayoutType,
	tiles []library.TileDescription, dt GemmDataType, channelCounts []int,
	epilogue library.EpilogueFunctor, swizzling library.SwizzlingFunctor) ([]*library.ConvOperation, error) {
	return createConv2dChannels(m, library.IteratorFixedChannels, layout, tiles, dt,
		channelCounts, epilogue, swizzling)
}

// CreateConv2dFewChannelsOperator is CreateConv2dFixedChannelsOperator
// for channel counts smaller than the instruction's K extent.
func CreateConv2dFewChannelsOperator(m *manifest.Manifest, layout [3]library.LayoutType,
	tiles []library.TileDescription, dt GemmDataType, channelCounts []int,
	epilogue library.EpilogueFunctor, swizzling library.SwizzlingFunctor) ([]*library.ConvOperation, error) {
	return createConv2dChannels(m, library.IteratorFewChannels, layout, tiles, dt,
		channelCounts, epilogue, swizzling)
}

func createConv2dChannels(m *manifest.Manifest, algo library.IteratorAlgorithm,
	layout [3]library.LayoutType, tiles []library.TileDescription, dt GemmDataType,
	channelCounts []int, epilogue library.EpilogueFunctor,
	swizzling library.SwizzlingFunctor) ([]*library.ConvOperation, error) {
	tiles, channelCounts, err := reduceDefault(m, tiles, channelCounts)
	if err != nil {
		return nil, err
	}

	var ops []*library.ConvOperation
	for _, tile := range tiles {
		for _, channels := range channelCounts {
			a := library.NewTensorDescription(dt.A, layout[0], channels, library.TransformNone)
			b := library.NewTensorDescription(dt.B, layout[1], channels, library.TransformNone)
			c := library.NewTensorDescription(dt.C, layout[2], epilogueAlignment(channels, tile), library.TransformNone)
			op := library.NewConvOperation(library.ConvFprop, algo, library.StrideStrided, 2,
				tile.MinComputeCapability, tile, a, b, c, dt.Epilogue, epilogue, swizzling)
			if err := m.Append(op); err != nil {
				return nil, err
			}
			ops = append(ops, op)
		}
	}
	return ops, nil
}

// CreateConv3dOperator expands 3-D convolution operations. All operands
// share one layout and one scalar alignment, with the C operand alignment
// capped at eight elements. Data-gradient pairs the
// optimized algorithm with unity strides and the analytic algorithm with
// general strides; forward and weight-gradient support general strides
// under every algorithm.
func CreateConv3dOperator(m *manifest.Manifest, layout library.LayoutType,
	tiles []library.TileDescription, dt GemmDataType, alignment int,
	convKinds []library.ConvKind, epilogue library.EpilogueFunctor,
	swizzling library.SwizzlingFunctor) ([]*library.ConvOperation, error) {
	alignments := []int{alignment}
	tiles, alignments, err := reduceDefault(m, tiles, alignments)
	if err != nil {
		return nil, err
	}
	algorithms := []library.IteratorAlgorithm{library.IteratorAnalytic, library.IteratorOptimized}
	if m.DefaultMode() {
		algorithms = []library.IteratorAlgorithm{library.IteratorOptimized}
	}

	var ops []*library.ConvOperation
	emit := func(kind library.ConvKind, algo library.IteratorAlgorithm,
		stride library.StrideSupport, tile library.TileDescription, align int) error {
		a := library.NewTensorDescription(dt.A, layout, align, library.TransformNone)
		b := library.NewTensorDescription(dt.B, layout, align, library.TransformNone)
		c := library.NewTensorDescription(dt.C, layout, min(8, align), library.TransformNone)
		op := library.NewConvOperation(kind, algo, stride, 3, tile.MinComputeCapability,
			tile, a, b, c, dt.Epilogue, epilogue, swizzling)
		if err := m.Append(op); err != nil {
			return err
		}
		ops = append(ops, op)
		return nil
	}

	for _, tile := range tiles {
		for _, align := range alignments {
			for _, kind := range convKinds {
				for _, algo := range algorithms {
					switch kind {
					case library.ConvFprop, library.ConvWgrad:
						if err := emit(kind, algo, library.StrideStrided, tile, align); err != nil {
							return nil, err
						}
					case library.ConvDgrad:
						switch algo {
						case library.IteratorOptimized:
							if err := emit(kind, algo, library.StrideUnity, tile, align); err != nil {
								return nil, err
							}
						case library.IteratorAnalytic:
							if err := emit(kind, algo, library.StrideStrided, tile, align); err != nil {
								return nil, err
							}
						}
					default:
						return nil, fmt.Errorf("gen: conv3d does not support kind %d", kind)
					}
				}
			}
		}
	}
	return ops, nil
}

// CreateRankKOperator expands rank-1 and rank-2 update operations (SYRK and
// SYR2K families, or HERK and HER2K under hermitian mode) over the cross
// product of layouts, fill modes, tiles and alignments. Hermitian updates
// with a row-major A operand carry a conjugate transform on A. The C
// operand alignment is always one.
func CreateRankKOperator(m *manifest.Manifest, layouts [][2]library.LayoutType,
	fills []library.FillMode, tiles []library.TileDescription, dt RankKDataType,
	alignments []int, blas library.BlasMode, epilogue library.EpilogueFunctor,
	swizzling library.SwizzlingFunctor) ([]*library.RankKOperation, error) {
	tiles, alignments, err := reduceDefault(m, tiles, alignments)
	if err != nil {
		return nil, err
	}

	var ops []*library.RankKOperation
	for _, layout := range layouts {
		for _, fill := range fills {
			for _, tile := range tiles {
				for _, align := range alignments {
					transform := library.TransformNone
					if blas == library.BlasHermitian && layout[0] == library.RowMajor {
						transform = library.TransformConjugate
					}
					a := library.NewTensorDescription(dt.A, layout[0], align, transform)
					c := library.NewTensorDescription(dt.C, layout[1], 1, library.TransformNone)
					for _, rank := range []int{1, 2} {
						op := library.NewRankKOperation(rank, blas, tile.MinComputeCapability,
							tile, a, c, fill, dt.Epilogue, epilogue, swizzling)
						if err := m.Append(op); err != nil {
							return nil, err
						}
						ops = append(ops, op)
					}
				}
			}
		}
	}
	return ops, nil
}

// CreateTrmmOperator expands triangular matrix multiply operations over
// layouts, side and fill and diagonal modes, tiles, alignments and the A
// operand transforms. The C operand alignment is capped at eight elements.
func CreateTrmmOperator(m *manifest.Manifest, layouts [][3]library.LayoutType,
	sides []library.SideMode, fills []library.FillMode, diags []library.DiagType,
	tiles []library.TileDescription, dt GemmDataType, alignments []int,
	transforms []library.ComplexTransform, epilogue library.EpilogueFunctor,
	swizzling library.SwizzlingFunctor) ([]*library.TrmmOperation, error) {
	tiles, alignments, err := reduceDefault(m, tiles, alignments)
	if err != nil {
		return nil, err
	}
	if len(transforms) == 0 {
		transforms = []library.ComplexTransform{library.TransformNone}
	}

	var ops []*library.TrmmOperation
	for _, layout := range layouts {
		for _, side := range sides {
			for _, fill := range fills {
				for _, diag := range diags {
					for _, tile := range tiles {
						for _, align := range alignments {
							for _, transform := range transforms {
								a := library.NewTensorDescription(dt.A, layout[0], align, transform)
								b := library.NewTensorDescription(dt.B, layout[1], align, library.TransformNone)
								c := library.NewTensorDescription(dt.C, layout[2], min(8, align), library.TransformNone)
								op := library.NewTrmmOperation(tile.MinComputeCapability, tile,
									side, fill, diag, a, b, c, dt.Epilogue, epilogue, swizzling)
								if err := m.Append(op); err != nil {
									return nil, err
								}
								ops = append(ops, op)
							}
						}
					}
				}
			}
		}
	}
	return ops, nil
}

// CreateSymmOperator expands symmetric (or hermitian) matrix multiply
// operations. The triangular A operand always uses alignment one and
// shares the first layout with B; the C operand alignment is capped at
// eight elements.
func CreateSymmOperator(m *manifest.Manifest, layouts [][2]library.LayoutType,
	sides []library.SideMode, fills []library.FillMode, tiles []library.TileDescription,
	dt GemmDataType, alignments []int, blas library.BlasMode,
	epilogue library.EpilogueFunctor, swizzling library.SwizzlingFunctor) ([]*library.SymmOperation, error) {
	tiles, alignments, err := reduceDefault(m, tiles, alignments)
	if err != nil {
		return nil, err
	}

	var ops []*library.SymmOperation
	for _, layout := range layouts {
		for _, side := range sides {
			for _, fill := range fills {
				for _, tile := range tiles {
					for _, align := range alignments {
						a := library.NewTensorDescription(dt.A, layout[0], 1, library.TransformNone)
						b := library.NewTensorDescription(dt.B, layout[0], align, library.TransformNone)
						c := library.NewTensorDescription(dt.C, layout[1], min(8, align), library.TransformNone)
						op := library.NewSymmOperation(blas, tile.MinComputeCapability, tile,
							side, fill, a, b, c, dt.Epilogue, epilogue, swizzling)
						if err := m.Append(op); err != nil {
							return nil, err
						}
						ops = append(ops, op)
					}
				}
			}
		}
	}
	return ops, nil
}
