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

// TileDescription holds the threadblock-level geometry of a variant: the
// threadblock tile shape, pipeline stage count, warp partition, owning math
// instruction, the compute-capability window the variant is feasible in,
// and the cluster shape for architectures that rasterize threadblock
// clusters.
type TileDescription struct {
	ThreadblockShape     [3]int
	Stages               int
	WarpCount            [3]int
	MathInstruction      MathInstruction
	MinComputeCapability int
	MaxComputeCapability int
	ClusterShape         [3]int
}

// NewTileDescription constructs a TileDescription with the default 1x1x1
// cluster shape.
func NewTileDescription(threadblock [3]int, stages int, warpCount [3]int, mi MathInstruction, minCC, maxCC int) TileDescription {
	return TileDescription{
		ThreadblockShape:     threadblock,
		Stages:               stages,
		WarpCount:            warpCount,
		MathInstruction:      mi,
		MinComputeCapability: minCC,
		MaxComputeCapability: maxCC,
		ClusterShape:         [3]int{1, 1, 1},
	}
}

// NewClusterTileDescription constructs a TileDescription with an explicit
// cluster shape. A zero stage count means the stage depth is deduced by the
// kernel at build time.
func NewClusterTileDescription(threadblock [3]int, stages int, warpCount [3]int, mi MathInstruction, minCC, maxCC int, cluster [3]int) TileDescription {
	td := NewTileDescription(threadblock, stages, warpCount, mi, minCC, maxCC)
	td.ClusterShape = cluster
	return td
}

// Validate reports a contract violation in the capability window.
func (td TileDescription) Validate() error {
	if td.MinComputeCapability <= 0 || td.MaxComputeCapability <= 0 {
		return fmt.Errorf("tile %dx%dx%d: compute capability window [%d, %d] must be positive",
			td.ThreadblockShape[0], td.ThreadblockShape[1], td.ThreadblockShape[2],
			td.MinComputeCapability, td.MaxComputeCapability)
	}
	if td.MinComputeCapability > td.MaxComputeCapability {
		return fmt.Errorf("tile %dx%dx%d: min compute capability %d exceeds max %d",
			td.ThreadblockShape[0], td.ThreadblockShape[1], td.ThreadblockShape[2],
			td.MinComputeCapability, td.MaxComputeCapability)
	}
	return nil
}

// Name returns the "MxN" threadblock segment of a procedural name.
func (td TileDescription) Name() string {
	return fmt.Sprintf("%dx%d", td.ThreadblockShape[0], td.ThreadblockShape[1])
}

// DepthName returns the "KxStages" segment of a procedural name.
func (td TileDescription) DepthName() string {
	return fmt.Sprintf("%dx%d", td.ThreadblockShape[2], td.Stages)
}

// ShapeName returns the full "MxNxK" threadblock segment used by 3.x names.
func (td TileDescription) ShapeName() string {
	return fmt.Sprintf("%dx%dx%d", td.ThreadblockShape[0], td.ThreadblockShape[1], td.ThreadblockShape[2])
}

// ClusterName returns the "XxYxZ" cluster segment used by 3.x names.
func (td TileDescription) ClusterName() string {
	return fmt.Sprintf("%dx%dx%d", td.ClusterShape[0], td.ClusterShape[1], td.ClusterShape[2])
}
