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

// EpilogueFunctor selects the elementwise epilogue applied to accumulators.
type EpilogueFunctor int

const (
	LinearCombination EpilogueFunctor = iota
	LinearCombinationClamp
)

func (e EpilogueFunctor) Name() (string, error) {
	switch e {
	case LinearCombination:
		return "linear_combination", nil
	case LinearCombinationClamp:
		return "linear_combination_clamp", nil
	}
	return "", fmt.Errorf("unmapped EpilogueFunctor %d", int(e))
}

// SwizzlingFunctor selects the threadblock rasterization order.
type SwizzlingFunctor int

const (
	SwizzleIdentity1 SwizzlingFunctor = iota
	SwizzleIdentity2
	SwizzleIdentity4
	SwizzleIdentity8
	SwizzleStridedDgradIdentity1
	SwizzleStreamK
)

func (s SwizzlingFunctor) Name() (string, error) {
	switch s {
	case SwizzleIdentity1:
		return "identity1", nil
	case SwizzleIdentity2:
		return "identity2", nil
	case SwizzleIdentity4:
		return "identity4", nil
	case SwizzleIdentity8:
		return "identity8", nil
	case SwizzleStridedDgradIdentity1:
		return "strided_dgrad_identity1", nil
	case SwizzleStreamK:
		return "streamk", nil
	}
	return "", fmt.Errorf("unmapped SwizzlingFunctor %d", int(s))
}

// KernelSchedule selects the mainloop schedule of a 3.x kernel.
type KernelSchedule int

const (
	KernelScheduleAuto KernelSchedule = iota
	KernelMultistage
	KernelTma
	KernelTmaPingpong
	KernelTmaCooperative
	KernelTmaFP8FastAccum
	KernelTmaPingpongFP8FastAccum
	KernelTmaCooperativeFP8FastAccum
	KernelCpAsync
)

// Suffix returns the procedural-name suffix for the schedule. ScheduleAuto
// contributes no suffix.
func (k KernelSchedule) Suffix() (string, error) {
	switch k {
	case KernelScheduleAuto:
		return "", nil
	case KernelMultistage:
		return "cpasync", nil
	case KernelTma:
		return "warpspecialized", nil
	case KernelTmaPingpong:
		return "warpspecialized_pingpong", nil
	case KernelTmaCooperative:
		return "warpspecialized_cooperative", nil
	case KernelTmaFP8FastAccum:
		return "warpspecialized_fp8_fastaccum", nil
	case KernelTmaPingpongFP8FastAccum:
		return "warpspecialized_pingpong_fp8_fastaccum", nil
	case KernelTmaCooperativeFP8FastAccum:
		return "warpspecialized_cooperative_fp8_fastaccum", nil
	case KernelCpAsync:
		return "cpasync_warpspecialized", nil
	}
	return "", fmt.Errorf("unmapped KernelSchedule %d", int(k))
}

// EpilogueSchedule selects the epilogue data path of a 3.x kernel.
type EpilogueSchedule int

const (
	EpilogueScheduleAuto EpilogueSchedule = iota
	EpilogueNoSmem
	EpilogueTma
	EpilogueTmaCooperative
)

// Suffix returns the procedural-name suffix for the epilogue schedule.
// ScheduleAuto contributes no suffix.
func (e EpilogueSchedule) Suffix() (string, error) {
	switch e {
	case EpilogueScheduleAuto:
		return "", nil
	case EpilogueNoSmem:
		return "epi_nosmem", nil
	case EpilogueTma:
		return "epi_tma", nil
	case EpilogueTmaCooperative:
		return "epi_tma", nil
	}
	return "", fmt.Errorf("unmapped EpilogueSchedule %d", int(e))
}

// TileScheduler selects how threadblock tiles are assigned to compute units.
type TileScheduler int

const (
	TileSchedulerDefault TileScheduler = iota
	TileSchedulerPersistent
	TileSchedulerStreamK
)

// Suffix returns the procedural-name suffix for the tile scheduler. The
// default and persistent schedulers contribute no suffix; only non-default
// assignment strategies are name-distinguishing.
func (t TileScheduler) Suffix() (string, error) {
	switch t {
	case TileSchedulerDefault, TileSchedulerPersistent:
		return "", nil
	case TileSchedulerStreamK:
		return "stream_k", nil
	}
	return "", fmt.Errorf("unmapped TileScheduler %d", int(t))
}

// SchedulePair couples a kernel schedule with a compatible epilogue
// schedule. Factories require pairs rather than independent axes so that
// incompatible combinations cannot be expressed.
type SchedulePair struct {
	Kernel   KernelSchedule
	Epilogue EpilogueSchedule
}
