package vmbench

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// HostInfo describes the machine a benchmark ran on. Backend timings are
// only comparable between reports with the same HostInfo.
type HostInfo struct {
	GOOS      string   `json:"goos" yaml:"goos"`
	GOARCH    string   `json:"goarch" yaml:"goarch"`
	GoVersion string   `json:"go_version" yaml:"go_version"`
	NumCPU    int      `json:"num_cpu" yaml:"num_cpu"`
	Features  []string `json:"features" yaml:"features"`
}

// Host reports the current machine.
func Host() HostInfo {
	return HostInfo{
		GOOS:      runtime.GOOS,
		GOARCH:    runtime.GOARCH,
		GoVersion: runtime.Version(),
		NumCPU:    runtime.NumCPU(),
		Features:  cpuFeatures(),
	}
}

func (h HostInfo) String() string {
	s := h.GOOS + "/" + h.GOARCH + " " + h.GoVersion
	if len(h.Features) > 0 {
		s += " [" + strings.Join(h.Features, " ") + "]"
	}
	return s
}

type feature struct {
	name string
	has  bool
}

func cpuFeatures() []string {
	var features []feature
	switch runtime.GOARCH {
	case "amd64", "386":
		features = []feature{
			{"sse2", cpu.X86.HasSSE2},
			{"sse42", cpu.X86.HasSSE42},
			{"ssse3", cpu.X86.HasSSSE3},
			{"popcnt", cpu.X86.HasPOPCNT},
			{"fma", cpu.X86.HasFMA},
			{"avx", cpu.X86.HasAVX},
			{"avx2", cpu.X86.HasAVX2},
			{"avx512f", cpu.X86.HasAVX512F},
			{"bmi2", cpu.X86.HasBMI2},
		}
	case "arm64":
		features = []feature{
			{"fp", cpu.ARM64.HasFP},
			{"asimd", cpu.ARM64.HasASIMD},
			{"atomics", cpu.ARM64.HasATOMICS},
			{"sve", cpu.ARM64.HasSVE},
		}
	}

	var out []string
	for _, f := range features {
		if f.has {
			out = append(out, f.name)
		}
	}
	return out
}
