package report

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
)

// CaptureEnvironment snapshots the machine the audit ran on. Host probing
// is best effort: failures leave the corresponding fields empty instead of
// failing the run.
func CaptureEnvironment() Environment {
	env := Environment{
		CPUCount:  runtime.NumCPU(),
		GoVersion: runtime.Version(),
	}
	if info, err := host.Info(); err == nil && info != nil {
		env.Hostname = info.Hostname
		env.OS = info.OS
		env.Platform = info.Platform
		env.KernelVersion = info.KernelVersion
	}
	return env
}
