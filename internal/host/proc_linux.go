//go:build linux

package host

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type procStatusInfo struct{}

func newProcessInfo() ProcessInfo { return procStatusInfo{} }

func (procStatusInfo) TracerPID() (int, error) {
	data, err := os.ReadFile("/proc/self/status")
	if err != nil {
		return 0, fmt.Errorf("read /proc/self/status: %w", ErrInconclusive)
	}
	pid, ok := parseTracerPID(data)
	if !ok {
		return 0, fmt.Errorf("TracerPid field missing: %w", ErrInconclusive)
	}
	return pid, nil
}

func (procStatusInfo) ParentPID() int { return os.Getppid() }

func (procStatusInfo) InitPID() int { return 1 }

// parseTracerPID extracts the TracerPid field from /proc/<pid>/status content.
func parseTracerPID(status []byte) (int, bool) {
	sc := bufio.NewScanner(bytes.NewReader(status))
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "TracerPid:") {
			continue
		}
		val := strings.TrimSpace(strings.TrimPrefix(line, "TracerPid:"))
		pid, err := strconv.Atoi(val)
		if err != nil {
			return 0, false
		}
		return pid, true
	}
	return 0, false
}
