package hostinfo

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Probe abstracts host introspection for testability.
type Probe interface {
	CPUCount() int
	MemoryGB() (int, error)
}

// SystemProbe implements Probe against the running machine.
type SystemProbe struct{}

func (SystemProbe) CPUCount() int {
	return runtime.NumCPU()
}

// MemoryGB reads MemTotal from /proc/meminfo and rounds to whole GiB.
func (SystemProbe) MemoryGB() (int, error) {
	kb, err := readMemTotalKB("/proc/meminfo")
	if err != nil {
		return 0, err
	}
	gb := int((kb + (1 << 20 / 2)) / (1 << 20))
	if gb < 1 {
		gb = 1
	}
	return gb, nil
}

// readMemTotalKB parses the "MemTotal: N kB" line from a meminfo file.
func readMemTotalKB(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			break
		}
		kb, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse MemTotal: %w", err)
		}
		return kb, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("MemTotal not found in %s", path)
}
