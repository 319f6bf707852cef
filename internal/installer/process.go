package installer

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-ps"
)

// RunningInstances returns the PIDs of live processes whose executable is fileName.
// The current process is skipped.
func RunningInstances(fileName string) ([]int, error) {
	processList, err := ps.Processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	thisProcessID := os.Getpid()

	var pids []int

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if !strings.EqualFold(process.Executable(), fileName) {
			continue
		}

		pids = append(pids, process.Pid())
	}

	return pids, nil
}
