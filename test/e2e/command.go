package e2e

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/vladimirvivien/gexe/exec"
)

// runCommand runs command and returns its stdout. stderr is only reported on failure.
func runCommand(command string, env []string) (string, error) {
	stdout := bytes.NewBufferString("")
	stderr := bytes.NewBufferString("")

	proc := exec.NewProc(command)
	proc.Command().Stdout = stdout
	proc.Command().Stderr = stderr

	if len(env) > 0 {
		proc.Command().Env = env
	}

	proc.Start().Wait()

	err := proc.Err()
	if err != nil {
		return stdout.String(), fmt.Errorf("failed to run command (%w): stdout:%s stderr:%s", err, stdout.String(), stderr.String())
	}

	return stdout.String(), nil
}

func buildBinary(output string) error {
	command := fmt.Sprintf("go build -o %s ../../cmd/eventlog-analyzer", output)

	_, err := runCommand(command, nil)

	return err
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
