package main

import "github.com/openshift-assisted/eventlog-analyzer/cmd/eventlog-analyzer/cmd"

func main() {
	cmd.Execute()
}
