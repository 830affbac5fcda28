// Command payload-tool builds and verifies namespace-multiplexed block
// payloads from the command line, grounded on the testable run(args,
// stdout, stderr) entrypoint in clients/go/cmd/rubin-node/main.go.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "usage: payload-tool <build|verify> [flags]")
		return 2
	}
	switch args[0] {
	case "build":
		return runBuild(args[1:], stdout, stderr)
	case "verify":
		return runVerify(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown subcommand %q (want build or verify)\n", args[0])
		return 2
	}
}
