// Package main provides the CLI for the LeapGraph schema evolution analyzer.
package main

import "github.com/leapstack-labs/leapgraph/internal/cli"

func main() {
	cli.Execute()
}
