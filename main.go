// Package main is the entry point for the revisit CLI.
package main

import "revisit.dev/pkg/revisit/cmd"

func main() {
	cmd.Execute()
}
