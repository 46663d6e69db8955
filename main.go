// Package main is the entry point for the ctorfield CLI.
package main

import "ctorfield.dev/pkg/ctorfield/cmd"

func main() {
	cmd.Execute()
}
