// Package main is the entry point for the SeeSharp CLI.
package main

import "seesharp.dev/pkg/seesharp/cmd"

func main() {
	cmd.Execute()
}
