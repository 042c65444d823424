// Package main is the entry point for the seedclean CLI.
package main

import "seedclean.dev/pkg/seedclean/cmd"

func main() {
	cmd.Execute()
}
