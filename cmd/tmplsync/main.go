// Package main provides the tmplsync CLI.
package main

import "github.com/mesh-intelligence/tmplsync/internal/cli"

func main() {
	cli.Execute()
}
