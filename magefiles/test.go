//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups test targets.
type Test mg.Namespace

// All runs every package test.
func (Test) All() error {
	return sh.RunV(binGo, "test", "./...")
}

// Race runs every package test with the race detector.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Cover writes a coverage profile to bin/cover.out.
func (Test) Cover() error {
	mg.Deps(mkBinDir)
	return sh.RunV(binGo, "test", "-coverprofile", binaryDir+"/cover.out", "./...")
}
