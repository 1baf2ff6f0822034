//go:build mage

// Package main provides build targets for tmplsync using Mage.
//
// Usage:
//
//	mage build       Compile tmplsync to bin/
//	mage install     Install tmplsync to GOPATH/bin
//	mage clean       Remove build artifacts
//	mage lint        Run golangci-lint
//	mage vet         Run go vet
//	mage test:all    Run all package tests
//	mage test:race   Run all package tests with -race
//	mage test:cover  Write a coverage profile to bin/cover.out
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "tmplsync"
	binaryDir  = "bin"
	cmdDir     = "./cmd/tmplsync"
)

// Build compiles the tmplsync binary to bin/.
func Build() error {
	mg.Deps(mkBinDir)
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

func mkBinDir() error {
	return os.MkdirAll(binaryDir, 0o755)
}
