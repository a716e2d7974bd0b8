// Package clitest provides compliance test suites for [cli.Backend] implementations.
//
// Test authors call [RunBackendTests] with a factory function that returns the
// implementation under test. The suite checks the argv contract of
// [cli.Builder] and the normalization contract of [cli.Parser] that every
// agent backend shares.
//
// Example usage in a backend test file:
//
//	package mybackend_test
//
//	import (
//	    "testing"
//	    "github.com/dmora/hire/engine/cli"
//	    "github.com/dmora/hire/engine/cli/mybackend"
//	    "github.com/dmora/hire/enginetest/clitest"
//	)
//
//	func TestCompliance(t *testing.T) {
//	    clitest.RunBackendTests(t, func() cli.Backend {
//	        return mybackend.New()
//	    })
//	}
package clitest
