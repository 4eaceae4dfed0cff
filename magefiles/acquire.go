//go:build mage

package main

import "github.com/magefile/mage/sh"

// Acquire downloads and compresses the newest papers on the configured
// topic into data/.
func Acquire() error {
	return sh.RunV("go", "run", cmdPkg, "acquire")
}
