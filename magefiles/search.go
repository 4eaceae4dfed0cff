//go:build mage

package main

import "github.com/magefile/mage/sh"

// Search lists the newest papers on the configured topic without
// downloading them.
func Search() error {
	return sh.RunV("go", "run", cmdPkg, "search")
}
