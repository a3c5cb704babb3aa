// Command calc is a terminal calculator.
//
// Usage:
//
//	calc              interactive calculator
//	calc eval 2*3==   print the display after replaying keys
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
