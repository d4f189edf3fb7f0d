package config

import (
	"fmt"
	"os"
)

// Exitf writes a formatted error message to stderr and exits with code.
func Exitf(code int, format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(code)
}
