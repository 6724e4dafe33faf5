// Package debug gates diagnostic logging behind the FBHAL_DEBUG environment variable.
package debug

import (
	"log"
	"os"
)

// Enabled is set when FBHAL_DEBUG is non-empty.
var Enabled bool

func init() {
	Enabled = os.Getenv("FBHAL_DEBUG") != ""
}

// Printf logs when debugging is enabled.
func Printf(format string, v ...interface{}) {
	if Enabled {
		log.Printf(format, v...)
	}
}
