package testhelper

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

// init disables logging for tests unless explicitly enabled
func init() {
	if testing.Testing() && os.Getenv("CALCD_TEST_LOG") == "" {
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}
}
