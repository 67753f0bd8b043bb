//go:build !release

package assert

import "github.com/bloeys/shadowmapping/logging"

// T panics with the formatted message when check is false.
// Builds with the 'release' tag compile asserts away.
func T(check bool, msg string, args ...any) {
	if !check {
		logging.ErrLog.Panicf("Assert failed: "+msg, args...)
	}
}
