//go:build !debug
// +build !debug

package dipolar

func DebugLog(format string, args ...interface{})     {}
func DebugLogOnce(format string, args ...interface{}) {}
