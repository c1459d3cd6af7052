//go:build !quilldebug

package intersection

const debugChecks = false
