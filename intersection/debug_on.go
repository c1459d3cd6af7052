//go:build quilldebug

package intersection

const debugChecks = true
