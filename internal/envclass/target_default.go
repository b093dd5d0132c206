//go:build !emulatorbuild

package envclass

const builtForEmulator = false
