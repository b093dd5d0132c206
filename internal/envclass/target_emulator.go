//go:build emulatorbuild

package envclass

// Builds targeting an emulated host carry the emulatorbuild tag.
const builtForEmulator = true
