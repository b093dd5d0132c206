package probes

// Built-in evidence lists. These are versioned with the binary: revisions to
// tooling names and artifact paths land here, and callers extend them per
// run through the config (extra_paths / extra_images).

// suspiciousPaths are artifacts associated with privilege-escalation tooling.
// Presence of any on a production device is evidence of compromise.
var suspiciousPaths = []string{
	"/Applications/Cydia.app",
	"/Applications/Sileo.app",
	"/Applications/Zebra.app",
	"/Applications/FakeCarrier.app",
	"/Applications/Icy.app",
	"/Applications/SBSettings.app",
	"/Library/MobileSubstrate/MobileSubstrate.dylib",
	"/Library/MobileSubstrate/DynamicLibraries",
	"/usr/libexec/cydia",
	"/usr/libexec/sftp-server",
	"/usr/sbin/sshd",
	"/usr/bin/ssh",
	"/usr/sbin/frida-server",
	"/bin/bash",
	"/etc/apt",
	"/private/var/lib/apt",
	"/private/var/stash",
	"/private/var/cache/apt",
	"/var/jb",
	"/system/bin/su",
	"/system/xbin/su",
	"/sbin/.magisk",
}

// emulatorBenignPaths appear inside virtualized/emulated hosts through
// bind-mount style filesystem layouts: the host OS legitimately carries
// them, so they carry no security meaning there and the path checks skip
// them when the environment classifier reports an emulated host.
var emulatorBenignPaths = map[string]struct{}{
	"/bin/bash":      {},
	"/usr/sbin/sshd": {},
	"/usr/bin/ssh":   {},
	"/etc/apt":       {},
}

// WatchPaths returns the artifact paths worth watching for appearance at
// runtime: the built-in suspicious paths plus any caller extras. The returned
// slice is owned by the caller.
func WatchPaths(extra []string) []string {
	out := make([]string, 0, len(suspiciousPaths)+len(extra))
	out = append(out, suspiciousPaths...)
	out = append(out, extra...)
	return out
}

// restrictedWritePaths are locations expected to be immutable on an
// uncompromised host. A successful write under any of them means the system
// partition protection does not hold.
var restrictedWritePaths = []string{
	"/",
	"/private",
	"/usr",
}

// symlinkCheckedPaths are directories that are ordinary directories on a
// genuine device. Repackaged filesystem layouts relocate them behind
// symbolic links to free up space on the system partition.
var symlinkCheckedPaths = []string{
	"/Applications",
	"/Library/Ringtones",
	"/Library/Wallpaper",
	"/usr/arm-apple-darwin9",
	"/usr/include",
	"/usr/libexec",
	"/usr/share",
}

// imageDenyList names injection/hooking/tracing frameworks as they appear in
// loaded module paths. Matched case-insensitively as substrings.
var imageDenyList = []string{
	"frida",
	"fridagadget",
	"cynject",
	"cycript",
	"substrate",
	"substitute",
	"libhooker",
	"sslkillswitch",
	"ssl-kill-switch",
	"shadow.dylib",
	"xposed",
	"libinjector",
}
