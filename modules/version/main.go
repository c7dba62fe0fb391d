package version

import (
	"strings"
)

var (
	Program    = "logonhound"
	Commit     = ""
	Version    = ""
	Copyright  = "(c) 2024 Lars Karlslund"
	Disclaimer = "This program comes with ABSOLUTELY NO WARRANTY"
)

func ProgramVersionShort() string {
	return strings.Trim(Program+" "+VersionStringShort(), " ")
}

// VersionStringShort returns the version and commit baked in at build time
func VersionStringShort() string {
	var parts []string
	if Version != "" {
		v := Version
		if strings.Contains(Version, "-") {
			v += " (non-release)"
		}
		parts = append(parts, v)
	}
	if Commit != "" && !strings.Contains(Version, Commit) {
		parts = append(parts, "(commit "+Commit+")")
	}
	if len(parts) == 0 {
		return "(unknown build)"
	}
	return strings.Join(parts, " ")
}

func VersionString() string {
	return ProgramVersionShort() + ", " + Copyright + ", " + Disclaimer
}
