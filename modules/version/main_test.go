package version

import "testing"

func TestVersionStringShort(t *testing.T) {
	tests := []struct {
		version, commit string
		want            string
	}{
		{"", "", "(unknown build)"},
		{"v1.2.0", "", "v1.2.0"},
		{"v1.2.0-3-gabcdef", "", "v1.2.0-3-gabcdef (non-release)"},
		{"v1.2.0", "abcdef", "v1.2.0 (commit abcdef)"},
		{"v1.2.0-3-gabcdef", "abcdef", "v1.2.0-3-gabcdef (non-release)"},
		{"", "abcdef", "(commit abcdef)"},
	}
	oldversion, oldcommit := Version, Commit
	defer func() { Version, Commit = oldversion, oldcommit }()
	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := VersionStringShort(); got != tt.want {
			t.Errorf("VersionStringShort() with version %q commit %q = %q, want %q", tt.version, tt.commit, got, tt.want)
		}
	}
}
