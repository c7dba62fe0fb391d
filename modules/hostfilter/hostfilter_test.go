package hostfilter

import (
	"testing"
)

func TestFilterMatch(t *testing.T) {
	tests := []struct {
		name             string
		include, exclude []string
		host             string
		want             bool
	}{
		{"no patterns", nil, nil, "srv1.corp.local", true},
		{"blank patterns", []string{""}, []string{""}, "srv1.corp.local", true},
		{"include hit", []string{"srv*"}, nil, "srv1.corp.local", true},
		{"include miss", []string{"srv*"}, nil, "ws01.corp.local", false},
		{"include is case insensitive", []string{"SRV*.CORP.LOCAL"}, nil, "srv1.Corp.Local", true},
		{"exclude hit", nil, []string{"*.lab.corp.local"}, "dc1.lab.corp.local", false},
		{"exclude miss", nil, []string{"*.lab.corp.local"}, "dc1.corp.local", true},
		{"exclude wins over include", []string{"*.corp.local"}, []string{"dc?.*"}, "dc1.corp.local", false},
		{"any include", []string{"ws*", "srv*"}, nil, "srv2.corp.local", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.include, tt.exclude)
			if err != nil {
				t.Fatal(err)
			}
			if got := f.Match(tt.host); got != tt.want {
				t.Errorf("Match(%q) with %v = %v, want %v", tt.host, f, got, tt.want)
			}
		})
	}
}

func TestFilterEmpty(t *testing.T) {
	var f *Filter
	if !f.Empty() || !f.Match("anything") {
		t.Error("nil filter must let everything through")
	}
	f, _ = New(nil, []string{"x*"})
	if f.Empty() {
		t.Error("filter with an exclude pattern is not empty")
	}
	if f.String() != "-x*" {
		t.Errorf("String() = %q", f.String())
	}
}

func TestFilterInvalidPattern(t *testing.T) {
	if _, err := New([]string{"srv["}, nil); err == nil {
		t.Error("expected error for unterminated range")
	}
}
