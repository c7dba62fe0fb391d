package hostfilter

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

type hostGlob struct {
	globstr string
	m       glob.Glob
}

// Filter selects host names by case insensitive glob patterns. A host passes if it matches
// any include pattern (or there are none) and no exclude pattern.
type Filter struct {
	include []hostGlob
	exclude []hostGlob
}

func New(include, exclude []string) (*Filter, error) {
	var f Filter
	var err error
	if f.include, err = compile(include); err != nil {
		return nil, err
	}
	if f.exclude, err = compile(exclude); err != nil {
		return nil, err
	}
	return &f, nil
}

func compile(patterns []string) ([]hostGlob, error) {
	var result []hostGlob
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		pattern = strings.ToLower(pattern)
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid host pattern %q", pattern)
		}
		result = append(result, hostGlob{globstr: pattern, m: g})
	}
	return result, nil
}

// Empty is true when the filter lets everything through
func (f *Filter) Empty() bool {
	return f == nil || (len(f.include) == 0 && len(f.exclude) == 0)
}

func (f *Filter) Match(host string) bool {
	if f.Empty() {
		return true
	}
	host = strings.ToLower(host)
	if len(f.include) > 0 && !matchAny(f.include, host) {
		return false
	}
	return !matchAny(f.exclude, host)
}

func matchAny(globs []hostGlob, host string) bool {
	for _, hg := range globs {
		if hg.m.Match(host) {
			return true
		}
	}
	return false
}

func (f *Filter) String() string {
	if f.Empty() {
		return "all hosts"
	}
	var parts []string
	for _, hg := range f.include {
		parts = append(parts, "+"+hg.globstr)
	}
	for _, hg := range f.exclude {
		parts = append(parts, "-"+hg.globstr)
	}
	return strings.Join(parts, " ")
}
