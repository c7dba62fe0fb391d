package util

import (
	"path/filepath"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Upper applies full Unicode upper casing, so special casings like ß expand to SS
func Upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// ResolvePath returns name unchanged when it is absolute or "-", otherwise it is placed in folder
func ResolvePath(folder, name string) string {
	if name == "" || name == "-" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(folder, name)
}
