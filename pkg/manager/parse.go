package manager

import (
	"strings"
	"unicode"
)

// lineParser turns one line of listing output into a package, or reports
// that the line does not have the backend's shape.
type lineParser func(line string) (Package, bool)

var parsers = map[Kind]lineParser{
	KindPkg: parsePkgLine,
	KindApt: parseAptLine,
	KindPip: parsePipLine,
}

// Parse converts raw listing output into packages, in output order.
// Lines that do not match the backend's format are skipped.
func Parse(k Kind, raw string) []Package {
	parse, ok := parsers[k]
	if !ok {
		return nil
	}

	packages := []Package{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if pkg, ok := parse(line); ok {
			packages = append(packages, pkg)
		}
	}

	return packages
}

// parsePkgLine parses "name/version". The version is the second
// slash-separated field, taken verbatim.
func parsePkgLine(line string) (Package, bool) {
	parts := strings.Split(line, "/")
	if len(parts) < 2 {
		return Package{}, false
	}
	return Package{Name: parts[0], Version: parts[1]}, true
}

// parseAptLine parses "name/suite,now version arch [installed]" and keeps
// only the first whitespace-delimited token after the slash.
func parseAptLine(line string) (Package, bool) {
	parts := strings.Split(line, "/")
	if len(parts) < 2 {
		return Package{}, false
	}

	version := parts[1]
	if i := strings.IndexFunc(version, unicode.IsSpace); i >= 0 {
		version = version[:i]
	}
	if version == "" {
		return Package{}, false
	}

	return Package{Name: parts[0], Version: version}, true
}

// parsePipLine parses the columns of "pip list", skipping the header and
// the dashed separator.
func parsePipLine(line string) (Package, bool) {
	if strings.Contains(line, "Package") || strings.Contains(line, "---") {
		return Package{}, false
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Package{}, false
	}

	return Package{Name: fields[0], Version: fields[1]}, true
}
