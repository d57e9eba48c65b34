// Package manager is the package-manager abstraction: the supported backends,
// the exact commands each one runs, and the parsers for their listing output.
package manager

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies one of the supported package-manager backends.
type Kind int

const (
	// KindPkg is Termux's pkg.
	KindPkg Kind = iota
	// KindApt is Debian/Ubuntu's apt.
	KindApt
	// KindPip is Python's pip.
	KindPip
)

// ErrUnknownKind is returned for a backend name or value outside the supported set.
var ErrUnknownKind = errors.New("unknown backend")

var kindNames = [...]string{
	KindPkg: "pkg",
	KindApt: "apt",
	KindPip: "pip",
}

// Kinds returns every backend in cyclic order.
func Kinds() []Kind {
	return []Kind{KindPkg, KindApt, KindPip}
}

// Valid reports whether k is one of the supported backends.
func (k Kind) Valid() bool {
	return k >= KindPkg && k <= KindPip
}

// String returns the short backend name ("pkg", "apt", "pip").
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Next returns the following backend in the cycle pkg -> apt -> pip -> pkg.
func (k Kind) Next() Kind {
	switch k {
	case KindPkg:
		return KindApt
	case KindApt:
		return KindPip
	default:
		return KindPkg
	}
}

// ParseKind maps a backend name to its Kind, ignoring case and surrounding space.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range Kinds() {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (want pkg, apt or pip)", ErrUnknownKind, name)
}

// MarshalText implements encoding.TextMarshaler so a Kind can live in config files.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Package is one installed package as reported by a backend's listing.
type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Row formats the package the way the list view shows it.
func (p Package) Row() string {
	return p.Name + " " + p.Version
}
