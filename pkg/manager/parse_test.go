package manager

import (
	"reflect"
	"strings"
	"testing"
)

func TestParsePkg(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []Package
	}{
		{
			name:     "name and suite",
			raw:      "htop/stable",
			expected: []Package{{Name: "htop", Version: "stable"}},
		},
		{
			name: "termux listing",
			raw: "Listing... Done\n" +
				"bash/stable,now 5.2.15-1 aarch64 [installed]\n" +
				"curl/stable,now 8.4.0 aarch64 [installed]\n",
			expected: []Package{
				{Name: "bash", Version: "stable,now 5.2.15-1 aarch64 [installed]"},
				{Name: "curl", Version: "stable,now 8.4.0 aarch64 [installed]"},
			},
		},
		{
			name:     "only the second slash field is kept",
			raw:      "a/b/c",
			expected: []Package{{Name: "a", Version: "b"}},
		},
		{
			name:     "name only is dropped",
			raw:      "htop\n",
			expected: []Package{},
		},
		{
			name:     "blank lines around content",
			raw:      "\n\n  \nhtop/stable\n\n",
			expected: []Package{{Name: "htop", Version: "stable"}},
		},
		{
			name:     "crlf line endings",
			raw:      "htop/stable\r\nbash/5.2\r\n",
			expected: []Package{{Name: "htop", Version: "stable"}, {Name: "bash", Version: "5.2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(KindPkg, tt.raw)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Parse() = %#v, want %#v", got, tt.expected)
			}
		})
	}
}

func TestParsePkgNameIsPrefixBeforeFirstSlash(t *testing.T) {
	raw := strings.Join([]string{
		"htop/stable",
		"no-slash-here",
		"lib/x/y",
		"/leading",
		"trailing/",
		"a b/c d",
	}, "\n")

	lines := strings.Split(raw, "\n")
	for _, pkg := range Parse(KindPkg, raw) {
		found := false
		for _, line := range lines {
			if i := strings.Index(line, "/"); i >= 0 && line[:i] == pkg.Name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("package %q does not come from the text before a first slash", pkg.Name)
		}
	}
}

func TestParseApt(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []Package
	}{
		{
			// The version is the first whitespace token after the first
			// slash, so the suite name wins over the real version.
			name:     "first token after the slash",
			raw:      "vim/stable 2:8.2.0 amd64 [installed]",
			expected: []Package{{Name: "vim", Version: "stable"}},
		},
		{
			name: "apt list output",
			raw: "Listing... Done\n" +
				"vim/jammy,now 2:8.2.3995-1ubuntu2 amd64 [installed]\n" +
				"zlib1g/jammy,now 1:1.2.11 amd64 [installed,automatic]\n",
			expected: []Package{
				{Name: "vim", Version: "jammy,now"},
				{Name: "zlib1g", Version: "jammy,now"},
			},
		},
		{
			name:     "version with no suffix",
			raw:      "git/2.43.0",
			expected: []Package{{Name: "git", Version: "2.43.0"}},
		},
		{
			name:     "empty version token is dropped",
			raw:      "vim/ 2:8.2.0 amd64",
			expected: []Package{},
		},
		{
			name:     "no slash is dropped",
			raw:      "WARNING: apt does not have a stable CLI interface.",
			expected: []Package{},
		},
		{
			name:     "tab separated suffix",
			raw:      "curl/8.4.0\tamd64",
			expected: []Package{{Name: "curl", Version: "8.4.0"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(KindApt, tt.raw)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Parse() = %#v, want %#v", got, tt.expected)
			}
		})
	}
}

func TestParsePip(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []Package
	}{
		{
			name:     "header separator and one row",
			raw:      "Package    Version\n------- -------\nrequests 2.31.0\n",
			expected: []Package{{Name: "requests", Version: "2.31.0"}},
		},
		{
			name:     "header alone",
			raw:      "Package    Version",
			expected: []Package{},
		},
		{
			name:     "extra columns ignored",
			raw:      "mypkg   0.1.0   /home/user/src/mypkg\n",
			expected: []Package{{Name: "mypkg", Version: "0.1.0"}},
		},
		{
			name:     "name only is dropped",
			raw:      "orphan\n",
			expected: []Package{},
		},
		{
			name:     "aligned columns",
			raw:      "certifi            2023.7.22\nurllib3            2.0.7\n",
			expected: []Package{{Name: "certifi", Version: "2023.7.22"}, {Name: "urllib3", Version: "2.0.7"}},
		},
		{
			name:     "any line containing Package is skipped",
			raw:      "PackageKit 1.0\nsix 1.16.0\n",
			expected: []Package{{Name: "six", Version: "1.16.0"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(KindPip, tt.raw)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Parse() = %#v, want %#v", got, tt.expected)
			}
		})
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			got := Parse(k, "")
			if len(got) != 0 {
				t.Errorf("Parse(%s, \"\") = %v, want empty", k, got)
			}
		})
	}
}

func TestParseKeepsDuplicatesAndOrder(t *testing.T) {
	raw := "zsh/5.9\nbash/5.2\nzsh/5.9\n"
	got := Parse(KindPkg, raw)
	expected := []Package{
		{Name: "zsh", Version: "5.9"},
		{Name: "bash", Version: "5.2"},
		{Name: "zsh", Version: "5.9"},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Parse() = %v, want %v", got, expected)
	}
}

func TestParseSurvivesOverlongLine(t *testing.T) {
	raw := "a/1\n" + strings.Repeat("x", 2<<20) + "\nb/2\nc/3\n"

	got := Parse(KindPkg, raw)
	expected := []Package{
		{Name: "a", Version: "1"},
		{Name: "b", Version: "2"},
		{Name: "c", Version: "3"},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Parse() kept %d packages, want %v", len(got), expected)
	}
}

func TestParseUnknownKind(t *testing.T) {
	if got := Parse(Kind(9), "htop/stable"); got != nil {
		t.Errorf("Parse(unknown) = %v, want nil", got)
	}
}
