package clean

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClean_Suffixes(t *testing.T) {
	c := Cleaner{Suffixes: []string{"K302", "DEFAULT PROJECT"}}

	cases := []struct {
		in, want string
	}{
		{"NSF CAREER K302777", "NSF CAREER"},
		{"NSF Small K302999", "NSF Small"},
		{"Doty DEFAULT PROJECT 13U00", "Doty"},
		{"No marker here", "No marker here"},
	}
	for _, tc := range cases {
		if got := c.Clean(tc.in); got != tc.want {
			t.Errorf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClean_SuffixStopsAtFirstMatch(t *testing.T) {
	c := Cleaner{Suffixes: []string{"AAA", "BBB"}}
	// Only the first matching marker truncates; BBB is already gone.
	if got := c.Clean("name AAA BBB tail"); got != "name" {
		t.Errorf("Clean = %q, want %q", got, "name")
	}
}

func TestClean_Substrings(t *testing.T) {
	c := Cleaner{Substrings: []string{"Doty", "CS "}}
	if got := c.Clean("Doty CS CAREER"); got != "CAREER" {
		t.Errorf("Clean = %q, want CAREER", got)
	}
}

func TestClean_RenameWinsOutright(t *testing.T) {
	c := Cleaner{
		Renames:    map[string]string{"Long ugly project name NSF CAREER K20304932": "CAREER"},
		Substrings: []string{"CAREER"}, // must not apply to the renamed value
	}
	got := c.Clean("Long ugly project name NSF CAREER K20304932")
	if got != "CAREER" {
		t.Errorf("Clean = %q, want CAREER", got)
	}
}

func TestClean_CollapsesWhitespace(t *testing.T) {
	c := Cleaner{Substrings: []string{"XYZ"}}
	if got := c.Clean("  grant   XYZ  name "); got != "grant name" {
		t.Errorf("Clean = %q, want %q", got, "grant name")
	}
}

func TestMerge(t *testing.T) {
	base := Cleaner{
		Renames:  map[string]string{"a": "1"},
		Suffixes: []string{"K302"},
	}
	extra := Cleaner{
		Renames:    map[string]string{"b": "2"},
		Substrings: []string{"CS "},
	}

	merged := base.Merge(extra)
	if merged.Renames["a"] != "1" || merged.Renames["b"] != "2" {
		t.Errorf("merged renames = %v", merged.Renames)
	}
	if len(merged.Suffixes) != 1 || len(merged.Substrings) != 1 {
		t.Errorf("merged rule counts: suffixes=%d substrings=%d", len(merged.Suffixes), len(merged.Substrings))
	}
	if base.IsEmpty() || (Cleaner{}).IsEmpty() == false {
		t.Error("IsEmpty misreported")
	}
}

func TestReadRuleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suffixes.txt")
	if err := os.WriteFile(path, []byte("K302\nDEFAULT PROJECT\n  13U00 "), 0o600); err != nil {
		t.Fatal(err)
	}

	tokens, err := ReadRuleFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// Fields split on all whitespace, so "DEFAULT PROJECT" becomes two tokens.
	want := []string{"K302", "DEFAULT", "PROJECT", "13U00"}
	if len(tokens) != len(want) {
		t.Fatalf("tokens = %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("tokens[%d] = %q, want %q", i, tokens[i], want[i])
		}
	}

	if _, err := ReadRuleFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
	if tokens, err := ReadRuleFile(""); err != nil || tokens != nil {
		t.Errorf("empty path: tokens=%v err=%v", tokens, err)
	}
}
