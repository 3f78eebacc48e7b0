package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	v, c, d := Info()
	if v == "" || c == "" || d == "" {
		t.Fatalf("Info returned empty fields: version=%q commit=%q date=%q", v, c, d)
	}
	if v != GetVersion() || c != GetCommit() || d != GetDate() {
		t.Fatal("accessors disagree with Info")
	}
}

func TestString(t *testing.T) {
	s := String()
	for _, part := range []string{"version=", "commit=", "date="} {
		if !strings.Contains(s, part) {
			t.Fatalf("String() missing %q: %s", part, s)
		}
	}
}
