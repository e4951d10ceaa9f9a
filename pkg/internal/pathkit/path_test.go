package pathkit

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Quarterly Report.pdf", "Quarterly_Report.pdf"},
		{"My  Photos", "My_Photos"},
		{"doc (1)", "doc_1"},
		{"  spaced  ", "spaced"},
		{"résumé.doc", "rsum.doc"},
		{"___", ""},
		{"", ""},
		{"a_b-c.d", "a_b-c.d"},
		{"tabs\tand\nnewlines", "tabs_and_newlines"},
	}

	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestJoin(t *testing.T) {
	if got := Join("", "docs"); got != "/docs" {
		t.Errorf("Join root = %q", got)
	}

	if got := Join("/", "docs"); got != "/docs" {
		t.Errorf("Join slash root = %q", got)
	}

	if got := Join("/docs", "work"); got != "/docs/work" {
		t.Errorf("Join nested = %q", got)
	}
}

func TestParentBase(t *testing.T) {
	if got := Parent("/docs/work"); got != "/docs" {
		t.Errorf("Parent = %q", got)
	}

	if got := Parent("/docs"); got != "/" {
		t.Errorf("Parent root-level = %q", got)
	}

	if got := Base("/docs/work/cat.png"); got != "cat.png" {
		t.Errorf("Base = %q", got)
	}
}

func TestIsDescendant(t *testing.T) {
	if !IsDescendant("/docs", "/docs/work/a") {
		t.Error("expected /docs/work/a inside /docs")
	}

	if IsDescendant("/docs", "/docs") {
		t.Error("a path is not its own descendant")
	}

	// Sibling with a shared string prefix must not match.
	if IsDescendant("/docs", "/docs2/a") {
		t.Error("/docs2/a is not inside /docs")
	}
}

func TestRebase(t *testing.T) {
	got := Rebase("/docs/work/a", "/docs", "/archive/docs")
	if got != "/archive/docs/work/a" {
		t.Errorf("Rebase = %q", got)
	}
}
