package typography

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func levels(ls ...int) []Heading {
	out := make([]Heading, len(ls))
	for i, l := range ls {
		out[i] = Heading{Level: l}
	}
	return out
}

func TestAuditSkippedLevel(t *testing.T) {
	r, errs := NewAuditor(DefaultConfig()).Audit(levels(1, 3), Fonts{})
	if len(errs) != 0 {
		t.Fatalf("Audit() errors = %v", errs)
	}

	want := []Violation{{Kind: KindSkippedLevel, Position: 1, Expected: 2, Found: 3}}
	if diff := cmp.Diff(want, r.Violations); diff != "" {
		t.Errorf("Violations mismatch (-want +got):\n%s", diff)
	}
	if r.ConsistencyScore != 80 {
		t.Errorf("ConsistencyScore = %v, want 80", r.ConsistencyScore)
	}
	if diff := cmp.Diff([]int{1, 3}, r.HeadingSequence); diff != "" {
		t.Errorf("HeadingSequence mismatch (-want +got):\n%s", diff)
	}
}

func TestAuditHierarchy(t *testing.T) {
	tests := []struct {
		name     string
		headings []Heading
		want     []Kind
	}{
		{name: "clean", headings: levels(1, 2, 3, 3, 2, 3), want: nil},
		{name: "ascending jumps are fine", headings: levels(1, 2, 3, 4, 1), want: []Kind{KindMultipleTopLevel}},
		{name: "h2 to h4", headings: levels(1, 2, 4), want: []Kind{KindSkippedLevel}},
		{name: "no h1", headings: levels(2, 3), want: []Kind{KindMissingTopLevel}},
		{name: "two h1", headings: levels(1, 2, 1), want: []Kind{KindMultipleTopLevel}},
		{name: "empty", headings: nil, want: nil},
		{
			name: "h1 per section",
			headings: []Heading{
				{Level: 1, Scope: "main"}, {Level: 2, Scope: "main"},
				{Level: 1, Scope: "aside"}, {Level: 2, Scope: "aside"},
			},
			want: nil,
		},
		{
			name: "section missing h1",
			headings: []Heading{
				{Level: 1, Scope: "main"},
				{Level: 3, Scope: "aside"},
			},
			want: []Kind{KindMissingTopLevel},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := NewAuditor(DefaultConfig()).Audit(tt.headings, Fonts{})
			var got []Kind
			for _, v := range r.Violations {
				got = append(got, v.Kind)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("violation kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAuditFonts(t *testing.T) {
	cfg := DefaultConfig()
	fonts := Fonts{
		Families: []string{"Inter", "inter", " Georgia ", "'Fira Code'", "Comic Sans MS"},
		Sizes:    []string{"12px", "14px", "14px"},
	}

	r, _ := NewAuditor(cfg).Audit(levels(1), fonts)
	if r.FontFamilyCount != 4 {
		t.Errorf("FontFamilyCount = %d, want 4", r.FontFamilyCount)
	}
	if r.FontSizeCount != 2 {
		t.Errorf("FontSizeCount = %d, want 2", r.FontSizeCount)
	}
	want := []Violation{{Kind: KindFontFamilyCount, Position: DocumentWide, Expected: 3, Found: 4}}
	if diff := cmp.Diff(want, r.Violations); diff != "" {
		t.Errorf("Violations mismatch (-want +got):\n%s", diff)
	}
	if r.ConsistencyScore != 90 {
		t.Errorf("ConsistencyScore = %v, want 90", r.ConsistencyScore)
	}
}

func TestAuditPenaltyPerClass(t *testing.T) {
	// Three skipped levels cost the same as one.
	r, _ := NewAuditor(DefaultConfig()).Audit(levels(1, 3, 5, 2, 4), Fonts{})
	if n := len(r.Violations); n != 3 {
		t.Fatalf("got %d violations, want 3", n)
	}
	if r.ConsistencyScore != 80 {
		t.Errorf("ConsistencyScore = %v, want 80", r.ConsistencyScore)
	}
}

func TestAuditScoreFloor(t *testing.T) {
	cfg := DefaultConfig()
	for k := range cfg.Penalties {
		cfg.Penalties[k] = 60
	}
	r, _ := NewAuditor(cfg).Audit(levels(2, 4), Fonts{})
	if r.ConsistencyScore != 0 {
		t.Errorf("ConsistencyScore = %v, want 0", r.ConsistencyScore)
	}
}

func TestAuditInvalidLevels(t *testing.T) {
	r, errs := NewAuditor(DefaultConfig()).Audit(levels(1, 0, 2, 7), Fonts{})
	if len(errs) != 2 {
		t.Errorf("got %d errors, want 2", len(errs))
	}
	if diff := cmp.Diff([]int{1, 2}, r.HeadingSequence); diff != "" {
		t.Errorf("HeadingSequence mismatch (-want +got):\n%s", diff)
	}
	if len(r.Violations) != 0 {
		t.Errorf("Violations = %v, want none", r.Violations)
	}
}

func TestViolationMargin(t *testing.T) {
	v := Violation{Kind: KindSkippedLevel, Expected: 2, Found: 5}
	if v.Margin() != -3 {
		t.Errorf("Margin() = %v, want -3", v.Margin())
	}
	if v.String() == "" {
		t.Error("String() is empty")
	}
}
