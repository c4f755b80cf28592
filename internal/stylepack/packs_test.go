package stylepack

import (
	"strings"
	"testing"
)

func TestCatalogAlignment(t *testing.T) {
	all := All()
	if len(all) != 6 {
		t.Fatalf("packs = %d, want 6", len(all))
	}
	for _, p := range all {
		if len(p.RefPaths) != 15 {
			t.Fatalf("pack %d has %d refs, want 15", p.ID, len(p.RefPaths))
		}
		if len(p.Labels) != 15 {
			t.Fatalf("pack %d has %d labels, want 15", p.ID, len(p.Labels))
		}
		if len(p.Prompts) != 15 {
			t.Fatalf("pack %d has %d prompts, want 15", p.ID, len(p.Prompts))
		}
		seen := map[string]bool{}
		for _, ref := range p.RefPaths {
			if !strings.HasPrefix(ref, "/static/landing/styles/") {
				t.Fatalf("pack %d ref %q not under the static tree", p.ID, ref)
			}
			if seen[ref] {
				t.Fatalf("pack %d repeats ref %q", p.ID, ref)
			}
			seen[ref] = true
		}
		for i, prompt := range p.Prompts {
			if !strings.Contains(prompt, "Preserve the subject's face") {
				t.Fatalf("pack %d prompt %d drops the identity clause: %q", p.ID, i, prompt)
			}
		}
	}
}

func TestRefsTierIsPrefix(t *testing.T) {
	p, ok := ByID(IDMasters)
	if !ok {
		t.Fatal("masters pack missing")
	}
	five := p.Refs(5)
	if len(five) != 5 {
		t.Fatalf("Refs(5) = %d entries", len(five))
	}
	fifteen := p.Refs(15)
	for i, ref := range five {
		if fifteen[i] != ref {
			t.Fatalf("tier 5 is not a prefix of tier 15 at %d: %q vs %q", i, ref, fifteen[i])
		}
	}
	if got := p.Refs(0); len(got) != 15 {
		t.Fatalf("Refs(0) = %d entries, want full list", len(got))
	}
	if got := p.Refs(40); len(got) != 15 {
		t.Fatalf("Refs(40) = %d entries, want full list", len(got))
	}
}

func TestLabelsFor(t *testing.T) {
	p, _ := ByID(IDMasters)
	if got := p.LabelsFor(5); len(got) != 5 {
		t.Fatalf("LabelsFor(5) = %d", len(got))
	}
	if got := p.LabelsFor(0); got != nil {
		t.Fatalf("LabelsFor(0) = %v, want nil", got)
	}
	if got := p.LabelsFor(99); len(got) != 15 {
		t.Fatalf("LabelsFor(99) = %d, want clamped to 15", len(got))
	}
}

func TestByIDAndValid(t *testing.T) {
	if _, ok := ByID(12); ok {
		t.Fatal("unknown id 12 resolved")
	}
	if !Valid(IDRoyaltyPortraits) {
		t.Fatal("royalty pack not valid")
	}
	if Valid(0) {
		t.Fatal("id 0 should not be valid")
	}
}

func TestPromptForRef(t *testing.T) {
	p, _ := ByID(IDMasters)
	// masters-02 is the first catalog entry but carries prompt index 2.
	ref := p.RefPaths[0]
	if !strings.HasSuffix(ref, "masters-02.jpg") {
		t.Fatalf("catalog order changed, first ref is %q", ref)
	}
	prompt := PromptForRef(IDMasters, ref)
	if !strings.Contains(prompt, "Edvard Munch's The Scream") {
		t.Fatalf("ref %q resolved to wrong prompt: %q", ref, prompt)
	}
	if !strings.Contains(prompt, "CRITICAL: Replicate the exact brushwork") {
		t.Fatalf("brushwork splice missing: %q", prompt)
	}
	if !strings.Contains(prompt, "Preserve the subject's face") {
		t.Fatalf("identity clause lost after splice: %q", prompt)
	}
}

func TestPromptForRefAbsoluteURL(t *testing.T) {
	prompt := PromptForRef(IDMasters,
		"https://shop.example/static/landing/styles/masters/masters-01.jpg")
	if !strings.Contains(prompt, "Mona Lisa") {
		t.Fatalf("absolute url did not resolve: %q", prompt)
	}
}

func TestPromptForRefFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		styleID int
		ref     string
	}{
		{"unparseable filename", IDMasters, "/static/landing/styles/masters/cover.jpg"},
		{"index out of range", IDMasters, "/static/landing/styles/masters/masters-99.jpg"},
		{"unknown pack", 999, "/static/landing/styles/masters/masters-01.jpg"},
		{"empty ref", IDMasters, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PromptForRef(tc.styleID, tc.ref); got != fallbackPrompt {
				t.Fatalf("want fallback prompt, got %q", got)
			}
		})
	}
}

func TestRefIndex(t *testing.T) {
	tests := []struct {
		ref  string
		want int
	}{
		{"/static/landing/styles/masters/masters-07.jpg", 7},
		{"/static/landing/styles/modern-abstract/modern-abstract-13.png", 13},
		{"https://shop.example/static/landing/styles/masters/masters-01.jpg", 1},
		{"/downloads/random-02.jpg", 2},
		{"/static/landing/styles/masters/other-03.jpg", 3},
		{"/static/landing/styles/masters/cover.jpg", 0},
		{"", 0},
	}
	for _, tc := range tests {
		if got := refIndex(tc.ref); got != tc.want {
			t.Fatalf("refIndex(%q) = %d, want %d", tc.ref, got, tc.want)
		}
	}
}
