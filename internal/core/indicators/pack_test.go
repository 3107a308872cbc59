package indicators

import (
	"os"
	"path/filepath"
	"testing"
)

func mustPack(t *testing.T) *Pack {
	t.Helper()
	p, err := Load()
	if err != nil {
		t.Fatalf("load pack: %v", err)
	}
	return p
}

func TestLoad_Embedded(t *testing.T) {
	p := mustPack(t)
	if p.Version != 1 {
		t.Fatalf("version = %d, want 1", p.Version)
	}
	for _, c := range Categories {
		if len(p.Terms(c)) == 0 {
			t.Fatalf("category %s has no terms", c)
		}
	}
	for i := 1; i < len(p.Phrases); i++ {
		a, b := p.Phrases[i-1], p.Phrases[i]
		if a.Category > b.Category || (a.Category == b.Category && a.Term >= b.Term) {
			t.Fatalf("phrases not sorted/deduped at %d: %+v %+v", i, a, b)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse([]byte(`{`)); err == nil {
		t.Fatalf("expected json error")
	}
	if _, err := Parse([]byte(`{"version":2,"categories":{}}`)); err == nil {
		t.Fatalf("expected version error")
	}
	if _, err := Parse([]byte(`{"version":1,"categories":{"gossip":["x"]}}`)); err == nil {
		t.Fatalf("expected unknown category error")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pack.json")
	body := `{"version":1,"categories":{"romantic":["Love", "love", " "],"future":["Someday"]}}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := p.Terms(Romantic); len(got) != 1 || got[0] != "love" {
		t.Fatalf("romantic terms = %v", got)
	}
	if got := p.Terms(FuturePlanning); len(got) != 1 || got[0] != "someday" {
		t.Fatalf("future terms = %v", got)
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, ok := ParseCategory(c.Key())
		if !ok || got != c {
			t.Fatalf("round trip failed for %s", c)
		}
	}
	if _, ok := ParseCategory("nope"); ok {
		t.Fatalf("unexpected category")
	}
}
