package nx

import "testing"

// Scenarios mirror spec §8's concrete examples against the wordlist
// {hello, world, help, helloworld}.

func TestMatchScenario1ExactLiteral(t *testing.T) {
	p, err := Compile("hello", DefaultFlags())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	r := p.Match("_hello_", 0, nil)
	if !r.Accepted || r.Errors != 0 {
		t.Fatalf("expected ok errors=0, got %+v", r)
	}
}

func TestMatchScenario2Wildcard(t *testing.T) {
	p, err := Compile("hel.o", DefaultFlags())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if r := p.Match("_hello_", 0, nil); !r.Accepted {
		t.Fatalf("expected ok, got %+v", r)
	}
}

func TestMatchScenario3FuzzAccepts(t *testing.T) {
	p, err := Compile("hello", Flags{ExplicitSpace: true, ExplicitPunct: true, FuzzCap: 2})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	r := p.Match("_hallo_", 1, nil)
	if !r.Accepted || r.Errors != 1 {
		t.Fatalf("expected ok errors=1, got %+v", r)
	}
}

func TestMatchScenario4FuzzRejectsAtZero(t *testing.T) {
	p, err := Compile("hello", DefaultFlags())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if r := p.Match("_hallo_", 0, nil); r.Accepted {
		t.Fatalf("expected no_match at k=0, got %+v", r)
	}
}

func TestMatchMonotonicity(t *testing.T) {
	p, err := Compile("hello", Flags{ExplicitSpace: true, ExplicitPunct: true, FuzzCap: 3})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	r1 := p.Match("_hallo_", 1, nil)
	r2 := p.Match("_hallo_", 2, nil)
	if !r1.Accepted || !r2.Accepted {
		t.Fatalf("expected both to accept: %+v %+v", r1, r2)
	}
	if r2.Errors > r1.Errors {
		t.Fatalf("expected errors to be non-increasing as k grows: k1=%d k2=%d", r1.Errors, r2.Errors)
	}
}

func TestMatchRejectsNonCanonicalInput(t *testing.T) {
	p, err := Compile("hello", DefaultFlags())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	diag := NewDiag("test", false)
	r := p.Match("Hello!", 0, diag)
	if r.Accepted {
		t.Fatalf("expected reject for non-canonical input, got %+v", r)
	}
	if len(diag.Notes()) == 0 {
		t.Fatal("expected a diagnostic note for non-canonical input")
	}
}

func TestMatchSubstringViaImplicitAnchors(t *testing.T) {
	p, err := Compile("ell", DefaultFlags())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if r := p.Match("_hello_", 0, nil); !r.Accepted {
		t.Fatalf("expected ell to match within _hello_, got %+v", r)
	}
	if r := p.Match("_world_", 0, nil); r.Accepted {
		t.Fatalf("expected ell not to match _world_, got %+v", r)
	}
}

func TestMatchExplicitSpaceFlag(t *testing.T) {
	p, err := Compile(".+", Flags{ExplicitSpace: true, ExplicitPunct: true})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if r := p.Match("_helloworld_", 0, nil); !r.Accepted {
		t.Fatalf("expected single-word dot-plus to match, got %+v", r)
	}
}

func TestMatchFuzzDeletion(t *testing.T) {
	p, err := Compile("hello", Flags{ExplicitSpace: true, ExplicitPunct: true, FuzzCap: 1})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	// "helo" is "hello" with one letter deleted.
	r := p.Match("_helo_", 1, nil)
	if !r.Accepted || r.Errors != 1 {
		t.Fatalf("expected ok errors=1 for a deletion, got %+v", r)
	}
}

func TestMatchFuzzInsertion(t *testing.T) {
	p, err := Compile("helo", Flags{ExplicitSpace: true, ExplicitPunct: true, FuzzCap: 1})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	// "hello" is "helo" with an extra 'l' inserted.
	r := p.Match("_hello_", 1, nil)
	if !r.Accepted || r.Errors != 1 {
		t.Fatalf("expected ok errors=1 for an insertion, got %+v", r)
	}
}

func TestMatchFuzzDeletionDistinctNeighbors(t *testing.T) {
	p, err := Compile("cart", Flags{ExplicitSpace: true, ExplicitPunct: true, FuzzCap: 1})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	// "cat" is "cart" with the 'r' deleted; its neighbors ('a' and 't')
	// are distinct letters, so this only works if a missing pattern
	// symbol can be skipped without depending on a duplicate letter.
	r := p.Match("_cat_", 1, nil)
	if !r.Accepted || r.Errors != 1 {
		t.Fatalf("expected ok errors=1, got %+v", r)
	}
}

func TestMatchCharacterClass(t *testing.T) {
	p, err := Compile("[hw]ello", DefaultFlags())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	for _, s := range []string{"_hello_"} {
		if r := p.Match(s, 0, nil); !r.Accepted {
			t.Errorf("expected %q to match, got %+v", s, r)
		}
	}
}

func TestMatchNegatedClass(t *testing.T) {
	p, err := Compile("[^h]ello", DefaultFlags())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if p.Match("_hello_", 0, nil).Accepted {
		t.Fatal("expected [^h]ello to reject hello")
	}
}
