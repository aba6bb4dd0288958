package nx

import "testing"

func TestCompileLiteral(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"hello", true},
		{"", true},
		{"a", true},
		{"h.+d", true},
		{"hel.o", true},
		{"(foo|bar)", true},
		{"a||b", false},
		{"[z-a]", false},
		{"(unterminated", false},
		{"unopened)", false},
		{"[]", false},
		{`\q`, false},
		{"a{2,1}", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			p, err := Compile(tt.pattern, DefaultFlags())
			if tt.want && err != nil {
				t.Fatalf("expected success, got error: %v", err)
			}
			if !tt.want && err == nil {
				t.Fatalf("expected error, got success")
			}
			if tt.want && p.NumStates() == 0 {
				t.Fatalf("compiled program has no states")
			}
		})
	}
}

func TestCompileErrorOffset(t *testing.T) {
	_, err := Compile("ab]cd", DefaultFlags())
	if err == nil {
		t.Fatal("expected a compile error")
	}
	ce, ok := err.(*CompileError)
	if !ok {
		t.Fatalf("expected *CompileError, got %T", err)
	}
	if ce.Offset != 2 {
		t.Fatalf("expected offset 2, got %d", ce.Offset)
	}
}

func TestCompileCountedQuantifier(t *testing.T) {
	p, err := Compile("a{3}", DefaultFlags())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := p.Match("_aaa_", 0, nil)
	if !r.Accepted || r.Errors != 0 {
		t.Fatalf("expected exact accept, got %+v", r)
	}
	r = p.Match("_aa_", 0, nil)
	if r.Accepted {
		t.Fatalf("expected reject for too few repeats, got %+v", r)
	}
}

func TestCompileCountedRange(t *testing.T) {
	p, err := Compile("a{1,3}", DefaultFlags())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range []string{"_a_", "_aa_", "_aaa_"} {
		r := p.Match(s, 0, nil)
		if !r.Accepted {
			t.Errorf("expected %q to match a{1,3}, got %+v", s, r)
		}
	}
	// The implicit `_.*`/`.*_` wrapping absorbs the fourth 'a'.
	if !p.Match("_aaaa_", 0, nil).Accepted {
		t.Error("expected _aaaa_ to match a{1,3} at k=0 via the implicit .* wrapping")
	}
}

func TestCompileCountedOpenEnded(t *testing.T) {
	p, err := Compile("a{2,}", DefaultFlags())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Match("_a_", 0, nil).Accepted {
		t.Error("expected _a_ to reject a{2,}")
	}
	if !p.Match("_aaaaa_", 0, nil).Accepted {
		t.Error("expected _aaaaa_ to accept a{2,}")
	}
}

func TestCompileRequiredLiterals(t *testing.T) {
	p, err := Compile("hello", DefaultFlags())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lits := p.RequiredLiterals()
	if len(lits) != 1 || lits[0] != "hello" {
		t.Fatalf("expected [\"hello\"], got %v", lits)
	}

	p, err = Compile("foo|bar", DefaultFlags())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lits := p.RequiredLiterals(); len(lits) != 0 {
		t.Fatalf("alternation should have no required literals, got %v", lits)
	}
}

func TestCompileCapacityExceeded(t *testing.T) {
	_, err := Compile("a{20000}", DefaultFlags())
	if err == nil {
		t.Fatal("expected a capacity error")
	}
	if _, ok := err.(*CapacityError); !ok {
		t.Fatalf("expected *CapacityError, got %T", err)
	}
}
