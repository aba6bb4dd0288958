package alphabet

import "testing"

func TestCanonicalizeExamples(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Hello, world!", "_hello'world_"},
		{"hello", "_hello_"},
		{"café", "_cafe_"},
		{"  leading", "_leading_"},
		{"trailing!!!", "_trailing_"},
		{"don't", "_don't_"},
		{"multi  space   gap", "_multi'space'gap_"},
		{"1234", "__"},
		{"", "__"},
	}
	for _, c := range cases {
		if got := Canonicalize(c.in); got != c.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	inputs := []string{"Hello, world!", "HelloWorld", "a-b-c", "über"}
	for _, in := range inputs {
		once := Canonicalize(in)
		twice := Canonicalize(once)
		if once != twice {
			t.Errorf("Canonicalize not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestIsEmpty(t *testing.T) {
	if !IsEmpty("__") {
		t.Error(`IsEmpty("__") should be true`)
	}
	if IsEmpty("_a_") {
		t.Error(`IsEmpty("_a_") should be false`)
	}
}

func TestIsCanonical(t *testing.T) {
	if !IsCanonical("_hello'world_") {
		t.Error("expected canonical string to be recognized")
	}
	if IsCanonical("hello") {
		t.Error("unframed string should not be canonical")
	}
	if IsCanonical("_Hello_") {
		t.Error("uppercase letters are not canonical")
	}
}
