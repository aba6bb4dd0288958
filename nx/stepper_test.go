package nx

import "testing"

func TestStepperMatchesWholeStringResult(t *testing.T) {
	p, err := Compile("hello", Flags{ExplicitSpace: true, ExplicitPunct: true, FuzzCap: 1})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	input := "_hallo_"
	s := p.NewStepper(1)
	var last struct {
		ok  bool
		err int
	}
	for i := 0; i < len(input); i++ {
		s.Advance(input[i])
		if s.Dead() {
			t.Fatalf("stepper died early at byte %d", i)
		}
		if ok, errs := s.AcceptingHere(); ok {
			last.ok, last.err = ok, errs
		}
	}
	if !last.ok || last.err != 1 {
		t.Fatalf("expected stepper to accept with errors=1 at the end, got %+v", last)
	}

	want := p.Match(input, 1, nil)
	if !want.Accepted || want.Errors != last.err {
		t.Fatalf("stepper result diverges from Match: stepper=%+v match=%+v", last, want)
	}
}

func TestStepperDeadOnImpossibleBranch(t *testing.T) {
	p, err := Compile("hello", DefaultFlags())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	s := p.NewStepper(0)
	for _, b := range []byte("_xyz_") {
		s.Advance(b)
	}
	if !s.Dead() {
		t.Fatal("expected stepper to be dead after consuming input with no possible match at k=0")
	}
}

func TestStepperAcceptingHereDoesNotEndStream(t *testing.T) {
	p, err := Compile("ell", DefaultFlags())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	// AcceptingHere is a query, not a commitment: calling it partway
	// through "_hello_" must not prevent the stepper from continuing to
	// consume bytes and reaching the true accept at the end.
	s := p.NewStepper(0)
	input := "_hello_"
	for i := 0; i < len(input); i++ {
		s.Advance(input[i])
		s.AcceptingHere() // queried every step; must not disturb s.cur
	}
	ok, errs := s.AcceptingHere()
	if !ok || errs != 0 {
		t.Fatalf("expected final AcceptingHere to accept errors=0, got ok=%v errs=%d", ok, errs)
	}
}

func TestStepperCloneIsIndependent(t *testing.T) {
	p, err := Compile("hello", Flags{ExplicitSpace: true, ExplicitPunct: true, FuzzCap: 1})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	s := p.NewStepper(1)
	for _, b := range []byte("_he") {
		s.Advance(b)
	}
	snapshot := s.Clone()

	for _, b := range []byte("llo_") {
		s.Advance(b)
	}
	if ok, _ := s.AcceptingHere(); !ok {
		t.Fatal("expected original stepper to accept after consuming the rest of the word")
	}

	// the snapshot, advanced along a different continuation, should reach
	// its own independent result rather than reflecting the original's
	// later state.
	for _, b := range []byte("y_") {
		snapshot.Advance(b)
	}
	if ok, _ := snapshot.AcceptingHere(); ok {
		t.Fatal("expected cloned stepper on a divergent continuation to reject")
	}
}
