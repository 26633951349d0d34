package session

import "testing"

func TestFlagToggle(t *testing.T) {
	f := NewFlagSet([]string{"q1", "q2"})

	flagged, err := f.Toggle("q1")
	if err != nil || !flagged {
		t.Fatalf("first toggle = %v, %v; want true, nil", flagged, err)
	}
	if !f.Has("q1") || f.Count() != 1 {
		t.Errorf("flag not recorded")
	}

	flagged, err = f.Toggle("q1")
	if err != nil || flagged {
		t.Fatalf("second toggle = %v, %v; want false, nil", flagged, err)
	}
	if f.Has("q1") || f.Count() != 0 {
		t.Errorf("flag not removed")
	}
}

func TestFlagUnknownQuestion(t *testing.T) {
	f := NewFlagSet([]string{"q1"})

	if _, err := f.Toggle("ghost"); err != ErrUnknownQuestion {
		t.Fatalf("Toggle(ghost) = %v, want ErrUnknownQuestion", err)
	}
	if f.Count() != 0 {
		t.Errorf("rejected toggle mutated set")
	}
}

func TestFlagFreeze(t *testing.T) {
	f := NewFlagSet([]string{"q1", "q2"})
	f.Toggle("q2")
	f.Freeze()

	if _, err := f.Toggle("q1"); err != ErrFrozen {
		t.Fatalf("Toggle after freeze = %v, want ErrFrozen", err)
	}
	if !f.Has("q2") {
		t.Errorf("freeze dropped existing flag")
	}
}

func TestFlagListSorted(t *testing.T) {
	f := NewFlagSet([]string{"b", "a", "c"})
	f.Toggle("c")
	f.Toggle("a")

	got := f.List()
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("List = %v, want [a c]", got)
	}
}
