package session

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/englishhub/sitting-backend/internal/model"
)

func buildPart(number int, questions int) (model.Part, []string) {
	group := model.QuestionGroup{ID: uuid.New(), Kind: model.KindPart5IncompleteSentences}
	ids := make([]string, 0, questions)
	for i := 0; i < questions; i++ {
		q := model.Question{ID: uuid.New(), Choices: []model.Choice{
			{Letter: "A", Text: "a"}, {Letter: "B", Text: "b"},
			{Letter: "C", Text: "c"}, {Letter: "D", Text: "d"},
		}}
		ids = append(ids, q.ID.String())
		group.Questions = append(group.Questions, q)
	}
	return model.Part{Number: number, Name: "Part", ExpectedCount: questions, Groups: []model.QuestionGroup{group}}, ids
}

func TestNavigatorResolvesAnchor(t *testing.T) {
	part, ids := buildPart(5, 3)
	n := NewNavigator()
	n.Rebuild(&part)

	anchor, ok := n.GoTo(ids[2])
	if !ok {
		t.Fatal("GoTo returned not found for a registered id")
	}
	if anchor.Part != 5 || anchor.GroupIndex != 0 || anchor.QuestionIndex != 2 {
		t.Errorf("anchor = %+v, want part 5 group 0 question 2", anchor)
	}
	if n.Active() != ids[2] {
		t.Errorf("Active = %q, want %q", n.Active(), ids[2])
	}
}

func TestNavigatorUnknownIDIsNoOp(t *testing.T) {
	part, ids := buildPart(1, 2)
	n := NewNavigator()
	n.Rebuild(&part)
	n.GoTo(ids[0])

	if _, ok := n.GoTo(uuid.NewString()); ok {
		t.Fatal("GoTo resolved an unregistered id")
	}
	if n.Active() != ids[0] {
		t.Errorf("failed navigation changed active marker")
	}
}

func TestNavigatorActiveMarkerExpires(t *testing.T) {
	part, ids := buildPart(1, 1)
	n := NewNavigator()
	n.holdFor = 20 * time.Millisecond
	n.Rebuild(&part)

	n.GoTo(ids[0])
	if n.Active() != ids[0] {
		t.Fatal("marker not set")
	}

	time.Sleep(60 * time.Millisecond)
	if n.Active() != "" {
		t.Errorf("marker did not clear after hold")
	}
}

func TestNavigatorLaterNavigationOutlivesOldTimer(t *testing.T) {
	part, ids := buildPart(1, 2)
	n := NewNavigator()
	n.holdFor = 30 * time.Millisecond
	n.Rebuild(&part)

	n.GoTo(ids[0])
	time.Sleep(20 * time.Millisecond)
	n.GoTo(ids[1])

	// The first navigation's timer fires now; it must not clear the
	// second navigation's marker.
	time.Sleep(15 * time.Millisecond)
	if n.Active() != ids[1] {
		t.Errorf("stale timer cleared a newer marker, Active = %q", n.Active())
	}
}

func TestNavigatorRebuildDropsOldPart(t *testing.T) {
	partA, idsA := buildPart(1, 1)
	partB, idsB := buildPart(2, 1)
	n := NewNavigator()
	n.Rebuild(&partA)
	n.GoTo(idsA[0])

	n.Rebuild(&partB)
	if n.Active() != "" {
		t.Error("rebuild kept the old active marker")
	}
	if _, ok := n.GoTo(idsA[0]); ok {
		t.Error("anchor from a previous part survived rebuild")
	}
	if _, ok := n.GoTo(idsB[0]); !ok {
		t.Error("anchor for the new part missing")
	}
}
