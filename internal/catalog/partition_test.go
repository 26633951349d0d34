package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/englishhub/sitting-backend/internal/model"
)

func group(kind model.GroupKind, questions int) model.QuestionGroup {
	g := model.QuestionGroup{ID: uuid.New(), Kind: kind}
	for i := 0; i < questions; i++ {
		g.Questions = append(g.Questions, model.Question{ID: uuid.New()})
	}
	return g
}

var testDefs = []model.PartDef{
	{Number: 1, Name: "Part 1", Kind: model.KindPart1Photographs, ExpectedCount: 2},
	{Number: 2, Name: "Part 2", Kind: model.KindPart2QuestionResponses, ExpectedCount: 3},
}

func TestPartitionDistributesByKind(t *testing.T) {
	groups := []model.QuestionGroup{
		group(model.KindPart1Photographs, 2),
		group(model.KindPart2QuestionResponses, 1),
		group(model.KindPart2QuestionResponses, 2),
	}

	parts, index, err := Partition(groups, testDefs, zerolog.Nop())
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}

	if len(parts) != 2 {
		t.Fatalf("parts = %d, want 2", len(parts))
	}
	if parts[0].QuestionCount() != 2 || parts[1].QuestionCount() != 3 {
		t.Errorf("counts = %d/%d, want 2/3", parts[0].QuestionCount(), parts[1].QuestionCount())
	}
	if len(index) != 5 {
		t.Errorf("index size = %d, want 5", len(index))
	}
	for _, q := range parts[1].Groups[0].Questions {
		if index[q.ID.String()] != 2 {
			t.Errorf("question indexed to part %d, want 2", index[q.ID.String()])
		}
	}
	// Catalog order within a part is preserved.
	if parts[1].Groups[0].ID != groups[1].ID || parts[1].Groups[1].ID != groups[2].ID {
		t.Error("group order not preserved")
	}
}

func TestPartitionSkipsUnknownKind(t *testing.T) {
	groups := []model.QuestionGroup{
		group(model.KindPart1Photographs, 1),
		group(model.GroupKind("PART_99_MYSTERY"), 4),
	}

	parts, index, err := Partition(groups, testDefs, zerolog.Nop())
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if len(index) != 1 {
		t.Errorf("index size = %d, want 1 (unknown kind skipped)", len(index))
	}
	if parts[0].QuestionCount() != 1 {
		t.Errorf("part 1 count = %d", parts[0].QuestionCount())
	}
}

func TestPartitionEmptyPartIsValid(t *testing.T) {
	groups := []model.QuestionGroup{group(model.KindPart2QuestionResponses, 3)}

	parts, _, err := Partition(groups, testDefs, zerolog.Nop())
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if parts[0].QuestionCount() != 0 {
		t.Errorf("part 1 should be empty")
	}
	if parts[0].Number != 1 || parts[0].Name != "Part 1" {
		t.Errorf("empty part lost its identity: %+v", parts[0])
	}
}

func TestPartitionRejectsDuplicateQuestionID(t *testing.T) {
	dup := group(model.KindPart1Photographs, 1)
	copyGroup := model.QuestionGroup{
		ID:        uuid.New(),
		Kind:      model.KindPart2QuestionResponses,
		Questions: dup.Questions,
	}

	if _, _, err := Partition([]model.QuestionGroup{dup, copyGroup}, testDefs, zerolog.Nop()); err == nil {
		t.Fatal("duplicate question id accepted")
	}
}
