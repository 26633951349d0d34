package model

// PartDef declares one numbered exam section and which group kind feeds it.
// ExpectedCount is what the exam layout promises; the catalog may deliver
// fewer questions and the sitting must still run.
type PartDef struct {
	Number        int       `json:"number"`
	Name          string    `json:"name"`
	Kind          GroupKind `json:"kind"`
	ExpectedCount int       `json:"expected_count"`
}

// DefaultParts is the standard full-test layout: four listening sections
// followed by three reading sections, 200 questions total.
var DefaultParts = []PartDef{
	{Number: 1, Name: "Part 1", Kind: KindPart1Photographs, ExpectedCount: 6},
	{Number: 2, Name: "Part 2", Kind: KindPart2QuestionResponses, ExpectedCount: 25},
	{Number: 3, Name: "Part 3", Kind: KindPart3Conversations, ExpectedCount: 39},
	{Number: 4, Name: "Part 4", Kind: KindPart4Talks, ExpectedCount: 30},
	{Number: 5, Name: "Part 5", Kind: KindPart5IncompleteSentences, ExpectedCount: 30},
	{Number: 6, Name: "Part 6", Kind: KindPart6TextCompletion, ExpectedCount: 16},
	{Number: 7, Name: "Part 7", Kind: KindPart7ReadingComp, ExpectedCount: 54},
}

// Part is one numbered section of a sitting with the groups the catalog
// actually delivered for it. Zero groups is a valid, renderable state.
type Part struct {
	Number        int             `json:"number"`
	Name          string          `json:"name"`
	ExpectedCount int             `json:"expected_count"`
	Groups        []QuestionGroup `json:"groups"`
}

// QuestionCount returns the number of questions actually loaded into the part.
func (p *Part) QuestionCount() int {
	n := 0
	for i := range p.Groups {
		n += len(p.Groups[i].Questions)
	}
	return n
}
