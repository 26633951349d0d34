package model

import "github.com/google/uuid"

// GroupKind declares which exam part a question group belongs to.
type GroupKind string

const (
	KindPart1Photographs         GroupKind = "PART_1_PHOTOGRAPHS"
	KindPart2QuestionResponses   GroupKind = "PART_2_QUESTION_RESPONSES"
	KindPart3Conversations       GroupKind = "PART_3_CONVERSATIONS"
	KindPart4Talks               GroupKind = "PART_4_TALKS"
	KindPart5IncompleteSentences GroupKind = "PART_5_INCOMPLETE_SENTENCES"
	KindPart6TextCompletion      GroupKind = "PART_6_TEXT_COMPLETION"
	KindPart7ReadingComp         GroupKind = "PART_7_READING_COMPREHENSION"
)

// Choice is one selectable option on a question. Only letters that actually
// exist on the question appear in the list; a missing letter means the
// option does not exist, never that it is blank.
type Choice struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

// Question is one answerable item. Prompt may be empty, in which case the
// group stimulus carries the question.
type Question struct {
	ID      uuid.UUID `json:"id"`
	Prompt  string    `json:"prompt,omitempty"`
	Choices []Choice  `json:"choices"`
}

// HasChoice reports whether the given letter is a real option on this question.
func (q *Question) HasChoice(letter string) bool {
	for _, c := range q.Choices {
		if c.Letter == letter {
			return true
		}
	}
	return false
}

// QuestionGroup is one stimulus context: one or more questions sharing an
// optional audio clip, image or reading passage. Any subset of the stimulus
// fields may be absent; a standalone question is a group of one with none.
type QuestionGroup struct {
	ID        uuid.UUID  `json:"group_id"`
	Kind      GroupKind  `json:"kind"`
	AudioURL  string     `json:"audio_url,omitempty"`
	ImageURL  string     `json:"image_url,omitempty"`
	Passage   string     `json:"passage,omitempty"`
	Questions []Question `json:"questions"`
}
