package catalog

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/englishhub/sitting-backend/internal/model"
)

// Partition distributes the loaded question groups into the numbered parts
// declared by defs, preserving catalog order within each part. It returns
// the parts plus a questionID → part number index covering every question
// that made it in.
//
// A group whose kind matches no part is logged and skipped; the sitting
// runs with what remains, and a part that received nothing stays valid
// with zero groups. A duplicate question id is a hard error: the ledger
// cannot tell two identical ids apart, so the catalog is unusable.
func Partition(groups []model.QuestionGroup, defs []model.PartDef, log zerolog.Logger) ([]model.Part, map[string]int, error) {
	byKind := make(map[model.GroupKind]int, len(defs))
	parts := make([]model.Part, len(defs))
	for i, def := range defs {
		byKind[def.Kind] = i
		parts[i] = model.Part{
			Number:        def.Number,
			Name:          def.Name,
			ExpectedCount: def.ExpectedCount,
		}
	}

	index := make(map[string]int)
	for _, group := range groups {
		pi, ok := byKind[group.Kind]
		if !ok {
			log.Warn().
				Str("group_id", group.ID.String()).
				Str("kind", string(group.Kind)).
				Msg("Group kind matches no part, skipping")
			continue
		}
		for _, q := range group.Questions {
			id := q.ID.String()
			if _, dup := index[id]; dup {
				return nil, nil, fmt.Errorf("duplicate question id %s in catalog", id)
			}
			index[id] = parts[pi].Number
		}
		parts[pi].Groups = append(parts[pi].Groups, group)
	}

	for i := range parts {
		if got := parts[i].QuestionCount(); got != parts[i].ExpectedCount {
			log.Warn().
				Int("part", parts[i].Number).
				Int("expected", parts[i].ExpectedCount).
				Int("got", got).
				Msg("Part question count differs from layout")
		}
	}
	return parts, index, nil
}
