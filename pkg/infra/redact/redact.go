package redact

import (
	"unicode/utf8"
)

const DefaultExcerptLength = 200

// Redactor masks sensitive values before text reaches the logs.
type Redactor struct {
	entities []Entity
}

// New builds a Redactor for the given entities, applied in detection order.
// Unknown entities are ignored. Without arguments every entity is enabled.
func New(entities ...Entity) *Redactor {
	if len(entities) == 0 {
		return &Redactor{entities: detectionOrder}
	}
	enabled := make(map[Entity]bool, len(entities))
	for _, e := range entities {
		enabled[e] = true
	}
	r := &Redactor{}
	for _, e := range detectionOrder {
		if enabled[e] {
			r.entities = append(r.entities, e)
		}
	}
	return r
}

func (r *Redactor) Redact(text string) string {
	for _, e := range r.entities {
		text = patterns[e].ReplaceAllLiteralString(text, Mask(e))
	}
	return text
}

// Excerpt redacts text and cuts it to at most limit runes.
func (r *Redactor) Excerpt(text string, limit int) string {
	text = r.Redact(text)
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + "..."
}
