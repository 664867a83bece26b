package extract

import (
	"bytes"
	"encoding/json"

	"github.com/vk/texo/internal/formula"
	"github.com/vk/texo/internal/hierarchy"
	"github.com/vk/texo/internal/taxonomy"
)

// Result is the complete in-memory handoff to the presentation layer. After
// Extract returns it is never mutated again.
type Result struct {
	Concepts     []taxonomy.Concept
	Presentation *hierarchy.Hierarchy
	Dimensions   *hierarchy.Hierarchy
	Formulas     *formula.Forest
}

// conceptRow is the JSON shape of one concepts-table entry.
type conceptRow struct {
	Name              string `json:"name"`
	Type              string `json:"type"`
	SubstitutionGroup string `json:"substitution_group"`
	PeriodType        string `json:"period_type"`
	Balance           string `json:"balance"`
	Abstract          bool   `json:"abstract"`
}

// MarshalJSON renders the result with concepts keyed by qualified name in
// document order, followed by the three forests.
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"concepts":{`)
	for i, c := range r.Concepts {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.QName)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(conceptRow{
			Name:              c.Name,
			Type:              c.Type,
			SubstitutionGroup: c.SubstitutionGroup,
			PeriodType:        c.PeriodType,
			Balance:           c.Balance,
			Abstract:          c.Abstract,
		})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	presentation := r.Presentation
	if presentation == nil {
		presentation = hierarchy.New()
	}
	dimensions := r.Dimensions
	if dimensions == nil {
		dimensions = hierarchy.New()
	}
	formulas := r.Formulas
	if formulas == nil {
		formulas = formula.NewForest()
	}

	buf.WriteString(`},"presentation_relationships":`)
	if err := writeJSON(&buf, presentation); err != nil {
		return nil, err
	}
	buf.WriteString(`,"dimensions":`)
	if err := writeJSON(&buf, dimensions); err != nil {
		return nil, err
	}
	buf.WriteString(`,"formulas":`)
	if err := writeJSON(&buf, formulas); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v json.Marshaler) error {
	b, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
