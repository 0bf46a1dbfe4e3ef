package services

import (
	"encoding/json"
	"fmt"
	"os"
)

// Alias tables correcting known label variants to the canonical labels
// the vocabularies were trained on. Values absent from a table pass
// through unchanged.
var (
	locationAliases = map[string]string{
		"New Delhi":   "Delhi",
		"East Delhi":  "Delhi",
		"West Delhi":  "Delhi",
		"North Delhi": "Delhi",
		"South Delhi": "Delhi",
		"Delhi NCR":   "Delhi",
	}

	areaTypeAliases = map[string]string{
		"Commercial":      "Industrial Areas",
		"Commercial Area": "Industrial Areas",
		"Industrial":      "Industrial Areas",
		"Residential":     "Residential, Rural and other Areas",
		"Urban":           "Residential, Rural and other Areas",
	}
)

// unknownLabel is the sentinel a vocabulary may carry for values never
// seen during training.
const unknownLabel = "unknown"

// Vocabulary maps a fixed set of category labels to dense integer
// codes, mirroring the label encoder used at training time: the code
// of a label is its index in the class list. Immutable after
// construction, safe for concurrent readers.
type Vocabulary struct {
	classes []string
	index   map[string]int
}

func NewVocabulary(classes []string) (*Vocabulary, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("vocabulary must contain at least one class")
	}
	index := make(map[string]int, len(classes))
	for i, class := range classes {
		if _, dup := index[class]; dup {
			return nil, fmt.Errorf("duplicate class %q", class)
		}
		index[class] = i
	}
	return &Vocabulary{classes: classes, index: index}, nil
}

// LoadVocabulary reads a JSON artifact of the form {"classes": [...]}
// exported by the offline training step.
func LoadVocabulary(path string) (*Vocabulary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary %s: %w", path, err)
	}
	var artifact struct {
		Classes []string `json:"classes"`
	}
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, fmt.Errorf("parse vocabulary %s: %w", path, err)
	}
	v, err := NewVocabulary(artifact.Classes)
	if err != nil {
		return nil, fmt.Errorf("vocabulary %s: %w", path, err)
	}
	return v, nil
}

func (v *Vocabulary) Size() int { return len(v.classes) }

// Classes returns a copy of the class list in code order.
func (v *Vocabulary) Classes() []string {
	out := make([]string, len(v.classes))
	copy(out, v.classes)
	return out
}

// SafeEncode returns the integer code for value. Unrecognized values
// never fail: if the vocabulary carries the "unknown" sentinel its
// code is returned, otherwise the code of the first class. The second
// return reports whether a fallback was taken — a degraded encoding,
// not an error.
func (v *Vocabulary) SafeEncode(value string) (int, bool) {
	if code, ok := v.index[value]; ok {
		return code, false
	}
	if code, ok := v.index[unknownLabel]; ok {
		return code, true
	}
	return 0, true
}

// Normalize maps value through the alias table, returning it unchanged
// when no alias exists. Total over all strings.
func Normalize(value string, aliases map[string]string) string {
	if canonical, ok := aliases[value]; ok {
		return canonical
	}
	return value
}

func NormalizeLocation(value string) string { return Normalize(value, locationAliases) }

func NormalizeAreaType(value string) string { return Normalize(value, areaTypeAliases) }
