package presets

import (
	"fmt"
	"io"
	"iter"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/refinly/loan-referral/internal/entity"
)

// Store holds the preset Q&A list. It is immutable after construction.
type Store struct {
	entries []entity.PresetQA
}

// NewStore normalizes questions and drops entries without a question.
func NewStore(entries []entity.PresetQA) *Store {
	kept := make([]entity.PresetQA, 0, len(entries))
	for _, e := range entries {
		q := entity.NormalizeMessage(e.Question)
		if q == "" {
			continue
		}
		kept = append(kept, entity.PresetQA{Question: q, Answer: e.Answer})
	}
	return &Store{entries: kept}
}

// Load reads a YAML list of {question, answer}. An empty path yields an empty
// store.
func Load(path string) (*Store, error) {
	if path == "" {
		return NewStore(nil), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open presets: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

func Decode(r io.Reader) (*Store, error) {
	var entries []entity.PresetQA
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	return NewStore(entries), nil
}

// All yields entries in file order.
func (s *Store) All() iter.Seq[entity.PresetQA] {
	return func(yield func(entity.PresetQA) bool) {
		for _, e := range s.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Match returns the answer of the first entry whose question equals text
// after normalization.
func (s *Store) Match(text string) (string, bool) {
	key := entity.NormalizeMessage(text)
	for qa := range s.All() {
		if qa.Question == key {
			return qa.Answer, true
		}
	}
	return "", false
}

func (s *Store) Len() int {
	return len(s.entries)
}
