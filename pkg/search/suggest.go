package search

import (
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

type Suggestion struct {
	Words []string           `json:"words"`
	Items []types.ProductKey `json:"items"`
}

// Suggester completes the last typed word from the catalog vocabulary and
// lists products whose name fuzzily contains the query. Results keep catalog
// order, nothing is ranked.
type Suggester struct {
	tokenizer *Tokenizer
	words     []string
	names     []string
	keys      []types.ProductKey
}

func NewSuggester(products []*types.Product) *Suggester {
	s := &Suggester{
		tokenizer: &Tokenizer{MaxTokens: 64},
		names:     make([]string, 0, len(products)),
		keys:      make([]types.ProductKey, 0, len(products)),
	}
	vocabulary := map[Token]struct{}{}
	for _, p := range products {
		s.names = append(s.names, p.Name)
		s.keys = append(s.keys, p.Key())
		for _, token := range s.tokenizer.Tokenize(p.Name + " " + p.Type + " " + p.KeyFeatures) {
			if len(token) > 1 {
				vocabulary[token] = struct{}{}
			}
		}
	}
	s.words = make([]string, 0, len(vocabulary))
	for token := range vocabulary {
		s.words = append(s.words, string(token))
	}
	slices.Sort(s.words)
	return s
}

func (s *Suggester) Suggest(query string, limit int) Suggestion {
	ret := Suggestion{Words: []string{}, Items: []types.ProductKey{}}
	tokens := s.tokenizer.Tokenize(query)
	if len(tokens) == 0 {
		return ret
	}
	last := string(tokens[len(tokens)-1])
	start, _ := slices.BinarySearch(s.words, last)
	for i := start; i < len(s.words) && len(ret.Words) < limit; i++ {
		if !strings.HasPrefix(s.words[i], last) {
			break
		}
		ret.Words = append(ret.Words, s.words[i])
	}

	needle := strings.TrimSpace(query)
	for i, name := range s.names {
		if len(ret.Items) >= limit {
			break
		}
		if fuzzy.MatchNormalizedFold(needle, name) {
			ret.Items = append(ret.Items, s.keys[i])
		}
	}
	return ret
}
