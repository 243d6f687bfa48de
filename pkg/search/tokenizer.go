package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Token string

type Tokenizer struct {
	MaxTokens int
}

// letters that do not decompose into a base letter and a mark
var commonIssues = map[rune]rune{
	'ß': 's',
	'æ': 'a',
	'ø': 'o',
	'đ': 'd',
	'ł': 'l',
}

func removeMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

func NormalizeWord(text string) Token {
	text = removeMarks(text)
	ret := make([]rune, 0, len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			l := unicode.ToLower(r)
			if replacement, ok := commonIssues[l]; ok {
				l = replacement
			}
			ret = append(ret, l)
		}
	}
	return Token(ret)
}

func isSeparator(chr rune) bool {
	switch chr {
	case ' ', '\n', '\t', ',', ':', '.', '!', '?', ';', '(', ')', '[', ']', '{', '}', '"', '\'', '/', '|':
		return true
	}
	return false
}

func SplitWords(text string, onWord func(word string, count int, last bool) bool) {
	count := 0
	lastSplit := 0
	for idx, chr := range text {
		if isSeparator(chr) {
			if idx > lastSplit {
				if !onWord(text[lastSplit:idx], count, false) {
					return
				}
				count++
			}
			lastSplit = idx + 1
		}
	}
	if lastSplit < len(text) {
		onWord(text[lastSplit:], count, true)
	}
}

// Tokenize returns the unique normalized words of text in order of appearance.
func (t *Tokenizer) Tokenize(text string) []Token {
	ret := make([]Token, 0)
	found := map[Token]struct{}{}
	SplitWords(text, func(word string, count int, last bool) bool {
		normalized := NormalizeWord(word)
		if len(normalized) == 0 {
			return true
		}
		if _, has := found[normalized]; !has {
			found[normalized] = struct{}{}
			ret = append(ret, normalized)
		}
		return t.MaxTokens <= 0 || len(ret) < t.MaxTokens
	})
	return ret
}

// NormalizeText normalizes every word and joins them with single spaces.
func NormalizeText(text string) string {
	words := make([]string, 0)
	SplitWords(text, func(word string, _ int, _ bool) bool {
		if n := NormalizeWord(word); n != "" {
			words = append(words, string(n))
		}
		return true
	})
	return strings.Join(words, " ")
}
