package search

import (
	"testing"
)

func TestTokenizer(t *testing.T) {
	token := Tokenizer{
		MaxTokens: 100,
	}
	res := token.Tokenize("FR-LSH cable, 1.1 kV (armoured)")
	if len(res) != 5 {
		t.Errorf("Expected 5 tokens but got %d: %v", len(res), res)
	}
	if res[0] != "frlsh" {
		t.Errorf("Expected 'frlsh' but got %s", res[0])
	}
	if res[1] != "cable" {
		t.Errorf("Expected 'cable' but got %s", res[1])
	}
	if res[4] != "armoured" {
		t.Errorf("Expected 'armoured' but got %s", res[4])
	}
}

func TestTokenizerDeDuplication(t *testing.T) {
	token := Tokenizer{
		MaxTokens: 100,
	}
	res := token.Tokenize("Fan fan FAN, ceiling fan")
	if len(res) != 2 {
		t.Errorf("Expected 2 tokens but got %d", len(res))
	}
	if res[0] != "fan" || res[1] != "ceiling" {
		t.Errorf("Expected [fan ceiling] but got %v", res)
	}
}

func TestTokenizerMaxTokens(t *testing.T) {
	token := Tokenizer{MaxTokens: 2}
	res := token.Tokenize("one two three four")
	if len(res) != 2 {
		t.Errorf("Expected 2 tokens but got %v", res)
	}
}

func TestCommonCharIssues(t *testing.T) {
	res := NormalizeWord("öôüûÿçñßæø")
	if res != "oouuycnsao" {
		t.Errorf("Expected 'oouuycnsao' but got %s", res)
	}
}

func TestNormalizeText(t *testing.T) {
	res := NormalizeText("  Café   Lugs; Crimping ")
	if res != "cafe lugs crimping" {
		t.Errorf("Expected 'cafe lugs crimping' but got %q", res)
	}
}
