package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"gastozap/internal/core"
)

// DefaultKeywordTable is the built-in category vocabulary, used when no
// categories file is configured. Order matters: the classifier stops at
// the first keyword contained in the message.
func DefaultKeywordTable() []core.KeywordRule {
	return []core.KeywordRule{
		{Keyword: "mercado", Label: "Mercado"},
		{Keyword: "feira", Label: "Mercado"},
		{Keyword: "padaria", Label: "Mercado"},
		{Keyword: "farmácia", Label: "Farmácia"},
		{Keyword: "remédio", Label: "Farmácia"},
		{Keyword: "ifood", Label: "Alimentação"},
		{Keyword: "restaurante", Label: "Alimentação"},
		{Keyword: "lanche", Label: "Alimentação"},
		{Keyword: "pizza", Label: "Alimentação"},
		{Keyword: "uber", Label: "Transporte"},
		{Keyword: "gasolina", Label: "Transporte"},
		{Keyword: "ônibus", Label: "Transporte"},
		{Keyword: "aluguel", Label: "Moradia"},
		{Keyword: "luz", Label: "Contas"},
		{Keyword: "água", Label: "Contas"},
		{Keyword: "internet", Label: "Contas"},
		{Keyword: "cinema", Label: "Lazer"},
		{Keyword: "jogo", Label: "Lazer"},
	}
}

// LoadKeywordTable reads a category vocabulary from a file, one
// "keyword=Label" pair per line, preserving line order as match
// precedence. Blank lines and #-comments are skipped.
func LoadKeywordTable(path string) ([]core.KeywordRule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open categories file: %w", err)
	}
	defer f.Close()

	var rules []core.KeywordRule
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		keyword, label, ok := strings.Cut(line, "=")
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		label = strings.TrimSpace(label)
		if !ok || keyword == "" || label == "" {
			return nil, fmt.Errorf("categories file line %d: want keyword=Label, got %q", lineNo, line)
		}
		rules = append(rules, core.KeywordRule{Keyword: keyword, Label: label})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}
	return rules, nil
}

// KeywordTable resolves the configured vocabulary: the categories file
// when set, the built-in table otherwise.
func (c *Config) KeywordTable() ([]core.KeywordRule, error) {
	if c.CategoriesFile == "" {
		return DefaultKeywordTable(), nil
	}
	return LoadKeywordTable(c.CategoriesFile)
}
