package ui

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ParseCSS parses a primitive CSS file: rulesets whose selectors are .class, #id,
// a node type or *, separated by commas. Combinators and @rules are skipped.
// Later rules override earlier ones.
func ParseCSS(content string) (*Stylesheet, error) {
	return ReadCSS(strings.NewReader(content))
}

// ReadCSS is ParseCSS over a reader.
func ReadCSS(r io.Reader) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	p := css.NewParser(parse.NewInput(r), false)
	var current []string
	var props map[string]string
	depth := 0
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != io.EOF {
				return sheet, fmt.Errorf("ui: css: %w", err)
			}
			return sheet, nil
		case css.BeginAtRuleGrammar:
			depth++
		case css.EndAtRuleGrammar:
			depth--
		case css.BeginRulesetGrammar:
			if depth == 0 {
				current = selectors(p.Values())
				props = make(map[string]string)
			}
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			if props != nil {
				props[strings.ToLower(string(data))] = joinTokens(p.Values())
			}
		case css.EndRulesetGrammar:
			for _, sel := range current {
				sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: props})
			}
			current, props = nil, nil
		}
	}
}

// selectors splits a selector list on commas and drops anything compound.
func selectors(tokens []css.Token) []string {
	var out []string
	var cur bytes.Buffer
	valid := true
	flush := func() {
		s := strings.TrimSpace(cur.String())
		if valid && s != "" && !strings.ContainsAny(s, " >+~:[") {
			out = append(out, s)
		}
		cur.Reset()
		valid = true
	}
	for _, t := range tokens {
		switch t.TokenType {
		case css.CommaToken:
			flush()
		case css.WhitespaceToken:
			cur.WriteByte(' ')
		case css.IdentToken, css.HashToken, css.DelimToken:
			cur.Write(t.Data)
		default:
			valid = false
		}
	}
	flush()
	return out
}

func joinTokens(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return strings.TrimSpace(b.String())
}
