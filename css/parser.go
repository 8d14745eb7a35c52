// Package css ties the layers together: it parses stylesheet text into
// rules and serializes them back, with compaction and color fallback
// generation in between.
package css

import (
	"bytes"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"cssc/css/compat"
	"cssc/css/properties"
	"cssc/css/rules"
	"cssc/css/values"
)

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Rules:    make([]rules.Rule, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	p.parseRules(parser, sheet, &sheet.Rules, topLevel)
	return sheet
}

// nesting context of parseRules; the loop terminates on EndAtRuleGrammar
// only when it is consuming an at-rule body.
type ruleContext uint8

const (
	topLevel ruleContext = iota
	atRuleBody
)

func (p *Parser) parseRules(parser *css.Parser, sheet *Stylesheet, dest *[]rules.Rule, ctx ruleContext) {
	// Grouped selectors arrive one per grammar event; the block itself
	// opens with the last of them.
	var pending []string

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err.Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(err))
				sheet.Warnings = append(sheet.Warnings, "parse error: "+err.Error())
			}
			return

		case css.EndAtRuleGrammar:
			if ctx == atRuleBody {
				return
			}

		case css.BeginAtRuleGrammar:
			atRule := string(data)
			prefix, base := compat.SplitPrefixedName(strings.TrimPrefix(strings.ToLower(atRule), "@"))
			switch base {
			case "keyframes":
				if kf, ok := p.parseKeyframes(parser, sheet, prefix); ok {
					*dest = append(*dest, kf)
				}
			case "supports":
				*dest = append(*dest, p.parseSupports(parser, sheet))
			default:
				p.skipAtRuleBlock(parser)
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
				sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+atRule)
			}

		case css.AtRuleGrammar:
			atRule := string(data)
			p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+atRule)

		case css.QualifiedRuleGrammar:
			pending = append(pending, p.selectorText(data, parser.Values()))

		case css.BeginRulesetGrammar:
			selectors := strings.Join(append(pending, p.selectorText(data, parser.Values())), ", ")
			pending = nil
			decls := p.parseDeclarations(parser)
			*dest = append(*dest, &rules.StyleRule{
				Selectors:    selectors,
				Declarations: decls,
			})
		}
	}
}

// parseKeyframes consumes a @keyframes body. The rule is dropped with a
// warning when the name is missing or reserved.
func (p *Parser) parseKeyframes(parser *css.Parser, sheet *Stylesheet, prefix compat.VendorPrefix) (*rules.KeyframesRule, bool) {
	s := values.NewTokenStream(values.CopyTokens(parser.Values()))
	name, err := values.ParseCustomIdent(s)
	if err != nil {
		sheet.Warnings = append(sheet.Warnings, "bad @keyframes name: "+err.Error())
		p.skipAtRuleBlock(parser)
		return nil, false
	}

	kf := &rules.KeyframesRule{Name: name, Prefix: prefix}
	var pending []rules.KeyframeSelector
	pendingOK := true
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return kf, true

		case css.QualifiedRuleGrammar:
			sels, ok := p.parseKeyframeSelectors(data, parser.Values(), sheet)
			pending = append(pending, sels...)
			pendingOK = pendingOK && ok

		case css.BeginRulesetGrammar:
			sels, ok := p.parseKeyframeSelectors(data, parser.Values(), sheet)
			sels = append(pending, sels...)
			ok = ok && pendingOK
			pending, pendingOK = nil, true
			decls := p.parseDeclarations(parser)
			if ok {
				kf.Keyframes = append(kf.Keyframes, rules.Keyframe{
					Selectors:    sels,
					Declarations: decls,
				})
			}
		}
	}
}

func (p *Parser) parseKeyframeSelectors(data []byte, tokens []css.Token, sheet *Stylesheet) ([]rules.KeyframeSelector, bool) {
	all := make([]css.Token, 0, len(tokens)+1)
	if len(data) > 0 {
		all = append(all, css.Token{TokenType: tokenTypeOf(data), Data: data})
	}
	all = append(all, tokens...)

	s := values.NewTokenStream(values.CopyTokens(all))
	sels, err := values.ParseCommaSeparated(s, rules.ParseKeyframeSelector)
	if err != nil || !s.Done() {
		text := p.selectorText(data, tokens)
		p.log.Debug("Skipping keyframe block", zap.String("selector", text))
		sheet.Warnings = append(sheet.Warnings, "bad keyframe selector: "+text)
		return nil, false
	}
	return sels, true
}

// tokenTypeOf classifies the leading selector bytes the grammar walker
// hands over separately from the value tokens.
func tokenTypeOf(data []byte) css.TokenType {
	if len(data) > 0 && data[len(data)-1] == '%' {
		return css.PercentageToken
	}
	return css.IdentToken
}

// parseSupports consumes a @supports body, keeping the condition as
// source text.
func (p *Parser) parseSupports(parser *css.Parser, sheet *Stylesheet) *rules.SupportsRule {
	sup := &rules.SupportsRule{Condition: p.selectorText(nil, parser.Values())}
	p.parseRules(parser, sheet, &sup.Rules, atRuleBody)
	return sup
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) properties.DeclarationList {
	var decls properties.DeclarationList

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			name := string(data)
			tokens := values.CopyTokens(parser.Values())
			if len(tokens) > 0 {
				decls.Push(properties.ParseDeclaration(name, tokens))
			}
		}
	}
}

// selectorText rebuilds selector or prelude source text from token data,
// collapsing whitespace runs.
func (p *Parser) selectorText(data []byte, tokens []css.Token) string {
	var sb strings.Builder
	sb.Write(data)
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			sb.WriteByte(' ')
			continue
		}
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}
