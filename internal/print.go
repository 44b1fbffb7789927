package internal

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/tokmatch/tokmatch/rule"
	"github.com/tokmatch/tokmatch/token"
)

var (
	ruleStyle  = color.New(color.FgYellow, color.Bold)
	fileStyle  = color.New(color.FgCyan, color.Bold)
	lineStyle  = color.New(color.FgBlue, color.Bold)
	valueStyle = color.New(color.FgGreen)
	countStyle = color.New(color.FgMagenta, color.Bold)
)

// FormatMatch renders one match the way issues are usually reported:
// a rule-name header, the file location, and the matched token values.
func FormatMatch(filename, ruleName string, m *rule.Match) string {
	var builder strings.Builder

	builder.WriteString(ruleStyle.Sprintf("match: %s", ruleName))
	builder.WriteString("\n")
	builder.WriteString(lineStyle.Sprint(" --> "))
	builder.WriteString(fileStyle.Sprint(location(filename, m)))
	builder.WriteString("\n")

	if m.ZeroWidth() {
		builder.WriteString(fmt.Sprintf("  zero-width at token %d\n", m.Start))
		return builder.String()
	}

	builder.WriteString(fmt.Sprintf("  tokens %d..%d: ", m.Start, m.End))
	builder.WriteString(valueStyle.Sprint(strings.Join(m.Values(), " ")))
	builder.WriteString("\n")
	return builder.String()
}

// FormatRewriteSummary renders a before/after line pair for one file.
func FormatRewriteSummary(filename string, before, after []token.Token) string {
	var builder strings.Builder
	builder.WriteString(fileStyle.Sprint(filename))
	builder.WriteString(countStyle.Sprintf(" (%d -> %d tokens)\n", len(before), len(after)))
	builder.WriteString("  - ")
	builder.WriteString(joinValues(before))
	builder.WriteString("\n  + ")
	builder.WriteString(valueStyle.Sprint(joinValues(after)))
	builder.WriteString("\n")
	return builder.String()
}

func location(filename string, m *rule.Match) string {
	if m.Len() > 0 && m.Tokens[0].Pos().Known() {
		return fmt.Sprintf("%s:%s", filename, m.Tokens[0].Pos())
	}
	return filename
}

func joinValues(tokens []token.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.IsShadow() {
			continue
		}
		parts = append(parts, tok.Value())
	}
	return strings.Join(parts, " ")
}
