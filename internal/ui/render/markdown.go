// Package render draws slides, chart series and assistant answers as
// styled terminal text.
package render

import (
	"bytes"
	"regexp"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/reflow/wordwrap"

	"github.com/abhisek/pitchdeck/internal/ui/theme"
)

var (
	boldPattern   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern = regexp.MustCompile(`(^|[^*])\*([^*\s][^*]*)\*`)
	codePattern   = regexp.MustCompile("`([^`]+)`")

	headingStyle = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	italicStyle  = lipgloss.NewStyle().Foreground(theme.Text).Italic(true)
	codeStyle    = lipgloss.NewStyle().Foreground(theme.Accent)
	bulletStyle  = lipgloss.NewStyle().Foreground(theme.Primary)
)

// Markdown renders the small markdown subset slide bodies and answers use:
// headings, bullets, bold, italic, inline code and fenced code blocks.
func Markdown(content string, width int) string {
	var out []string
	var code strings.Builder
	inCode := false
	lang := ""

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if !inCode {
				inCode = true
				lang = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "```"))
				code.Reset()
				continue
			}
			inCode = false
			out = append(out, highlightCode(code.String(), lang))
			continue
		}
		if inCode {
			if code.Len() > 0 {
				code.WriteByte('\n')
			}
			code.WriteString(line)
			continue
		}
		out = append(out, markdownLine(line, width))
	}
	if inCode {
		out = append(out, highlightCode(code.String(), lang))
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}

func markdownLine(line string, width int) string {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range []string{"### ", "## ", "# "} {
		if strings.HasPrefix(trimmed, prefix) {
			return headingStyle.Render(strings.TrimPrefix(trimmed, prefix))
		}
	}
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		return Bullet(Inline(trimmed[2:]), width)
	}
	return Wrap(Inline(line), width)
}

// Bullet renders one list item with a hanging indent.
func Bullet(text string, width int) string {
	lines := strings.Split(Wrap(text, width-4), "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = "  " + bulletStyle.Render("•") + " " + lines[i]
		} else {
			lines[i] = "    " + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

// Inline applies bold, italic and inline code styling.
func Inline(s string) string {
	s = codePattern.ReplaceAllStringFunc(s, func(m string) string {
		return codeStyle.Render(codePattern.FindStringSubmatch(m)[1])
	})
	s = boldPattern.ReplaceAllStringFunc(s, func(m string) string {
		return theme.Emphasis.Render(boldPattern.FindStringSubmatch(m)[1])
	})
	s = italicPattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := italicPattern.FindStringSubmatch(m)
		return sub[1] + italicStyle.Render(sub[2])
	})
	return s
}

// Wrap word-wraps text to width, preserving ANSI sequences.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}
