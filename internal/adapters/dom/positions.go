package dom

import (
	"strings"
	"unicode/utf8"

	"go.trai.ch/xmlres/internal/core/domain"
)

// startTagRanges returns the range of every start tag name in document order,
// which is the pre-order of the element tree. Comments, CDATA sections,
// processing instructions and declarations are skipped.
func startTagRanges(src string) []domain.Range {
	var (
		out  []domain.Range
		pos  lineCounter
		i    int
		size = len(src)
	)
	skipTo := func(marker string) {
		j := strings.Index(src[i:], marker)
		if j < 0 {
			i = size
			return
		}
		i += j + len(marker)
	}
	for i < size {
		j := strings.IndexByte(src[i:], '<')
		if j < 0 {
			break
		}
		i += j
		rest := src[i:]
		switch {
		case strings.HasPrefix(rest, "<!--"):
			skipTo("-->")
		case strings.HasPrefix(rest, "<![CDATA["):
			skipTo("]]>")
		case strings.HasPrefix(rest, "<?"):
			skipTo("?>")
		case strings.HasPrefix(rest, "<!"):
			i = skipDeclaration(src, i)
		case strings.HasPrefix(rest, "</"):
			skipTo(">")
		default:
			nameStart := i + 1
			nameEnd := nameStart
			for nameEnd < size && !isNameTerminator(src[nameEnd]) {
				nameEnd++
			}
			start := pos.at(src, nameStart)
			end := pos.at(src, nameEnd)
			out = append(out, domain.Range{Start: start, End: end})
			i = skipTag(src, nameEnd)
		}
	}
	return out
}

func isNameTerminator(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '>', '/':
		return true
	}
	return false
}

// skipTag moves past the end of a start tag, honoring quoted attribute values.
func skipTag(src string, i int) int {
	var quote byte
	for ; i < len(src); i++ {
		c := src[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return i + 1
		}
	}
	return i
}

// skipDeclaration moves past a <!...> declaration including a bracketed internal subset.
func skipDeclaration(src string, i int) int {
	depth := 0
	var quote byte
	for i += 2; i < len(src); i++ {
		c := src[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
		case c == '<' && strings.HasPrefix(src[i:], "<!--"):
			j := strings.Index(src[i:], "-->")
			if j < 0 {
				return len(src)
			}
			i += j + 2
		case c == '>' && depth <= 0:
			return i + 1
		}
	}
	return i
}

// lineCounter converts byte offsets to zero-based line and UTF-16 character
// positions. Offsets must be requested in increasing order.
type lineCounter struct {
	offset    int
	line      int
	lineStart int
}

func (l *lineCounter) at(src string, offset int) domain.Position {
	for ; l.offset < offset; l.offset++ {
		if src[l.offset] == '\n' {
			l.line++
			l.lineStart = l.offset + 1
		}
	}
	return domain.Position{Line: l.line, Character: utf16Len(src[l.lineStart:offset])}
}

func utf16Len(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

type prologKind uint8

const (
	prologDoctype prologKind = iota
	prologPI
)

// prologToken is a DOCTYPE directive or processing instruction before the
// document element. Text excludes the <! / <? and > / ?> markers.
type prologToken struct {
	kind prologKind
	text string
}

// scanProlog returns the DOCTYPE and processing instructions preceding the
// first start tag, in document order.
func scanProlog(src string) []prologToken {
	var out []prologToken
	i := 0
	for i < len(src) {
		j := strings.IndexByte(src[i:], '<')
		if j < 0 {
			break
		}
		i += j
		rest := src[i:]
		switch {
		case strings.HasPrefix(rest, "<!--"):
			k := strings.Index(rest, "-->")
			if k < 0 {
				return out
			}
			i += k + 3
		case strings.HasPrefix(rest, "<?"):
			k := strings.Index(rest, "?>")
			if k < 0 {
				return out
			}
			out = append(out, prologToken{kind: prologPI, text: rest[2:k]})
			i += k + 2
		case strings.HasPrefix(rest, "<!DOCTYPE"):
			end := skipDeclaration(src, i)
			if end-1 > i+2 && src[end-1] == '>' {
				out = append(out, prologToken{kind: prologDoctype, text: src[i+2 : end-1]})
			}
			i = end
		default:
			return out
		}
	}
	return out
}
