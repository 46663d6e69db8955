package printer

import (
	"strings"

	"ctorfield.dev/pkg/ctorfield/internal/syntax"
)

// Splice renders root against src, the text its positioned nodes were parsed
// from. Unedited subtrees are copied from src byte for byte, text between
// children (comments, blank lines, layout) is kept, and synthesized nodes
// are printed next to their nearest positioned sibling using its indentation.
//
// A root without a valid span inside src is printed with Print.
func Splice(src string, root syntax.Node, opts Options) string {
	span := root.Span()
	if span.IsZero() || span.Start < 0 || span.End > len(src) || span.Start > span.End {
		return Print(root, opts)
	}

	s := &splicer{src: src, opts: opts, unit: indentUnit(src, opts.Indent)}
	s.reformat = make(map[syntax.NodeID]struct{}, len(opts.Reformat))

	for _, id := range opts.Reformat {
		s.reformat[id] = struct{}{}
	}

	return src[:span.Start] + s.node(root) + src[span.End:]
}

type splicer struct {
	src      string
	opts     Options
	unit     string
	reformat map[syntax.NodeID]struct{}
}

func (s *splicer) node(n syntax.Node) string {
	span := n.Span()

	if _, dirty := s.reformat[n.ID()]; dirty {
		return s.render(n)
	}

	if !s.edited(n) {
		return s.src[span.Start:span.End]
	}

	return s.container(n, syntax.Children(n))
}

// edited reports whether n or a descendant was synthesized or must be reformatted.
func (s *splicer) edited(n syntax.Node) bool {
	if n.Span().IsZero() {
		return true
	}

	if _, dirty := s.reformat[n.ID()]; dirty {
		return true
	}

	for _, child := range syntax.Children(n) {
		if s.edited(child) {
			return true
		}
	}

	return false
}

func (s *splicer) render(n syntax.Node) string {
	return strings.TrimSpace(Print(n, s.opts))
}

func (s *splicer) container(n syntax.Node, children []syntax.Node) string {
	var b strings.Builder

	span := n.Span()
	cursor := span.Start

	for i, child := range children {
		if !child.Span().IsZero() {
			b.WriteString(s.src[cursor:child.Span().Start])
			b.WriteString(s.node(child))
			cursor = child.Span().End

			continue
		}

		text := s.render(child)

		if next, ok := positioned(children[i+1:]); ok {
			cursor = s.insertBefore(&b, cursor, next, text)
			continue
		}

		if i > 0 {
			if prev, ok := lastPositioned(children[:i]); ok {
				cursor = s.insertAfter(&b, cursor, span, prev, text)
				continue
			}
		}

		cursor = s.insertInto(&b, cursor, span, text)
	}

	b.WriteString(s.src[cursor:span.End])

	return b.String()
}

// insertBefore places text on its own line above next, or inline when next
// does not start its line.
func (s *splicer) insertBefore(b *strings.Builder, cursor int, next syntax.Node, text string) int {
	at := next.Span().Start
	ls := lineStart(s.src, at)

	if ls >= cursor && isBlank(s.src[ls:at]) {
		b.WriteString(s.src[cursor:ls])
		b.WriteString(s.src[ls:at] + text + "\n")

		return ls
	}

	b.WriteString(s.src[cursor:at])
	b.WriteString(text + " ")

	return at
}

// insertAfter places text on a new line below prev, or inline when the rest
// of the line holds more than whitespace or the closing brace.
func (s *splicer) insertAfter(b *strings.Builder, cursor int, parent syntax.Span, prev syntax.Node, text string) int {
	le := lineEnd(s.src, cursor)

	if le < parent.End-1 && isBlank(s.src[cursor:le]) {
		b.WriteString(s.src[cursor:le])
		b.WriteString("\n" + lineIndent(s.src, prev.Span().Start) + text)

		return le
	}

	b.WriteString(" " + text)

	return cursor
}

// insertInto places text inside an empty braced container.
func (s *splicer) insertInto(b *strings.Builder, cursor int, parent syntax.Span, text string) int {
	closing := parent.End - 1
	if closing < cursor || s.src[closing] != '}' {
		b.WriteString(s.src[cursor:parent.End])
		b.WriteString("\n" + text)

		return parent.End
	}

	ls := lineStart(s.src, closing)
	if ls > cursor && isBlank(s.src[ls:closing]) {
		b.WriteString(s.src[cursor:ls])
		b.WriteString(s.src[ls:closing] + s.unit + text + "\n")

		return ls
	}

	base := lineIndent(s.src, parent.Start)

	b.WriteString(strings.TrimRight(s.src[cursor:closing], " \t"))
	b.WriteString("\n" + base + s.unit + text + "\n" + base)

	return closing
}

func positioned(nodes []syntax.Node) (syntax.Node, bool) {
	for _, n := range nodes {
		if !n.Span().IsZero() {
			return n, true
		}
	}

	return nil, false
}

func lastPositioned(nodes []syntax.Node) (syntax.Node, bool) {
	for i := len(nodes) - 1; i >= 0; i-- {
		if !nodes[i].Span().IsZero() {
			return nodes[i], true
		}
	}

	return nil, false
}

func lineStart(src string, at int) int {
	return strings.LastIndexByte(src[:at], '\n') + 1
}

func lineEnd(src string, from int) int {
	if i := strings.IndexByte(src[from:], '\n'); i >= 0 {
		return from + i
	}

	return len(src)
}

// lineIndent returns the leading whitespace of the line holding pos.
func lineIndent(src string, pos int) string {
	ls := lineStart(src, pos)
	end := ls

	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}

	return src[ls:end]
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// indentUnit is the configured indent, a tab for tab-indented sources, or
// four spaces.
func indentUnit(src, configured string) string {
	if configured != "" {
		return configured
	}

	if strings.Contains(src, "\n\t") {
		return "\t"
	}

	return defaultIndent
}
