// Package printer renders syntax trees as C# or Java source text.
package printer

import (
	"strings"

	"ctorfield.dev/pkg/ctorfield/internal/syntax"
)

const defaultIndent = "    "

// Options configures rendering.
type Options struct {
	Language syntax.Language
	Indent   string
	// Reformat lists nodes rendered canonically even when verbatim text is known.
	Reformat []syntax.NodeID
}

type printer struct {
	lang     syntax.Language
	indent   string
	reformat map[syntax.NodeID]struct{}
	spans    map[syntax.NodeID]syntax.Span
	b        strings.Builder
}

// Print renders root.
func Print(root syntax.Node, opts Options) string {
	p := newPrinter(opts)
	p.node(root, 0)

	return p.b.String()
}

// Layout renders root and returns the text together with a tree whose spans
// point into that text.
func Layout(root syntax.Node, opts Options) (string, syntax.Node) {
	p := newPrinter(opts)
	p.node(root, 0)

	return p.b.String(), syntax.WithSpans(root, p.spans)
}

func newPrinter(opts Options) *printer {
	p := &printer{
		lang:     opts.Language,
		indent:   opts.Indent,
		reformat: make(map[syntax.NodeID]struct{}, len(opts.Reformat)),
		spans:    make(map[syntax.NodeID]syntax.Span),
	}

	if p.lang == "" {
		p.lang = syntax.CSharp
	}

	if p.indent == "" {
		p.indent = defaultIndent
	}

	for _, id := range opts.Reformat {
		p.reformat[id] = struct{}{}
	}

	return p
}

func (p *printer) write(parts ...string) {
	for _, s := range parts {
		p.b.WriteString(s)
	}
}

func (p *printer) pad(depth int) {
	p.write(strings.Repeat(p.indent, depth))
}

// mark records the span of n around fn.
func (p *printer) mark(n syntax.Node, fn func()) {
	start := p.b.Len()
	fn()
	p.spans[n.ID()] = syntax.Span{Start: start, End: p.b.Len()}
}

// verbatim reports whether text should be printed as-is for n.
func (p *printer) verbatim(n syntax.Node, text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	_, dirty := p.reformat[n.ID()]

	return !dirty
}

func (p *printer) node(n syntax.Node, depth int) {
	switch v := n.(type) {
	case *syntax.CompilationUnit:
		p.mark(v, func() { p.unit(v) })
	case *syntax.Class:
		p.pad(depth)
		p.mark(v, func() { p.class(v, depth) })
	case *syntax.Constructor:
		p.pad(depth)
		p.mark(v, func() { p.constructor(v, depth) })
	case *syntax.Block:
		p.mark(v, func() { p.block(v, depth) })
	case *syntax.Parameter:
		p.mark(v, func() { p.parameter(v) })
	case *syntax.Field:
		p.pad(depth)
		p.mark(v, func() { p.field(v) })
	case *syntax.EventField:
		p.pad(depth)
		p.mark(v, func() { p.eventField(v) })
	case *syntax.Property:
		p.pad(depth)
		p.mark(v, func() { p.property(v) })
	case *syntax.Method:
		p.pad(depth)
		p.mark(v, func() { p.method(v) })
	case *syntax.Event:
		p.pad(depth)
		p.mark(v, func() { p.event(v) })
	case *syntax.Statement:
		p.pad(depth)
		p.mark(v, func() { p.write(strings.TrimSpace(v.Text)) })
	case *syntax.Assignment:
		p.pad(depth)
		p.mark(v, func() { p.write(v.Receiver, ".", v.Member, " = ", v.Value, ";") })
	case *syntax.Opaque:
		p.pad(depth)
		p.mark(v, func() { p.write(strings.TrimSpace(v.Text)) })
	}
}

func (p *printer) unit(u *syntax.CompilationUnit) {
	for i, member := range u.Members {
		if i > 0 && !sameGroup(u.Members[i-1], member) {
			p.write("\n")
		}

		p.node(member, 0)
		p.write("\n")
	}
}

func (p *printer) class(c *syntax.Class, depth int) {
	header := strings.TrimSpace(c.Header)
	if header == "" {
		header = joinWords(c.Modifiers.Render(p.lang), "class", c.Name)
	}

	p.write(header)
	p.openBrace(depth)

	for i, member := range c.Members {
		if i > 0 && needsBlankLine(c.Members[i-1], member) {
			p.write("\n")
		}

		p.node(member, depth+1)
		p.write("\n")
	}

	p.pad(depth)
	p.write("}")
}

func (p *printer) openBrace(depth int) {
	if p.lang == syntax.Java {
		p.write(" {\n")
		return
	}

	p.write("\n")
	p.pad(depth)
	p.write("{\n")
}

func (p *printer) constructor(c *syntax.Constructor, depth int) {
	prefix := strings.TrimSpace(c.Prefix)
	if prefix == "" {
		prefix = c.Modifiers.Render(p.lang)
	}

	p.write(joinWords(prefix, c.TypeParameters, c.Name), "(")

	for i, param := range c.Parameters {
		if i > 0 {
			p.write(", ")
		}

		p.node(param, depth)
	}

	p.write(")")

	if throws := strings.TrimSpace(c.Throws); throws != "" {
		p.write(" ", throws)
	}

	if init := strings.TrimSpace(c.Initializer); init != "" {
		p.write(" : ", init)
	}

	switch {
	case c.Body != nil:
		if p.lang == syntax.Java {
			p.write(" ")
		} else {
			p.write("\n")
			p.pad(depth)
		}

		p.node(c.Body, depth)
	case strings.TrimSpace(c.ExpressionBody) != "":
		p.write(" => ", strings.TrimSuffix(strings.TrimSpace(c.ExpressionBody), ";"), ";")
	default:
		p.write(";")
	}
}

func (p *printer) block(b *syntax.Block, depth int) {
	p.write("{\n")

	for _, stmt := range b.Statements {
		p.node(stmt, depth+1)
		p.write("\n")
	}

	p.pad(depth)
	p.write("}")
}

func (p *printer) parameter(param *syntax.Parameter) {
	if p.verbatim(param, param.Text) {
		p.write(strings.TrimSpace(param.Text))
		return
	}

	p.write(joinWords(param.Modifiers.Render(p.lang), param.Type.Text, param.Name))
}

func (p *printer) field(f *syntax.Field) {
	if p.verbatim(f, f.Text) {
		p.write(strings.TrimSpace(f.Text))
		return
	}

	p.write(joinWords(f.Modifiers.Render(p.lang), f.Type.Text, renderVariables(f.Variables)), ";")
}

func (p *printer) eventField(e *syntax.EventField) {
	if p.verbatim(e, e.Text) {
		p.write(strings.TrimSpace(e.Text))
		return
	}

	p.write(joinWords(e.Modifiers.Render(p.lang), "event", e.Type.Text, renderVariables(e.Variables)), ";")
}

func (p *printer) property(prop *syntax.Property) {
	if p.verbatim(prop, prop.Text) {
		p.write(strings.TrimSpace(prop.Text))
		return
	}

	p.write(joinWords(prop.Modifiers.Render(p.lang), prop.Type.Text, prop.Name), " { get; set; }")
}

func (p *printer) method(m *syntax.Method) {
	if p.verbatim(m, m.Text) {
		p.write(strings.TrimSpace(m.Text))
		return
	}

	ret := m.ReturnType.Text
	if ret == "" {
		ret = "void"
	}

	p.write(joinWords(m.Modifiers.Render(p.lang), ret, m.Name), "() { }")
}

func (p *printer) event(e *syntax.Event) {
	if p.verbatim(e, e.Text) {
		p.write(strings.TrimSpace(e.Text))
		return
	}

	p.write(joinWords(e.Modifiers.Render(p.lang), "event", e.Type.Text, e.Name), " { add { } remove { } }")
}

func renderVariables(vars []syntax.Variable) string {
	parts := make([]string, 0, len(vars))

	for _, v := range vars {
		if init := strings.TrimSpace(v.Initializer); init != "" {
			parts = append(parts, v.Name+" = "+init)
			continue
		}

		parts = append(parts, v.Name)
	}

	return strings.Join(parts, ", ")
}

func joinWords(words ...string) string {
	out := make([]string, 0, len(words))

	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}

	return strings.Join(out, " ")
}

// needsBlankLine separates block-like members from their neighbours.
func needsBlankLine(prev, next syntax.Node) bool {
	return isBlockLike(prev) || isBlockLike(next)
}

// sameGroup keeps runs of top-level directives (imports, usings) together.
func sameGroup(prev, next syntax.Node) bool {
	a, ok := prev.(*syntax.Opaque)
	if !ok {
		return false
	}

	b, ok := next.(*syntax.Opaque)
	if !ok {
		return false
	}

	return firstWord(a.Text) != "" && firstWord(a.Text) == firstWord(b.Text)
}

func firstWord(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}

func isBlockLike(n syntax.Node) bool {
	switch n.(type) {
	case *syntax.Class, *syntax.Constructor, *syntax.Method, *syntax.Event:
		return true
	}

	return false
}
