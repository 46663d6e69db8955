package adapter

import (
	"errors"
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"ctorfield.dev/pkg/ctorfield/internal/syntax"
)

// ErrSyntax is returned when a source file does not parse cleanly.
var ErrSyntax = errors.New("syntax error")

// ParseJava builds a syntax tree from Java source. Spans are byte offsets into source.
func ParseJava(source []byte) (*syntax.CompilationUnit, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(tree_sitter.NewLanguage(tree_sitter_java.Language())); err != nil {
		return nil, fmt.Errorf("load java grammar: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse java: %w", ErrSyntax)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("parse java: %w", ErrSyntax)
	}

	j := javaBuilder{src: source}

	unit := &syntax.CompilationUnit{Meta: syntax.At(j.span(root))}

	iterateChildren(root, func(child *tree_sitter.Node) {
		unit.Members = append(unit.Members, j.topLevel(child))
	})

	return unit, nil
}

type javaBuilder struct {
	src []byte
}

func iterateChildren(node *tree_sitter.Node, fn func(child *tree_sitter.Node)) {
	cursor := node.Walk()
	defer cursor.Close()

	children := node.Children(cursor)
	for i := range children {
		fn(&children[i])
	}
}

func (j javaBuilder) span(n *tree_sitter.Node) syntax.Span {
	return syntax.Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

func (j javaBuilder) text(n *tree_sitter.Node) string {
	if n == nil {
		return ""
	}

	return n.Utf8Text(j.src)
}

func (j javaBuilder) opaque(n *tree_sitter.Node) *syntax.Opaque {
	return &syntax.Opaque{Meta: syntax.At(j.span(n)), Text: j.text(n)}
}

func (j javaBuilder) topLevel(n *tree_sitter.Node) syntax.Node {
	if n.Kind() == "class_declaration" {
		return j.class(n)
	}

	return j.opaque(n)
}

func (j javaBuilder) modifiers(n *tree_sitter.Node) (syntax.Modifiers, string) {
	var mods *tree_sitter.Node

	iterateChildren(n, func(child *tree_sitter.Node) {
		if mods == nil && child.Kind() == "modifiers" {
			c := *child
			mods = &c
		}
	})

	if mods == nil {
		return 0, ""
	}

	text := j.text(mods)

	return syntax.ParseModifiers(text), text
}

func (j javaBuilder) class(n *tree_sitter.Node) *syntax.Class {
	mods, _ := j.modifiers(n)
	class := &syntax.Class{
		Meta:      syntax.At(j.span(n)),
		Modifiers: mods,
		Name:      j.text(n.ChildByFieldName("name")),
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return class
	}

	class.Header = strings.TrimSpace(string(j.src[n.StartByte():body.StartByte()]))

	iterateChildren(body, func(child *tree_sitter.Node) {
		if member := j.member(child); member != nil {
			class.Members = append(class.Members, member)
		}
	})

	return class
}

func (j javaBuilder) member(n *tree_sitter.Node) syntax.Node {
	switch n.Kind() {
	case "{", "}", ";":
		return nil
	case "field_declaration":
		return j.field(n)
	case "method_declaration":
		mods, _ := j.modifiers(n)

		return &syntax.Method{
			Meta:       syntax.At(j.span(n)),
			Modifiers:  mods,
			ReturnType: syntax.Type(j.text(n.ChildByFieldName("type"))),
			Name:       j.text(n.ChildByFieldName("name")),
			Text:       j.text(n),
		}
	case "constructor_declaration":
		return j.constructor(n)
	case "class_declaration":
		return j.class(n)
	}

	return j.opaque(n)
}

func (j javaBuilder) field(n *tree_sitter.Node) *syntax.Field {
	mods, _ := j.modifiers(n)
	f := &syntax.Field{
		Meta:      syntax.At(j.span(n)),
		Modifiers: mods,
		Type:      syntax.Type(j.text(n.ChildByFieldName("type"))),
		Text:      j.text(n),
	}

	iterateChildren(n, func(child *tree_sitter.Node) {
		if child.Kind() != "variable_declarator" {
			return
		}

		f.Variables = append(f.Variables, syntax.Variable{
			Name:        j.text(child.ChildByFieldName("name")),
			Initializer: j.text(child.ChildByFieldName("value")),
		})
	})

	return f
}

func (j javaBuilder) constructor(n *tree_sitter.Node) *syntax.Constructor {
	mods, prefix := j.modifiers(n)
	c := &syntax.Constructor{
		Meta:           syntax.At(j.span(n)),
		Modifiers:      mods,
		Prefix:         prefix,
		TypeParameters: j.text(n.ChildByFieldName("type_parameters")),
		Name:           j.text(n.ChildByFieldName("name")),
	}

	iterateChildren(n, func(child *tree_sitter.Node) {
		if child.Kind() == "throws" {
			c.Throws = j.text(child)
		}
	})

	if params := n.ChildByFieldName("parameters"); params != nil {
		iterateChildren(params, func(child *tree_sitter.Node) {
			if child.Kind() == "formal_parameter" || child.Kind() == "spread_parameter" {
				c.Parameters = append(c.Parameters, j.parameter(child))
			}
		})
	}

	if body := n.ChildByFieldName("body"); body != nil {
		block := &syntax.Block{Meta: syntax.At(j.span(body))}

		iterateChildren(body, func(child *tree_sitter.Node) {
			switch child.Kind() {
			case "{", "}":
				return
			}

			block.Statements = append(block.Statements, &syntax.Statement{
				Meta: syntax.At(j.span(child)),
				Text: j.text(child),
			})
		})

		c.Body = block
	}

	return c
}

func (j javaBuilder) parameter(n *tree_sitter.Node) *syntax.Parameter {
	mods, _ := j.modifiers(n)
	name := n.ChildByFieldName("name")
	typ := n.ChildByFieldName("type")

	if n.Kind() == "spread_parameter" {
		iterateChildren(n, func(child *tree_sitter.Node) {
			if child.Kind() == "variable_declarator" {
				name = child.ChildByFieldName("name")
			}
		})
	}

	typeText := j.text(typ)
	if typ == nil {
		typeText = strings.TrimSpace(strings.TrimSuffix(j.text(n), j.text(name)))
	}

	return &syntax.Parameter{
		Meta:      syntax.At(j.span(n)),
		Modifiers: mods,
		Name:      j.text(name),
		Type:      syntax.Type(typeText),
		Text:      j.text(n),
	}
}
