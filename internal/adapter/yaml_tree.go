package adapter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"ctorfield.dev/pkg/ctorfield/internal/syntax"
)

// ErrTreeFormat is returned for malformed YAML tree documents.
var ErrTreeFormat = errors.New("invalid tree document")

// A YAML tree document describes one compilation unit:
//
//	language: csharp
//	members:
//	  - opaque: using System;
//	  - class:
//	      name: Service
//	      members:
//	        - method: {name: Run}
//	        - constructor:
//	            name: Service
//	            parameters: [{name: client, type: HttpClient}]
//	            body:
//	              - Validate(client);
//	              - assign: {member: client, value: client}
//
// A constructor without `body` has no statement block.
type yamlTree struct {
	Language syntax.Language `yaml:"language,omitempty"`
	Members  []yamlMember    `yaml:"members"`
}

type yamlMember struct {
	Class       *yamlClass       `yaml:"class,omitempty"`
	Constructor *yamlConstructor `yaml:"constructor,omitempty"`
	Field       *yamlField       `yaml:"field,omitempty"`
	EventField  *yamlField       `yaml:"event_field,omitempty"`
	Property    *yamlTyped       `yaml:"property,omitempty"`
	Method      *yamlMethod      `yaml:"method,omitempty"`
	Event       *yamlTyped       `yaml:"event,omitempty"`
	Opaque      *string          `yaml:"opaque,omitempty"`
}

type yamlClass struct {
	Name      string       `yaml:"name"`
	Modifiers []string     `yaml:"modifiers,omitempty,flow"`
	Header    string       `yaml:"header,omitempty"`
	Members   []yamlMember `yaml:"members,omitempty"`
}

type yamlConstructor struct {
	Name           string           `yaml:"name"`
	Modifiers      []string         `yaml:"modifiers,omitempty,flow"`
	TypeParameters string           `yaml:"type_parameters,omitempty"`
	Parameters     []yamlParameter  `yaml:"parameters,omitempty"`
	Throws         string           `yaml:"throws,omitempty"`
	Initializer    string           `yaml:"initializer,omitempty"`
	Body           *[]yamlStatement `yaml:"body,omitempty"`
	Expression     string           `yaml:"expression,omitempty"`
}

type yamlParameter struct {
	Name      string   `yaml:"name"`
	Type      string   `yaml:"type"`
	Modifiers []string `yaml:"modifiers,omitempty,flow"`
}

type yamlVariable struct {
	Name string `yaml:"name"`
	Init string `yaml:"init,omitempty"`
}

type yamlField struct {
	Modifiers []string       `yaml:"modifiers,omitempty,flow"`
	Type      string         `yaml:"type"`
	Names     []string       `yaml:"names,omitempty,flow"`
	Variables []yamlVariable `yaml:"variables,omitempty"`
}

type yamlTyped struct {
	Name      string   `yaml:"name"`
	Type      string   `yaml:"type,omitempty"`
	Modifiers []string `yaml:"modifiers,omitempty,flow"`
	Text      string   `yaml:"text,omitempty"`
}

type yamlMethod struct {
	Name      string   `yaml:"name"`
	Returns   string   `yaml:"returns,omitempty"`
	Modifiers []string `yaml:"modifiers,omitempty,flow"`
	Text      string   `yaml:"text,omitempty"`
}

type yamlAssign struct {
	Receiver string `yaml:"receiver,omitempty"`
	Member   string `yaml:"member"`
	Value    string `yaml:"value"`
}

// yamlStatement is either a plain statement (scalar) or an assignment (mapping).
type yamlStatement struct {
	Text   string
	Assign *yamlAssign
}

func (s *yamlStatement) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		s.Text = value.Value
		return nil
	case yaml.MappingNode:
		var wrapper struct {
			Assign *yamlAssign `yaml:"assign"`
		}

		if err := value.Decode(&wrapper); err != nil {
			return err
		}

		if wrapper.Assign == nil {
			return fmt.Errorf("line %d: statement mapping needs an assign key: %w", value.Line, ErrTreeFormat)
		}

		s.Assign = wrapper.Assign

		return nil
	}

	return fmt.Errorf("line %d: unsupported statement: %w", value.Line, ErrTreeFormat)
}

func (s yamlStatement) MarshalYAML() (interface{}, error) {
	if s.Assign != nil {
		return map[string]*yamlAssign{"assign": s.Assign}, nil
	}

	return s.Text, nil
}

// DecodeTree reads a YAML tree document. The returned tree carries no spans.
func DecodeTree(content []byte) (*syntax.CompilationUnit, syntax.Language, error) {
	var doc yamlTree

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	if err := dec.Decode(&doc); err != nil {
		return nil, "", fmt.Errorf("decode tree: %w", err)
	}

	lang := doc.Language
	switch lang {
	case "":
		lang = syntax.CSharp
	case syntax.CSharp, syntax.Java:
	default:
		return nil, "", fmt.Errorf("unknown language %q: %w", lang, ErrTreeFormat)
	}

	members, err := decodeMembers(doc.Members)
	if err != nil {
		return nil, "", err
	}

	return &syntax.CompilationUnit{Meta: syntax.Fresh(), Members: members}, lang, nil
}

func decodeMembers(in []yamlMember) ([]syntax.Node, error) {
	out := make([]syntax.Node, 0, len(in))

	for i, member := range in {
		node, err := decodeMember(member)
		if err != nil {
			return nil, fmt.Errorf("member %d: %w", i, err)
		}

		out = append(out, node)
	}

	return out, nil
}

//nolint:cyclop // one branch per member kind
func decodeMember(member yamlMember) (syntax.Node, error) {
	var (
		node  syntax.Node
		kinds int
	)

	if c := member.Class; c != nil {
		kinds++

		members, err := decodeMembers(c.Members)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", c.Name, err)
		}

		node = &syntax.Class{
			Meta:      syntax.Fresh(),
			Modifiers: syntax.ParseModifierList(c.Modifiers),
			Name:      c.Name,
			Header:    c.Header,
			Members:   members,
		}
	}

	if c := member.Constructor; c != nil {
		kinds++
		node = decodeConstructor(c)
	}

	if f := member.Field; f != nil {
		vars, err := decodeVariables(f)
		if err != nil {
			return nil, err
		}

		kinds++
		node = &syntax.Field{
			Meta:      syntax.Fresh(),
			Modifiers: syntax.ParseModifierList(f.Modifiers),
			Type:      syntax.Type(f.Type),
			Variables: vars,
		}
	}

	if f := member.EventField; f != nil {
		vars, err := decodeVariables(f)
		if err != nil {
			return nil, err
		}

		kinds++
		node = &syntax.EventField{
			Meta:      syntax.Fresh(),
			Modifiers: syntax.ParseModifierList(f.Modifiers),
			Type:      syntax.Type(f.Type),
			Variables: vars,
		}
	}

	if p := member.Property; p != nil {
		kinds++
		node = &syntax.Property{
			Meta:      syntax.Fresh(),
			Modifiers: syntax.ParseModifierList(p.Modifiers),
			Type:      syntax.Type(p.Type),
			Name:      p.Name,
			Text:      p.Text,
		}
	}

	if mt := member.Method; mt != nil {
		kinds++
		node = &syntax.Method{
			Meta:       syntax.Fresh(),
			Modifiers:  syntax.ParseModifierList(mt.Modifiers),
			ReturnType: syntax.Type(mt.Returns),
			Name:       mt.Name,
			Text:       mt.Text,
		}
	}

	if e := member.Event; e != nil {
		kinds++
		node = &syntax.Event{
			Meta:      syntax.Fresh(),
			Modifiers: syntax.ParseModifierList(e.Modifiers),
			Type:      syntax.Type(e.Type),
			Name:      e.Name,
			Text:      e.Text,
		}
	}

	if member.Opaque != nil {
		kinds++
		node = &syntax.Opaque{Meta: syntax.Fresh(), Text: *member.Opaque}
	}

	if kinds != 1 {
		return nil, fmt.Errorf("expected exactly one member kind, got %d: %w", kinds, ErrTreeFormat)
	}

	return node, nil
}

// decodeVariables reads either the `names` shorthand or the ordered
// `variables` list, never both.
func decodeVariables(f *yamlField) ([]syntax.Variable, error) {
	if len(f.Names) > 0 && len(f.Variables) > 0 {
		return nil, fmt.Errorf("field of type %s sets both names and variables: %w", f.Type, ErrTreeFormat)
	}

	vars := make([]syntax.Variable, 0, len(f.Names)+len(f.Variables))

	for _, name := range f.Names {
		vars = append(vars, syntax.Variable{Name: name})
	}

	for _, v := range f.Variables {
		vars = append(vars, syntax.Variable{Name: v.Name, Initializer: v.Init})
	}

	return vars, nil
}

func decodeConstructor(c *yamlConstructor) *syntax.Constructor {
	ctor := &syntax.Constructor{
		Meta:           syntax.Fresh(),
		Modifiers:      syntax.ParseModifierList(c.Modifiers),
		TypeParameters: c.TypeParameters,
		Name:           c.Name,
		Throws:         c.Throws,
		Initializer:    c.Initializer,
		ExpressionBody: c.Expression,
	}

	for _, p := range c.Parameters {
		ctor.Parameters = append(ctor.Parameters, &syntax.Parameter{
			Meta:      syntax.Fresh(),
			Modifiers: syntax.ParseModifierList(p.Modifiers),
			Name:      p.Name,
			Type:      syntax.Type(p.Type),
		})
	}

	if c.Body != nil {
		block := &syntax.Block{Meta: syntax.Fresh()}

		for _, stmt := range *c.Body {
			if stmt.Assign != nil {
				receiver := stmt.Assign.Receiver
				if receiver == "" {
					receiver = syntax.SelfReference
				}

				block.Statements = append(block.Statements, &syntax.Assignment{
					Meta:     syntax.Fresh(),
					Receiver: receiver,
					Member:   stmt.Assign.Member,
					Value:    stmt.Assign.Value,
				})

				continue
			}

			block.Statements = append(block.Statements, &syntax.Statement{Meta: syntax.Fresh(), Text: stmt.Text})
		}

		ctor.Body = block
	}

	return ctor
}

// EncodeTree writes root as a YAML tree document.
func EncodeTree(root syntax.Node, lang syntax.Language) ([]byte, error) {
	doc := yamlTree{Language: lang}

	for _, member := range syntax.Children(root) {
		encoded, err := encodeMember(member, lang)
		if err != nil {
			return nil, err
		}

		doc.Members = append(doc.Members, encoded)
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}

	return buf.Bytes(), nil
}

func encodeMember(n syntax.Node, lang syntax.Language) (yamlMember, error) {
	switch v := n.(type) {
	case *syntax.Class:
		c := &yamlClass{Name: v.Name, Modifiers: v.Modifiers.Words(lang), Header: v.Header}

		for _, member := range v.Members {
			encoded, err := encodeMember(member, lang)
			if err != nil {
				return yamlMember{}, err
			}

			c.Members = append(c.Members, encoded)
		}

		return yamlMember{Class: c}, nil
	case *syntax.Constructor:
		return yamlMember{Constructor: encodeConstructor(v, lang)}, nil
	case *syntax.Field:
		return yamlMember{Field: encodeField(v.Modifiers, v.Type, v.Variables, lang)}, nil
	case *syntax.EventField:
		return yamlMember{EventField: encodeField(v.Modifiers, v.Type, v.Variables, lang)}, nil
	case *syntax.Property:
		return yamlMember{Property: &yamlTyped{Name: v.Name, Type: v.Type.Text, Modifiers: v.Modifiers.Words(lang), Text: v.Text}}, nil
	case *syntax.Method:
		return yamlMember{Method: &yamlMethod{Name: v.Name, Returns: v.ReturnType.Text, Modifiers: v.Modifiers.Words(lang), Text: v.Text}}, nil
	case *syntax.Event:
		return yamlMember{Event: &yamlTyped{Name: v.Name, Type: v.Type.Text, Modifiers: v.Modifiers.Words(lang), Text: v.Text}}, nil
	case *syntax.Opaque:
		text := v.Text
		return yamlMember{Opaque: &text}, nil
	case *syntax.Statement:
		text := v.Text
		return yamlMember{Opaque: &text}, nil
	case *syntax.CompilationUnit, *syntax.Parameter, *syntax.Block, *syntax.Assignment:
		return yamlMember{}, fmt.Errorf("%T cannot appear as a member: %w", n, ErrTreeFormat)
	}

	return yamlMember{}, fmt.Errorf("unknown node %T: %w", n, ErrTreeFormat)
}

func encodeField(mods syntax.Modifiers, typ syntax.TypeRef, vars []syntax.Variable, lang syntax.Language) *yamlField {
	f := &yamlField{Modifiers: mods.Words(lang), Type: typ.Text}

	for _, v := range vars {
		f.Variables = append(f.Variables, yamlVariable{Name: v.Name, Init: strings.TrimSpace(v.Initializer)})
	}

	return f
}

func encodeConstructor(c *syntax.Constructor, lang syntax.Language) *yamlConstructor {
	out := &yamlConstructor{
		Name:           c.Name,
		Modifiers:      c.Modifiers.Words(lang),
		TypeParameters: c.TypeParameters,
		Throws:         c.Throws,
		Initializer:    c.Initializer,
		Expression:     c.ExpressionBody,
	}

	for _, p := range c.Parameters {
		out.Parameters = append(out.Parameters, yamlParameter{Name: p.Name, Type: p.Type.Text, Modifiers: p.Modifiers.Words(lang)})
	}

	if c.Body != nil {
		body := make([]yamlStatement, 0, len(c.Body.Statements))

		for _, stmt := range c.Body.Statements {
			switch s := stmt.(type) {
			case *syntax.Assignment:
				assign := &yamlAssign{Member: s.Member, Value: s.Value}
				if s.Receiver != syntax.SelfReference {
					assign.Receiver = s.Receiver
				}

				body = append(body, yamlStatement{Assign: assign})
			case *syntax.Statement:
				body = append(body, yamlStatement{Text: s.Text})
			case *syntax.Opaque:
				body = append(body, yamlStatement{Text: s.Text})
			}
		}

		out.Body = &body
	}

	return out
}
