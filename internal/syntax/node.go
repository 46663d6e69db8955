// Package syntax defines the immutable syntax tree that refactorings operate on.
//
// Nodes are never mutated after construction. Every edit goes through Replace
// (or one of the With* helpers) and returns a new root that shares all
// unedited subtrees with the original by pointer.
package syntax

import (
	"strings"
	"sync/atomic"
)

// NodeID identifies a logical node. Path-copies of a node keep its ID, newly
// built nodes get a fresh one.
type NodeID uint64

// NoNodeID is never assigned to a node.
const NoNodeID NodeID = 0

var lastNodeID atomic.Uint64

// NewNodeID returns a process-unique node ID.
func NewNodeID() NodeID {
	return NodeID(lastNodeID.Add(1))
}

// Span is a half-open byte range into the document text.
type Span struct {
	Start int
	End   int
}

// IsZero reports whether the span carries no position (synthesized nodes).
func (s Span) IsZero() bool {
	return s.Start == 0 && s.End == 0
}

// Contains reports whether offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return !s.IsZero() && s.Start <= offset && offset < s.End
}

// Meta carries identity and position. It is embedded by every node kind.
type Meta struct {
	NodeID NodeID
	Pos    Span
}

// At returns metadata with a fresh ID positioned at span.
func At(span Span) Meta {
	return Meta{NodeID: NewNodeID(), Pos: span}
}

// Fresh returns metadata for a synthesized node.
func Fresh() Meta {
	return At(Span{})
}

// ID returns the node identity.
func (m Meta) ID() NodeID { return m.NodeID }

// Span returns the node position.
func (m Meta) Span() Span { return m.Pos }

func (Meta) node() {}

// Node is the closed set of tree elements. Use a type switch to dispatch.
type Node interface {
	ID() NodeID
	Span() Span
	node()
}

// Language selects the surface syntax a tree is rendered in.
type Language string

const (
	// CSharp renders fields as `private readonly T x;`.
	CSharp Language = "csharp"
	// Java renders fields as `private final T x;`.
	Java Language = "java"
)

// TypeRef is a declared type, compared textually.
type TypeRef struct {
	Text string
}

// Type builds a TypeRef.
func Type(text string) TypeRef {
	return TypeRef{Text: text}
}

// Equal compares two types ignoring whitespace.
func (t TypeRef) Equal(other TypeRef) bool {
	return normalizeType(t.Text) == normalizeType(other.Text)
}

func (t TypeRef) String() string {
	return t.Text
}

func normalizeType(text string) string {
	return strings.Join(strings.Fields(text), "")
}

type (
	// CompilationUnit is the document root.
	CompilationUnit struct {
		Meta
		Members []Node
	}

	// Class is a class declaration. Member order is significant.
	Class struct {
		Meta
		Modifiers Modifiers
		Name      string
		// Header is the verbatim declaration line up to the body, when known.
		Header  string
		Members []Node
	}

	// Constructor is a constructor declaration. Body is nil when the
	// constructor has no statement block.
	Constructor struct {
		Meta
		Modifiers Modifiers
		// Prefix is the verbatim text before the name (annotations, modifiers).
		Prefix string
		// TypeParameters is the verbatim generic parameter list (`<T>`).
		TypeParameters string
		Name           string
		Parameters     []*Parameter
		// Throws is the verbatim throws clause between the parameters and the body.
		Throws         string
		Initializer    string
		Body           *Block
		ExpressionBody string
	}

	// Parameter is a formal parameter.
	Parameter struct {
		Meta
		Modifiers Modifiers
		Name      string
		Type      TypeRef
		Text      string
	}

	// Block is an ordered statement list.
	Block struct {
		Meta
		Statements []Node
	}

	// Variable is one declarator of a field declaration.
	Variable struct {
		Name        string
		Initializer string
	}

	// Field declares one or more variables sharing a type.
	Field struct {
		Meta
		Modifiers Modifiers
		Type      TypeRef
		Variables []Variable
		Text      string
	}

	// EventField is a field-like event declaration (`event T a, b;`).
	EventField struct {
		Meta
		Modifiers Modifiers
		Type      TypeRef
		Variables []Variable
		Text      string
	}

	// Property is a property declaration.
	Property struct {
		Meta
		Modifiers Modifiers
		Type      TypeRef
		Name      string
		Text      string
	}

	// Method is a method declaration.
	Method struct {
		Meta
		Modifiers  Modifiers
		ReturnType TypeRef
		Name       string
		Text       string
	}

	// Event is an event declaration with accessors.
	Event struct {
		Meta
		Modifiers Modifiers
		Type      TypeRef
		Name      string
		Text      string
	}

	// Statement is a statement kept as source text.
	Statement struct {
		Meta
		Text string
	}

	// Assignment is `Receiver.Member = Value;`.
	Assignment struct {
		Meta
		Receiver string
		Member   string
		Value    string
	}

	// Opaque is any other element kept verbatim (comments, imports, unknown members).
	Opaque struct {
		Meta
		Text string
	}
)

// SelfReference is the receiver used by synthesized member assignments.
const SelfReference = "this"

// NewField builds a field declaring a single variable.
func NewField(modifiers Modifiers, typ TypeRef, name string) *Field {
	return &Field{
		Meta:      Fresh(),
		Modifiers: modifiers,
		Type:      typ,
		Variables: []Variable{{Name: name}},
	}
}

// NewAssignment builds `this.member = value;`.
func NewAssignment(member, value string) *Assignment {
	return &Assignment{
		Meta:     Fresh(),
		Receiver: SelfReference,
		Member:   member,
		Value:    value,
	}
}

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *CompilationUnit:
		return v.Members
	case *Class:
		return v.Members
	case *Constructor:
		children := make([]Node, 0, len(v.Parameters)+1)
		for _, p := range v.Parameters {
			children = append(children, p)
		}

		if v.Body != nil {
			children = append(children, v.Body)
		}

		return children
	case *Block:
		return v.Statements
	case *Parameter, *Field, *EventField, *Property, *Method, *Event, *Statement, *Assignment, *Opaque:
		return nil
	}

	return nil
}

// Names returns the declared variable names.
func (f *Field) Names() []string {
	return variableNames(f.Variables)
}

// Names returns the declared event names.
func (e *EventField) Names() []string {
	return variableNames(e.Variables)
}

func variableNames(vars []Variable) []string {
	names := make([]string, 0, len(vars))
	for _, v := range vars {
		names = append(names, v.Name)
	}

	return names
}
