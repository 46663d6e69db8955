package syntax

import (
	"errors"
	"fmt"
)

var (
	// ErrNodeNotFound is returned when an edit targets an ID absent from the tree.
	ErrNodeNotFound = errors.New("node not found")
	// ErrInvalidChild is returned when a replacement does not fit its slot.
	ErrInvalidChild = errors.New("invalid child node")
)

// Replace returns a new root in which the node identified by id is replaced
// by repl. Only the ancestors of the edited node are rebuilt; every other
// subtree is shared with root.
func Replace(root Node, id NodeID, repl Node) (Node, error) {
	out, found, err := replace(root, id, repl)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, fmt.Errorf("replace %d: %w", id, ErrNodeNotFound)
	}

	return out, nil
}

func replace(n Node, id NodeID, repl Node) (Node, bool, error) {
	if n.ID() == id {
		return repl, true, nil
	}

	children := Children(n)
	for i, child := range children {
		updated, found, err := replace(child, id, repl)
		if err != nil {
			return nil, false, err
		}

		if !found {
			continue
		}

		next := make([]Node, len(children))
		copy(next, children)
		next[i] = updated

		rebuilt, err := withChildren(n, next)
		if err != nil {
			return nil, false, err
		}

		return rebuilt, true, nil
	}

	return n, false, nil
}

// withChildren copies n with a new child list. The copy keeps the node ID.
func withChildren(n Node, children []Node) (Node, error) {
	switch v := n.(type) {
	case *CompilationUnit:
		c := *v
		c.Members = children

		return &c, nil
	case *Class:
		return v.WithMembers(children), nil
	case *Block:
		c := *v
		c.Statements = children

		return &c, nil
	case *Constructor:
		return constructorWithChildren(v, children)
	case *Parameter, *Field, *EventField, *Property, *Method, *Event, *Statement, *Assignment, *Opaque:
		return nil, fmt.Errorf("%T has no children: %w", n, ErrInvalidChild)
	}

	return nil, fmt.Errorf("unknown node %T: %w", n, ErrInvalidChild)
}

func constructorWithChildren(ctor *Constructor, children []Node) (Node, error) {
	params := make([]*Parameter, 0, len(ctor.Parameters))

	for _, child := range children[:len(ctor.Parameters)] {
		p, ok := child.(*Parameter)
		if !ok {
			return nil, fmt.Errorf("constructor parameter slot got %T: %w", child, ErrInvalidChild)
		}

		params = append(params, p)
	}

	c := *ctor
	c.Parameters = params

	if ctor.Body != nil {
		body, ok := children[len(children)-1].(*Block)
		if !ok {
			return nil, fmt.Errorf("constructor body slot got %T: %w", children[len(children)-1], ErrInvalidChild)
		}

		c.Body = body
	}

	return &c, nil
}

// WithMembers returns a copy of c with the given members.
func (c *Class) WithMembers(members []Node) *Class {
	out := *c
	out.Members = members

	return &out
}

// InsertMember returns a copy of c with m inserted at index.
func (c *Class) InsertMember(index int, m Node) *Class {
	if index < 0 {
		index = 0
	}

	if index > len(c.Members) {
		index = len(c.Members)
	}

	members := make([]Node, 0, len(c.Members)+1)
	members = append(members, c.Members[:index]...)
	members = append(members, m)
	members = append(members, c.Members[index:]...)

	return c.WithMembers(members)
}

// WithBody returns a copy of c with the given body.
func (c *Constructor) WithBody(body *Block) *Constructor {
	out := *c
	out.Body = body

	return &out
}

// AddStatements returns a copy of b with stmts appended.
func (b *Block) AddStatements(stmts ...Node) *Block {
	statements := make([]Node, 0, len(b.Statements)+len(stmts))
	statements = append(statements, b.Statements...)
	statements = append(statements, stmts...)

	out := *b
	out.Statements = statements

	return &out
}

// WithSpans rebuilds the whole tree assigning positions from spans. Nodes
// keep their IDs; nodes missing from spans get a zero span.
func WithSpans(root Node, spans map[NodeID]Span) Node {
	return withSpans(root, spans)
}

func withSpans(n Node, spans map[NodeID]Span) Node {
	pos := spans[n.ID()]

	switch v := n.(type) {
	case *CompilationUnit:
		c := *v
		c.Pos = pos
		c.Members = mapSpans(v.Members, spans)

		return &c
	case *Class:
		c := *v
		c.Pos = pos
		c.Members = mapSpans(v.Members, spans)

		return &c
	case *Constructor:
		c := *v
		c.Pos = pos

		c.Parameters = make([]*Parameter, 0, len(v.Parameters))
		for _, p := range v.Parameters {
			c.Parameters = append(c.Parameters, withSpans(p, spans).(*Parameter))
		}

		if v.Body != nil {
			c.Body = withSpans(v.Body, spans).(*Block)
		}

		return &c
	case *Block:
		c := *v
		c.Pos = pos
		c.Statements = mapSpans(v.Statements, spans)

		return &c
	case *Parameter:
		c := *v
		c.Pos = pos

		return &c
	case *Field:
		c := *v
		c.Pos = pos

		return &c
	case *EventField:
		c := *v
		c.Pos = pos

		return &c
	case *Property:
		c := *v
		c.Pos = pos

		return &c
	case *Method:
		c := *v
		c.Pos = pos

		return &c
	case *Event:
		c := *v
		c.Pos = pos

		return &c
	case *Statement:
		c := *v
		c.Pos = pos

		return &c
	case *Assignment:
		c := *v
		c.Pos = pos

		return &c
	case *Opaque:
		c := *v
		c.Pos = pos

		return &c
	}

	return n
}

func mapSpans(nodes []Node, spans map[NodeID]Span) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, withSpans(n, spans))
	}

	return out
}
