package syntax

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}

	for _, child := range Children(n) {
		Walk(child, fn)
	}
}

// Find returns the node with the given ID.
func Find(root Node, id NodeID) (Node, bool) {
	path := Path(root, id)
	if len(path) == 0 {
		return nil, false
	}

	return path[len(path)-1], true
}

// Path returns the nodes from root down to the node with the given ID, or nil.
func Path(root Node, id NodeID) []Node {
	if root == nil {
		return nil
	}

	if root.ID() == id {
		return []Node{root}
	}

	for _, child := range Children(root) {
		if sub := Path(child, id); sub != nil {
			return append([]Node{root}, sub...)
		}
	}

	return nil
}

// AncestorsAt returns the innermost node covering offset followed by its
// ancestors up to root. Root is always included.
func AncestorsAt(root Node, offset int) []Node {
	if root == nil {
		return nil
	}

	chain := []Node{root}
	current := root

	for {
		next := childAt(current, offset)
		if next == nil {
			break
		}

		chain = append(chain, next)
		current = next
	}

	// innermost first
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	return chain
}

func childAt(n Node, offset int) Node {
	for _, child := range Children(n) {
		if child.Span().Contains(offset) {
			return child
		}
	}

	return nil
}

// FirstAncestor returns the first node of type T in an ancestor chain as
// produced by AncestorsAt.
func FirstAncestor[T Node](chain []Node) (T, bool) {
	for _, n := range chain {
		if v, ok := n.(T); ok {
			return v, true
		}
	}

	var zero T

	return zero, false
}

// FirstDescendant returns the first node of type T below n in pre-order.
// n itself is not considered.
func FirstDescendant[T Node](n Node) (T, bool) {
	var (
		found T
		ok    bool
	)

	for _, child := range Children(n) {
		Walk(child, func(c Node) bool {
			if ok {
				return false
			}

			if v, match := c.(T); match {
				found, ok = v, true
				return false
			}

			return true
		})

		if ok {
			break
		}
	}

	return found, ok
}

// EnclosingClass returns the nearest class strictly containing the node id.
func EnclosingClass(root Node, id NodeID) (*Class, bool) {
	path := Path(root, id)
	if len(path) < 2 {
		return nil, false
	}

	for i := len(path) - 2; i >= 0; i-- {
		if c, ok := path[i].(*Class); ok {
			return c, true
		}
	}

	return nil, false
}
