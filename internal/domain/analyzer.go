package domain

import (
	"fmt"
	"regexp"
	"strings"

	m "ctorfield.dev/pkg/ctorfield/internal/model"
	"ctorfield.dev/pkg/ctorfield/internal/syntax"
)

// Analyzer finds constructor parameters that are never stored in a member.
type Analyzer interface {
	Analyze(doc m.Document) []m.Diagnostic
}

type analyzer struct{}

// NewAnalyzer creates the IntroduceFieldFromConstructor analyzer.
func NewAnalyzer() Analyzer {
	return &analyzer{}
}

// Analyze reports, in document order, every parameter of a block-bodied
// constructor whose value is not assigned to anything in the body.
func (a *analyzer) Analyze(doc m.Document) []m.Diagnostic {
	if doc.Root == nil {
		return nil
	}

	var diags []m.Diagnostic

	syntax.Walk(doc.Root, func(n syntax.Node) bool {
		class, ok := n.(*syntax.Class)
		if !ok {
			return true
		}

		ordinal := 0

		for _, member := range class.Members {
			ctor, ok := member.(*syntax.Constructor)
			if !ok {
				continue
			}

			ordinal++

			if ctor.Body == nil {
				continue
			}

			for _, param := range ctor.Parameters {
				if param.Name == "" || isAssigned(ctor.Body, param.Name) {
					continue
				}

				diags = append(diags, newDiagnostic(doc, class, ctor, ordinal, param))
			}
		}

		return true
	})

	return diags
}

func newDiagnostic(doc m.Document, class *syntax.Class, ctor *syntax.Constructor, ordinal int, param *syntax.Parameter) m.Diagnostic {
	span := param.Span()
	line, column := doc.LineColumn(span.Start)

	loc := m.Location{
		Path:   doc.File.ShortPath,
		Start:  span.Start,
		End:    span.End,
		Line:   line,
		Column: column,
	}

	diag := m.NewDiagnostic(loc, class.Name, ctor.Name, param.Name)
	if ordinal > 1 {
		diag.ID = fmt.Sprintf("%s:%s.%s#%d(%s)", loc.Path, class.Name, ctor.Name, ordinal, param.Name)
	}

	return diag
}

// isAssigned reports whether some statement of body stores name, e.g.
// `this.x = x;` or `x1 = x;`.
func isAssigned(body *syntax.Block, name string) bool {
	var pattern *regexp.Regexp

	for _, stmt := range body.Statements {
		switch s := stmt.(type) {
		case *syntax.Assignment:
			if strings.TrimSpace(s.Value) == name {
				return true
			}
		case *syntax.Statement:
			if pattern == nil {
				pattern = assignmentPattern(name)
			}

			if pattern.MatchString(s.Text) {
				return true
			}
		}
	}

	return false
}

func assignmentPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^\s*(?:this\.)?[A-Za-z_$][\w$]*\s*=\s*` + regexp.QuoteMeta(name) + `\s*;`)
}
