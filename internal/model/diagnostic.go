package model

import "fmt"

// IntroduceFieldFromConstructor is the code of the unused constructor parameter diagnostic.
const IntroduceFieldFromConstructor = "CC0071"

const introduceFieldMessage = "Introduce field: %s from constructor."

// Location points at a span of a document.
type Location struct {
	Path   Path `yaml:"path"`
	Start  int  `yaml:"start"`
	End    int  `yaml:"end"`
	Line   int  `yaml:"line"`
	Column int  `yaml:"column"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Path, l.Line, l.Column)
}

// Diagnostic flags a constructor parameter that can be stored in a field.
type Diagnostic struct {
	ID          string   `yaml:"id"`
	Code        string   `yaml:"code"`
	Location    Location `yaml:"location"`
	Parameter   string   `yaml:"parameter"`
	Constructor string   `yaml:"constructor"`
	Class       string   `yaml:"class"`
	Message     string   `yaml:"message"`
}

// NewDiagnostic builds an IntroduceFieldFromConstructor diagnostic.
func NewDiagnostic(loc Location, class, constructor, parameter string) Diagnostic {
	return Diagnostic{
		ID:          fmt.Sprintf("%s:%s.%s(%s)", loc.Path, class, constructor, parameter),
		Code:        IntroduceFieldFromConstructor,
		Location:    loc,
		Parameter:   parameter,
		Constructor: constructor,
		Class:       class,
		Message:     fmt.Sprintf(introduceFieldMessage, parameter),
	}
}
