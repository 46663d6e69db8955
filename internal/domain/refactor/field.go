package refactor

import "ctorfield.dev/pkg/ctorfield/internal/syntax"

// FieldPlan is the outcome of deciding how a parameter is stored.
// Field is nil when an existing field is reused.
type FieldPlan struct {
	Name   string
	Reused bool
	Field  *syntax.Field
}

// FieldModifiers are applied to every synthesized field.
const FieldModifiers = syntax.Private | syntax.ReadOnly

// PlanField reuses a member with the parameter's exact name and type, or
// builds a new private read-only field under a non-colliding name.
func PlanField(param *syntax.Parameter, members Members, policy NamingPolicy) FieldPlan {
	return planField(param, members, policy, FieldModifiers)
}

func planField(param *syntax.Parameter, members Members, policy NamingPolicy, mods syntax.Modifiers) FieldPlan {
	if members.Matches(param.Name, param.Type) {
		return FieldPlan{Name: param.Name, Reused: true}
	}

	name := ResolveFieldName(param.Name, members, policy)

	return FieldPlan{
		Name:  name,
		Field: syntax.NewField(mods, param.Type, name),
	}
}

// FieldModifiersFor returns the modifiers of a field synthesized in class.
// A Java final field must be assigned by every constructor, and only one
// constructor receives the assignment, so with several constructors the
// field is private but not final.
func FieldModifiersFor(class *syntax.Class, lang syntax.Language) syntax.Modifiers {
	if lang == syntax.Java && countConstructors(class) > 1 {
		return syntax.Private
	}

	return FieldModifiers
}

func countConstructors(class *syntax.Class) int {
	n := 0

	for _, member := range class.Members {
		if _, ok := member.(*syntax.Constructor); ok {
			n++
		}
	}

	return n
}
