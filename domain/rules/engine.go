package rules

// Evaluate runs every enabled rule against the context and returns the
// concatenation of all firing rules' actions, in rule-set order then action
// order. Rules do not see each other's actions; there is no chaining within
// one pass.
//
// Per rule the outcome is terminal: unsafe or unparseable expressions skip
// the rule (fail closed for that rule, never an error for the set), a false
// condition is a no-op, a true condition emits the rule's actions.
func Evaluate(defs []Definition, ctx Context) []Action {
	actions := []Action{}
	for _, def := range defs {
		if !def.IsEnabled() {
			continue
		}
		if !SafeExpression(def.When) {
			continue
		}
		ast, err := Parse(def.When)
		if err != nil {
			continue
		}
		if truthy(eval(ast, ctx)) {
			actions = append(actions, def.Then...)
		}
	}
	return actions
}

// Enabled filters a definition list down to the rules that participate in
// evaluation, preserving order.
func Enabled(defs []Definition) []Definition {
	out := make([]Definition, 0, len(defs))
	for _, def := range defs {
		if def.IsEnabled() {
			out = append(out, def)
		}
	}
	return out
}

// Upsert replaces the definition with a matching id in place, or appends the
// definition when no match exists. New rules keep insertion order.
func Upsert(defs []Definition, def Definition) []Definition {
	for i, existing := range defs {
		if existing.ID == def.ID {
			out := make([]Definition, len(defs))
			copy(out, defs)
			out[i] = def
			return out
		}
	}
	out := make([]Definition, len(defs), len(defs)+1)
	copy(out, defs)
	return append(out, def)
}
