package rules

// eval walks the AST against the context. Values are strings, float64s,
// booleans or nil; missing identifier paths resolve to nil so comparisons
// against absent optional fields degrade to false instead of erroring.
func eval(n node, ctx Context) any {
	switch t := n.(type) {
	case *literalNode:
		return t.value
	case *identNode:
		v, ok := ctx.Lookup(t.path)
		if !ok {
			return nil
		}
		return normalize(v)
	case *notNode:
		return !truthy(eval(t.operand, ctx))
	case *binaryNode:
		switch t.op {
		case "&&":
			return truthy(eval(t.left, ctx)) && truthy(eval(t.right, ctx))
		case "||":
			return truthy(eval(t.left, ctx)) || truthy(eval(t.right, ctx))
		}
		return compare(t.op, eval(t.left, ctx), eval(t.right, ctx))
	default:
		return nil
	}
}

// normalize collapses the numeric types a caller-built context may carry
// into float64 so comparisons behave uniformly.
func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case nil:
		return false
	default:
		return false
	}
}

func compare(op string, left, right any) bool {
	switch op {
	case "==":
		return equal(left, right)
	case "!=":
		return !equal(left, right)
	}

	// Ordering is defined for numbers only; anything else is false rather
	// than an error, matching the degrade-to-false policy for bad operands.
	lf, lok := left.(float64)
	rf, rok := right.(float64)
	if !lok || !rok {
		return false
	}
	switch op {
	case "<":
		return lf < rf
	case "<=":
		return lf <= rf
	case ">":
		return lf > rf
	case ">=":
		return lf >= rf
	default:
		return false
	}
}

func equal(left, right any) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	switch l := left.(type) {
	case float64:
		r, ok := right.(float64)
		return ok && l == r
	case string:
		r, ok := right.(string)
		return ok && l == r
	case bool:
		r, ok := right.(bool)
		return ok && l == r
	default:
		return false
	}
}
