package rules

import (
	"reflect"
	"testing"
)

func baseContext() Context {
	return Context{
		"model":         "saas-b2b",
		"saturationPct": 85.0,
		"dimensions10": map[string]float64{
			"demand":    6,
			"economics": 4,
		},
	}
}

func flagRule(id, when string) Definition {
	return Definition{
		ID:   id,
		When: when,
		Then: []Action{{Kind: ActionFlag, Code: id + "-fired"}},
	}
}

// TestRuleFiresWhenBothClausesHold tests the documented two-clause condition
func TestRuleFiresWhenBothClausesHold(t *testing.T) {
	rule := flagRule("r1", "model == 'saas-b2b' && saturationPct > 80")

	actions := Evaluate([]Definition{rule}, baseContext())
	if len(actions) != 1 || actions[0].Code != "r1-fired" {
		t.Fatalf("expected r1 to fire, got %v", actions)
	}

	ctx := baseContext()
	ctx["saturationPct"] = 60.0
	if actions := Evaluate([]Definition{rule}, ctx); len(actions) != 0 {
		t.Errorf("rule fired at saturation 60: %v", actions)
	}

	ctx = baseContext()
	ctx["model"] = "dtc-ecom"
	if actions := Evaluate([]Definition{rule}, ctx); len(actions) != 0 {
		t.Errorf("rule fired for wrong model: %v", actions)
	}
}

// TestUnsafeExpressionsAreSkipped tests fail-closed handling of disallowed characters
func TestUnsafeExpressionsAreSkipped(t *testing.T) {
	unsafe := []string{
		"model == `saas-b2b`",
		"model == 'x'; drop",
		`model == "saas-b2b"`,
		"model = 'saas-b2b'",
		"saturationPct + 1 > 2",
		"model == 'a' # comment",
	}
	for _, when := range unsafe {
		rule := flagRule("bad", when)
		rule.When = when
		actions := Evaluate([]Definition{rule}, baseContext())
		if len(actions) != 0 {
			t.Errorf("unsafe expression %q produced actions: %v", when, actions)
		}
	}
}

// TestParseFailuresAreSkipped tests that broken-but-safe expressions skip the rule
func TestParseFailuresAreSkipped(t *testing.T) {
	broken := []string{
		"model ==",
		"(model == 'x'",
		"&& model",
		"model == 'unterminated",
	}
	for _, when := range broken {
		actions := Evaluate([]Definition{flagRule("broken", when)}, baseContext())
		if len(actions) != 0 {
			t.Errorf("broken expression %q produced actions: %v", when, actions)
		}
	}
}

// TestOneBadRuleDoesNotDisableTheSet tests per-rule isolation
func TestOneBadRuleDoesNotDisableTheSet(t *testing.T) {
	defs := []Definition{
		flagRule("bad", "model == `x`"),
		flagRule("good", "model == 'saas-b2b'"),
	}
	actions := Evaluate(defs, baseContext())
	if len(actions) != 1 || actions[0].Code != "good-fired" {
		t.Errorf("expected only the good rule to fire, got %v", actions)
	}
}

// TestDisabledRulesAreExcluded tests the enabled flag semantics
func TestDisabledRulesAreExcluded(t *testing.T) {
	off := false
	disabled := flagRule("off", "model == 'saas-b2b'")
	disabled.Enabled = &off

	if actions := Evaluate([]Definition{disabled}, baseContext()); len(actions) != 0 {
		t.Errorf("disabled rule fired: %v", actions)
	}

	on := true
	enabled := flagRule("on", "model == 'saas-b2b'")
	enabled.Enabled = &on
	unset := flagRule("unset", "model == 'saas-b2b'")

	actions := Evaluate([]Definition{enabled, unset}, baseContext())
	if len(actions) != 2 {
		t.Errorf("expected both enabled rules to fire, got %v", actions)
	}
}

// TestMissingPathsDegradeToFalse tests nil resolution of optional fields
func TestMissingPathsDegradeToFalse(t *testing.T) {
	cases := []string{
		"missing > 5",
		"missing == 'x'",
		"dimensions10.gtm < 3",
		"deeply.nested.path == 1",
	}
	for _, when := range cases {
		if actions := Evaluate([]Definition{flagRule("r", when)}, baseContext()); len(actions) != 0 {
			t.Errorf("missing-path condition %q fired: %v", when, actions)
		}
	}

	// Equality against null does hold for missing paths.
	actions := Evaluate([]Definition{flagRule("r", "missing == null")}, baseContext())
	if len(actions) != 1 {
		t.Error("missing == null should fire")
	}
}

// TestDottedPathAccess tests nested context reads
func TestDottedPathAccess(t *testing.T) {
	rule := flagRule("r", "dimensions10.demand >= 6 && dimensions10.economics < 5")
	if actions := Evaluate([]Definition{rule}, baseContext()); len(actions) != 1 {
		t.Errorf("nested access rule did not fire: %v", actions)
	}
}

// TestParenthesesAndNegation tests grouping and the ! operator
func TestParenthesesAndNegation(t *testing.T) {
	ctx := baseContext()
	cases := []struct {
		when string
		want bool
	}{
		{"(model == 'saas-b2b' || model == 'dtc-ecom') && saturationPct >= 85", true},
		{"!(model == 'dtc-ecom')", true},
		{"!(model == 'saas-b2b')", false},
		{"model == 'dtc-ecom' || (saturationPct > 80 && dimensions10.demand == 6)", true},
		{"saturationPct >= 85 && !(dimensions10.economics >= 4)", false},
	}
	for _, tc := range cases {
		actions := Evaluate([]Definition{flagRule("r", tc.when)}, ctx)
		fired := len(actions) > 0
		if fired != tc.want {
			t.Errorf("%q fired=%v, want %v", tc.when, fired, tc.want)
		}
	}
}

// TestActionOrdering tests rule-set order then action order
func TestActionOrdering(t *testing.T) {
	defs := []Definition{
		{
			ID:   "first",
			When: "saturationPct > 80",
			Then: []Action{
				{Kind: ActionFlag, Code: "a"},
				{Kind: ActionGate, Dimension: GateOverall, Effect: EffectReview, Reason: "b"},
			},
		},
		flagRule("no-fire", "saturationPct > 99"),
		{
			ID:   "second",
			When: "model == 'saas-b2b'",
			Then: []Action{{Kind: ActionFlag, Code: "c"}},
		},
	}

	got := Evaluate(defs, baseContext())
	want := []Action{
		{Kind: ActionFlag, Code: "a"},
		{Kind: ActionGate, Dimension: GateOverall, Effect: EffectReview, Reason: "b"},
		{Kind: ActionFlag, Code: "c"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("actions = %v, want %v", got, want)
	}
}

// TestUpsertSemantics tests replace-in-place vs append
func TestUpsertSemantics(t *testing.T) {
	defs := []Definition{flagRule("a", "true"), flagRule("b", "true")}

	replaced := Upsert(defs, flagRule("a", "false"))
	if len(replaced) != 2 || replaced[0].When != "false" || replaced[0].ID != "a" {
		t.Errorf("in-place replacement failed: %v", replaced)
	}

	appended := Upsert(defs, flagRule("c", "true"))
	if len(appended) != 3 || appended[2].ID != "c" {
		t.Errorf("append failed: %v", appended)
	}

	// The input slice is not mutated.
	if defs[0].When != "true" {
		t.Error("Upsert mutated its input")
	}
}

// TestValidate tests store-boundary shape validation
func TestValidate(t *testing.T) {
	valid := Definition{
		ID:   "ok",
		When: "model == 'general'",
		Then: []Action{{Kind: ActionGate, Dimension: GateOverall, Effect: EffectFail}},
	}
	if err := Validate(valid); err != nil {
		t.Errorf("valid definition rejected: %v", err)
	}

	invalid := []Definition{
		{When: "true", Then: valid.Then},
		{ID: "   ", When: "true", Then: valid.Then},
		{ID: "x", Then: valid.Then},
		{ID: "x", When: "true"},
		{ID: "x", When: "true", Then: []Action{{Kind: ActionFlag}}},
		{ID: "x", When: "true", Then: []Action{{Kind: ActionGate, Effect: "explode"}}},
		{ID: "x", When: "true", Then: []Action{{Kind: "teleport"}}},
	}
	for i, def := range invalid {
		if err := Validate(def); err == nil {
			t.Errorf("case %d: invalid definition accepted: %+v", i, def)
		}
	}
}

// TestBooleanAndNumericLiterals tests literal handling
func TestBooleanAndNumericLiterals(t *testing.T) {
	ctx := Context{"flagged": true, "count": 3}
	cases := []struct {
		when string
		want bool
	}{
		{"flagged == true", true},
		{"flagged != false", true},
		{"count == 3", true},
		{"count >= 2.5", true},
		{"count < -1", false},
	}
	for _, tc := range cases {
		fired := len(Evaluate([]Definition{flagRule("r", tc.when)}, ctx)) > 0
		if fired != tc.want {
			t.Errorf("%q fired=%v, want %v", tc.when, fired, tc.want)
		}
	}
}
