package core

import "testing"

func TestActionNames(t *testing.T) {
	for a := ActionNone; a < numActions; a++ {
		name := a.String()
		if name == "unknown" || name == "" {
			t.Errorf("Action %d has no name", a)
			continue
		}
		parsed, ok := ParseAction(name)
		if !ok || parsed != a {
			t.Errorf("ParseAction(%q) = %v, %v; expected %v", name, parsed, ok, a)
		}
	}

	if _, ok := ParseAction("duck"); ok {
		t.Error("ParseAction should reject unknown names")
	}
	if Action(-1).String() != "unknown" || numActions.String() != "unknown" {
		t.Error("out of range actions should be unknown")
	}
}

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() || f.String() != "none" {
		t.Errorf("zero frame = %q, expected empty", f)
	}

	f.Set(ActionRestart)
	f.Set(ActionJump)
	f.Set(ActionJump)
	f.Set(ActionNone)
	f.Set(Action(42))
	if !f.Has(ActionJump) || !f.Has(ActionRestart) || f.Has(ActionQuit) || f.Has(ActionNone) {
		t.Errorf("frame = %q", f)
	}
	if f.String() != "jump+restart" {
		t.Errorf("String() = %q, expected jump+restart", f)
	}

	copied := f
	f.Clear()
	if !f.Empty() || f.Actions() != nil {
		t.Errorf("cleared frame = %q", f)
	}
	if !copied.Has(ActionJump) {
		t.Error("a copied frame should not share state")
	}
}

func TestActionText(t *testing.T) {
	text, err := ActionRestart.MarshalText()
	if err != nil || string(text) != "restart" {
		t.Fatalf("MarshalText() = %q, %v", text, err)
	}

	var a Action
	if err := a.UnmarshalText([]byte("jump")); err != nil || a != ActionJump {
		t.Errorf("UnmarshalText(jump) = %v, %v", a, err)
	}
	if err := a.UnmarshalText([]byte("duck")); err == nil {
		t.Error("UnmarshalText should reject unknown names")
	}
	if _, err := Action(99).MarshalText(); err == nil {
		t.Error("MarshalText should reject unknown actions")
	}
}
