package symbolic

import (
	"math"
	"testing"
)

func TestNumEval(t *testing.T) {
	v, err := N(3.5).Eval(nil)
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if v != 3.5 {
		t.Errorf("expected 3.5, got %f", v)
	}
}

func TestSymEval(t *testing.T) {
	env := map[string]float64{"x": 2.0}

	v, err := S("x").Eval(env)
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if v != 2.0 {
		t.Errorf("expected 2.0, got %f", v)
	}

	if _, err := S("y").Eval(env); err == nil {
		t.Error("expected error for unbound symbol")
	}
}

func TestAddFolding(t *testing.T) {
	e := AddOf(N(1), N(2), S("x"))
	env := map[string]float64{"x": 4.0}

	v, err := e.Eval(env)
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if v != 7.0 {
		t.Errorf("expected 7.0, got %f", v)
	}
}

func TestMulZeroCollapse(t *testing.T) {
	e := MulOf(N(0), S("x"), ExpOf(S("y")))
	if n, ok := e.(Num); !ok || n.Value != 0 {
		t.Errorf("expected zero literal, got %s", e.String())
	}
}

func TestMulCancellation(t *testing.T) {
	e := MulOf(S("x"), PowOf(S("x"), N(-1)))
	if n, ok := e.(Num); !ok || n.Value != 1 {
		t.Errorf("x*x^-1 should fold to 1, got %s", e.String())
	}

	e = Div(MulOf(S("m"), S("v0")), S("m"))
	if got := e.String(); got != "v0" {
		t.Errorf("m*v0/m should simplify to v0, got %q", got)
	}
}

func TestDivEval(t *testing.T) {
	e := Div(S("a"), S("b"))
	env := map[string]float64{"a": 9.0, "b": 3.0}

	v, err := e.Eval(env)
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if math.Abs(v-3.0) > 1e-12 {
		t.Errorf("expected 3.0, got %f", v)
	}
}

func TestExpEval(t *testing.T) {
	e := ExpOf(MulOf(N(-1), S("x")))
	env := map[string]float64{"x": 1.0}

	v, err := e.Eval(env)
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if math.Abs(v-math.Exp(-1)) > 1e-12 {
		t.Errorf("expected e^-1, got %f", v)
	}
}

func TestExpOfZero(t *testing.T) {
	if n, ok := ExpOf(N(0)).(Num); !ok || n.Value != 1 {
		t.Error("exp(0) should fold to 1")
	}
}

func TestFreeSymbols(t *testing.T) {
	e := AddOf(MulOf(S("g"), S("m")), ExpOf(MulOf(N(-1), Div(S("gamma"), S("m")), S("t"))))

	names := FreeSymbols(e)
	expected := []string{"g", "gamma", "m", "t"}
	if len(names) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected, names)
			break
		}
	}
}

func TestStringRendering(t *testing.T) {
	tests := []struct {
		expr Expr
		want string
	}{
		{N(2), "2"},
		{S("gamma"), "gamma"},
		{Div(MulOf(S("g"), S("m")), S("gamma")), "g*m/gamma"},
		{AddOf(S("a"), Neg(S("b"))), "a - b"},
		{ExpOf(MulOf(N(-1), S("t"))), "exp(-t)"},
	}

	for _, tt := range tests {
		if got := tt.expr.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
