package symbolic

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Expr is an immutable algebraic expression over named real symbols.
type Expr interface {
	Eval(env map[string]float64) (float64, error)
	String() string
	freeSymbols(set map[string]struct{})
}

type Num struct {
	Value float64
}

func N(v float64) Num { return Num{Value: v} }

func (n Num) Eval(env map[string]float64) (float64, error) { return n.Value, nil }

func (n Num) String() string {
	if n.Value == math.Trunc(n.Value) && math.Abs(n.Value) < 1e15 {
		return strconv.FormatFloat(n.Value, 'f', 0, 64)
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (n Num) freeSymbols(map[string]struct{}) {}

type Sym struct {
	Name string
}

func S(name string) Sym { return Sym{Name: name} }

func (s Sym) Eval(env map[string]float64) (float64, error) {
	v, ok := env[s.Name]
	if !ok {
		return 0, fmt.Errorf("symbolic: unbound symbol %q", s.Name)
	}
	return v, nil
}

func (s Sym) String() string { return s.Name }

func (s Sym) freeSymbols(set map[string]struct{}) { set[s.Name] = struct{}{} }

type Add struct {
	Terms []Expr
}

// AddOf flattens nested sums, folds numeric terms, and drops zeros.
func AddOf(terms ...Expr) Expr {
	flat := make([]Expr, 0, len(terms))
	num := 0.0
	for _, t := range terms {
		switch v := t.(type) {
		case Add:
			for _, inner := range v.Terms {
				if n, ok := inner.(Num); ok {
					num += n.Value
				} else {
					flat = append(flat, inner)
				}
			}
		case Num:
			num += v.Value
		default:
			flat = append(flat, t)
		}
	}
	if num != 0 {
		flat = append(flat, N(num))
	}
	switch len(flat) {
	case 0:
		return N(0)
	case 1:
		return flat[0]
	}
	return Add{Terms: flat}
}

func (a Add) Eval(env map[string]float64) (float64, error) {
	sum := 0.0
	for _, t := range a.Terms {
		v, err := t.Eval(env)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

func (a Add) String() string {
	var b strings.Builder
	for i, t := range a.Terms {
		s := t.String()
		if i > 0 {
			if strings.HasPrefix(s, "-") {
				b.WriteString(" - ")
				s = s[1:]
			} else {
				b.WriteString(" + ")
			}
		}
		b.WriteString(s)
	}
	return b.String()
}

func (a Add) freeSymbols(set map[string]struct{}) {
	for _, t := range a.Terms {
		t.freeSymbols(set)
	}
}

type Mul struct {
	Factors []Expr
}

// MulOf flattens nested products, folds numeric factors, and merges like
// bases so quotients cancel (x * x^-1 -> 1). A zero factor collapses the
// whole product.
func MulOf(factors ...Expr) Expr {
	flat := make([]Expr, 0, len(factors))
	num := 1.0
	for _, f := range factors {
		switch v := f.(type) {
		case Mul:
			for _, inner := range v.Factors {
				if n, ok := inner.(Num); ok {
					num *= n.Value
				} else {
					flat = append(flat, inner)
				}
			}
		case Num:
			num *= v.Value
		default:
			flat = append(flat, f)
		}
	}
	if num == 0 {
		return N(0)
	}

	type baseExp struct {
		base Expr
		exp  float64
	}
	merged := make([]baseExp, 0, len(flat))
	for _, f := range flat {
		base, exp := f, 1.0
		if p, ok := f.(Pow); ok {
			if e, ok := p.Exp.(Num); ok {
				base, exp = p.Base, e.Value
			}
		}
		found := false
		for i := range merged {
			if equal(merged[i].base, base) {
				merged[i].exp += exp
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, baseExp{base: base, exp: exp})
		}
	}

	out := make([]Expr, 0, len(merged))
	for _, be := range merged {
		if be.exp == 0 {
			continue
		}
		out = append(out, PowOf(be.base, N(be.exp)))
	}

	if num != 1 {
		out = append([]Expr{N(num)}, out...)
	}
	switch len(out) {
	case 0:
		return N(1)
	case 1:
		return out[0]
	}
	return Mul{Factors: out}
}

func (m Mul) Eval(env map[string]float64) (float64, error) {
	prod := 1.0
	for _, f := range m.Factors {
		v, err := f.Eval(env)
		if err != nil {
			return 0, err
		}
		prod *= v
	}
	return prod, nil
}

func (m Mul) String() string {
	neg := false
	var nums []string
	var denoms []string
	for _, f := range m.Factors {
		if p, ok := f.(Pow); ok {
			if n, ok := p.Exp.(Num); ok && n.Value == -1 {
				denoms = append(denoms, factorString(p.Base))
				continue
			}
		}
		if n, ok := f.(Num); ok {
			if n.Value == -1 {
				neg = !neg
				continue
			}
			if n.Value < 0 {
				neg = !neg
				nums = append(nums, N(-n.Value).String())
				continue
			}
		}
		nums = append(nums, factorString(f))
	}
	s := strings.Join(nums, "*")
	if s == "" {
		s = "1"
	}
	if len(denoms) > 0 {
		s += "/" + strings.Join(denoms, "/")
	}
	if neg {
		return "-" + s
	}
	return s
}

func (m Mul) freeSymbols(set map[string]struct{}) {
	for _, f := range m.Factors {
		f.freeSymbols(set)
	}
}

type Pow struct {
	Base Expr
	Exp  Expr
}

func PowOf(base, exp Expr) Expr {
	if n, ok := exp.(Num); ok {
		if n.Value == 0 {
			return N(1)
		}
		if n.Value == 1 {
			return base
		}
		// Distribute numeric powers over products: (a*b)^n -> a^n * b^n.
		if m, ok := base.(Mul); ok {
			powered := make([]Expr, 0, len(m.Factors))
			for _, f := range m.Factors {
				powered = append(powered, PowOf(f, n))
			}
			return MulOf(powered...)
		}
		// Collapse nested numeric powers: (a^p)^n -> a^(p*n).
		if p, ok := base.(Pow); ok {
			if pe, ok := p.Exp.(Num); ok {
				return PowOf(p.Base, N(pe.Value*n.Value))
			}
		}
	}
	if b, ok := base.(Num); ok {
		if e, ok := exp.(Num); ok {
			return N(math.Pow(b.Value, e.Value))
		}
	}
	return Pow{Base: base, Exp: exp}
}

func (p Pow) Eval(env map[string]float64) (float64, error) {
	b, err := p.Base.Eval(env)
	if err != nil {
		return 0, err
	}
	e, err := p.Exp.Eval(env)
	if err != nil {
		return 0, err
	}
	return math.Pow(b, e), nil
}

func (p Pow) String() string {
	return fmt.Sprintf("%s^%s", factorString(p.Base), factorString(p.Exp))
}

func (p Pow) freeSymbols(set map[string]struct{}) {
	p.Base.freeSymbols(set)
	p.Exp.freeSymbols(set)
}

// ExpFn is the natural exponential exp(arg).
type ExpFn struct {
	Arg Expr
}

func ExpOf(arg Expr) Expr {
	if n, ok := arg.(Num); ok && n.Value == 0 {
		return N(1)
	}
	return ExpFn{Arg: arg}
}

func (e ExpFn) Eval(env map[string]float64) (float64, error) {
	v, err := e.Arg.Eval(env)
	if err != nil {
		return 0, err
	}
	return math.Exp(v), nil
}

func (e ExpFn) String() string { return fmt.Sprintf("exp(%s)", e.Arg.String()) }

func (e ExpFn) freeSymbols(set map[string]struct{}) { e.Arg.freeSymbols(set) }

func Neg(e Expr) Expr { return MulOf(N(-1), e) }

func Div(num, den Expr) Expr { return MulOf(num, PowOf(den, N(-1))) }

// FreeSymbols lists every symbol name appearing in e, sorted.
func FreeSymbols(e Expr) []string {
	set := make(map[string]struct{})
	e.freeSymbols(set)
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// equal reports structural equality; commuted operand orders are treated
// as distinct, which is enough for the factor merging above.
func equal(a, b Expr) bool {
	switch x := a.(type) {
	case Num:
		y, ok := b.(Num)
		return ok && x.Value == y.Value
	case Sym:
		y, ok := b.(Sym)
		return ok && x.Name == y.Name
	case Pow:
		y, ok := b.(Pow)
		return ok && equal(x.Base, y.Base) && equal(x.Exp, y.Exp)
	case ExpFn:
		y, ok := b.(ExpFn)
		return ok && equal(x.Arg, y.Arg)
	case Add:
		y, ok := b.(Add)
		if !ok || len(x.Terms) != len(y.Terms) {
			return false
		}
		for i := range x.Terms {
			if !equal(x.Terms[i], y.Terms[i]) {
				return false
			}
		}
		return true
	case Mul:
		y, ok := b.(Mul)
		if !ok || len(x.Factors) != len(y.Factors) {
			return false
		}
		for i := range x.Factors {
			if !equal(x.Factors[i], y.Factors[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// factorString parenthesizes sums when embedded in products or powers.
func factorString(e Expr) string {
	switch v := e.(type) {
	case Add:
		return "(" + v.String() + ")"
	case Num:
		if v.Value < 0 {
			return "(" + v.String() + ")"
		}
	case Mul:
		return "(" + v.String() + ")"
	}
	return e.String()
}
