// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cps

import (
	"fmt"

	"github.com/hashicorp/go-set/v3"
)

// FExpr is the flat form: a single sort collapsing the three CPS sorts,
// with explicitly tagged one-argument and two-argument lambdas and calls.
// FLamOne and FCallOne correspond to continuation lambdas and calls,
// FLamTwo and FCallTwo to user lambdas and calls.
type FExpr interface {
	close(depth int, id Identifier) FExpr
	open(depth int, v Var) FExpr
	freeVars(acc *set.Set[Identifier])
	pretty() doc

	// AlphaEq reports alpha-equivalence with another flat expression.
	AlphaEq(FExpr) bool
}

// FVar is a variable occurrence.
type FVar struct{ V Var }

// FLit is an opaque literal.
type FLit struct{ L Literal }

// FLamOne is a one-parameter lambda, the image of a continuation lambda.
type FLamOne struct{ S Scope[FExpr] }

// FLamTwo is a two-parameter lambda, the image of a user lambda.
type FLamTwo struct{ S Scope[Scope[FExpr]] }

// FCallOne applies a continuation to a value.
type FCallOne struct{ Fn, Arg FExpr }

// FCallTwo applies a user function to a value and a continuation.
type FCallTwo struct{ Fn, Arg, Cont FExpr }

// Lower collapses a CPS call into the flat form. Lowering is a structural
// projection: scope bodies are mapped in place, so no fresh names are
// introduced and alpha-equivalence is preserved.
func Lower(c Call) FExpr {
	switch c := c.(type) {
	case UCall:
		return FCallTwo{Fn: LowerU(c.Fn), Arg: LowerU(c.Arg), Cont: LowerK(c.Cont)}
	case KCall:
		return FCallOne{Fn: LowerK(c.Fn), Arg: LowerU(c.Arg)}
	}
	panic(fmt.Sprintf("cps: unhandled call %T", c))
}

// LowerU collapses a user expression into the flat form.
func LowerU(u UExpr) FExpr {
	switch u := u.(type) {
	case ULam:
		inner := u.S.body
		return FLamTwo{S: Scope[Scope[FExpr]]{
			binder: u.S.binder,
			body:   Scope[FExpr]{binder: inner.binder, body: Lower(inner.body)},
		}}
	case UVar:
		return FVar{V: u.V}
	case ULit:
		return FLit{L: u.L}
	}
	panic(fmt.Sprintf("cps: unhandled user expression %T", u))
}

// LowerK collapses a continuation expression into the flat form.
func LowerK(k KExpr) FExpr {
	switch k := k.(type) {
	case KLam:
		return FLamOne{S: Scope[FExpr]{binder: k.S.binder, body: Lower(k.S.body)}}
	case KVar:
		return FVar{V: k.V}
	case KLit:
		return FLit{L: k.L}
	}
	panic(fmt.Sprintf("cps: unhandled continuation expression %T", k))
}

func (e FVar) close(depth int, id Identifier) FExpr { return FVar{V: e.V.close(depth, id)} }
func (e FVar) open(depth int, v Var) FExpr { return FVar{V: e.V.open(depth, v)} }
func (e FVar) freeVars(acc *set.Set[Identifier]) { e.V.freeVars(acc) }

// AlphaEq reports alpha-equivalence with another flat expression.
func (e FVar) AlphaEq(o FExpr) bool {
	ov, ok := o.(FVar)
	return ok && e.V.alphaEq(ov.V)
}

func (e FLit) close(int, Identifier) FExpr { return e }
func (e FLit) open(int, Var) FExpr { return e }
func (e FLit) freeVars(*set.Set[Identifier]) {}

// AlphaEq reports alpha-equivalence with another flat expression.
func (e FLit) AlphaEq(o FExpr) bool {
	ol, ok := o.(FLit)
	return ok && e.L.Equal(ol.L)
}

func (e FLamOne) close(depth int, id Identifier) FExpr { return FLamOne{S: e.S.close(depth, id)} }
func (e FLamOne) open(depth int, v Var) FExpr { return FLamOne{S: e.S.open(depth, v)} }
func (e FLamOne) freeVars(acc *set.Set[Identifier]) { e.S.freeVars(acc) }

// AlphaEq reports alpha-equivalence with another flat expression.
func (e FLamOne) AlphaEq(o FExpr) bool {
	ol, ok := o.(FLamOne)
	return ok && e.S.AlphaEq(ol.S)
}

func (e FLamTwo) close(depth int, id Identifier) FExpr { return FLamTwo{S: e.S.close(depth, id)} }
func (e FLamTwo) open(depth int, v Var) FExpr { return FLamTwo{S: e.S.open(depth, v)} }
func (e FLamTwo) freeVars(acc *set.Set[Identifier]) { e.S.freeVars(acc) }

// AlphaEq reports alpha-equivalence with another flat expression.
func (e FLamTwo) AlphaEq(o FExpr) bool {
	ol, ok := o.(FLamTwo)
	return ok && e.S.AlphaEq(ol.S)
}

func (e FCallOne) close(depth int, id Identifier) FExpr {
	return FCallOne{Fn: e.Fn.close(depth, id), Arg: e.Arg.close(depth, id)}
}

func (e FCallOne) open(depth int, v Var) FExpr {
	return FCallOne{Fn: e.Fn.open(depth, v), Arg: e.Arg.open(depth, v)}
}

func (e FCallOne) freeVars(acc *set.Set[Identifier]) {
	e.Fn.freeVars(acc)
	e.Arg.freeVars(acc)
}

// AlphaEq reports alpha-equivalence with another flat expression.
func (e FCallOne) AlphaEq(o FExpr) bool {
	oc, ok := o.(FCallOne)
	return ok && e.Fn.AlphaEq(oc.Fn) && e.Arg.AlphaEq(oc.Arg)
}

func (e FCallTwo) close(depth int, id Identifier) FExpr {
	return FCallTwo{Fn: e.Fn.close(depth, id), Arg: e.Arg.close(depth, id), Cont: e.Cont.close(depth, id)}
}

func (e FCallTwo) open(depth int, v Var) FExpr {
	return FCallTwo{Fn: e.Fn.open(depth, v), Arg: e.Arg.open(depth, v), Cont: e.Cont.open(depth, v)}
}

func (e FCallTwo) freeVars(acc *set.Set[Identifier]) {
	e.Fn.freeVars(acc)
	e.Arg.freeVars(acc)
	e.Cont.freeVars(acc)
}

// AlphaEq reports alpha-equivalence with another flat expression.
func (e FCallTwo) AlphaEq(o FExpr) bool {
	oc, ok := o.(FCallTwo)
	return ok && e.Fn.AlphaEq(oc.Fn) && e.Arg.AlphaEq(oc.Arg) && e.Cont.AlphaEq(oc.Cont)
}
