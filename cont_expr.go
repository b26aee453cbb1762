// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cps

import "github.com/hashicorp/go-set/v3"

// The CPS form is split into three mutually recursive sorts. UExpr is a
// user expression: user lambdas take a value parameter and a continuation
// parameter. KExpr is a continuation expression: continuation lambdas take
// a single value parameter. Call is the body form — every lambda body is a
// call, which is what makes every call tail-positioned, and every call
// argument is a UExpr, which is what keeps arguments atomic.

// UExpr is a user expression: ULam, UVar or ULit.
type UExpr interface {
	close(depth int, id Identifier) UExpr
	open(depth int, v Var) UExpr
	freeVars(acc *set.Set[Identifier])
	pretty() doc

	// AlphaEq reports alpha-equivalence with another user expression.
	AlphaEq(UExpr) bool
}

// KExpr is a continuation expression: KLam, KVar or KLit.
type KExpr interface {
	close(depth int, id Identifier) KExpr
	open(depth int, v Var) KExpr
	freeVars(acc *set.Set[Identifier])
	pretty() doc

	// AlphaEq reports alpha-equivalence with another continuation expression.
	AlphaEq(KExpr) bool
}

// Call is a tail call: UCall or KCall.
type Call interface {
	close(depth int, id Identifier) Call
	open(depth int, v Var) Call
	freeVars(acc *set.Set[Identifier])
	pretty() doc

	// AlphaEq reports alpha-equivalence with another call.
	AlphaEq(Call) bool
}

// ULam is a user function. The outer scope binds the value parameter, the
// inner scope binds the continuation parameter, and the body is a Call.
type ULam struct{ S Scope[Scope[Call]] }

// UVar is a variable occurrence in user position.
type UVar struct{ V Var }

// ULit is a literal in user position.
type ULit struct{ L Literal }

// KLam is a continuation function binding a single value parameter over a
// Call body.
type KLam struct{ S Scope[Call] }

// KVar is a variable occurrence in continuation position.
type KVar struct{ V Var }

// KLit is a literal in continuation position.
type KLit struct{ L Literal }

// UCall applies a user function to a value, passing a continuation.
type UCall struct {
	Fn   UExpr
	Arg  UExpr
	Cont KExpr
}

// KCall applies a continuation to a value.
type KCall struct {
	Fn  KExpr
	Arg UExpr
}

// UserLam binds the value parameter p and the continuation parameter k in
// body, producing a user function.
func UserLam(p, k Identifier, body Call) ULam {
	return ULam{S: Bind(p, Bind(k, body))}
}

// ContLam binds the value parameter p in body, producing a continuation
// function.
func ContLam(p Identifier, body Call) KLam {
	return KLam{S: Bind(p, body)}
}

func (e ULam) close(depth int, id Identifier) UExpr { return ULam{S: e.S.close(depth, id)} }
func (e ULam) open(depth int, v Var) UExpr { return ULam{S: e.S.open(depth, v)} }
func (e ULam) freeVars(acc *set.Set[Identifier]) { e.S.freeVars(acc) }

// AlphaEq reports alpha-equivalence with another user expression.
func (e ULam) AlphaEq(o UExpr) bool {
	ol, ok := o.(ULam)
	return ok && e.S.AlphaEq(ol.S)
}

func (e UVar) close(depth int, id Identifier) UExpr { return UVar{V: e.V.close(depth, id)} }
func (e UVar) open(depth int, v Var) UExpr { return UVar{V: e.V.open(depth, v)} }
func (e UVar) freeVars(acc *set.Set[Identifier]) { e.V.freeVars(acc) }

// AlphaEq reports alpha-equivalence with another user expression.
func (e UVar) AlphaEq(o UExpr) bool {
	ov, ok := o.(UVar)
	return ok && e.V.alphaEq(ov.V)
}

func (e ULit) close(int, Identifier) UExpr { return e }
func (e ULit) open(int, Var) UExpr { return e }
func (e ULit) freeVars(*set.Set[Identifier]) {}

// AlphaEq reports alpha-equivalence with another user expression.
func (e ULit) AlphaEq(o UExpr) bool {
	ol, ok := o.(ULit)
	return ok && e.L.Equal(ol.L)
}

func (e KLam) close(depth int, id Identifier) KExpr { return KLam{S: e.S.close(depth, id)} }
func (e KLam) open(depth int, v Var) KExpr { return KLam{S: e.S.open(depth, v)} }
func (e KLam) freeVars(acc *set.Set[Identifier]) { e.S.freeVars(acc) }

// AlphaEq reports alpha-equivalence with another continuation expression.
func (e KLam) AlphaEq(o KExpr) bool {
	ol, ok := o.(KLam)
	return ok && e.S.AlphaEq(ol.S)
}

func (e KVar) close(depth int, id Identifier) KExpr { return KVar{V: e.V.close(depth, id)} }
func (e KVar) open(depth int, v Var) KExpr { return KVar{V: e.V.open(depth, v)} }
func (e KVar) freeVars(acc *set.Set[Identifier]) { e.V.freeVars(acc) }

// AlphaEq reports alpha-equivalence with another continuation expression.
func (e KVar) AlphaEq(o KExpr) bool {
	ov, ok := o.(KVar)
	return ok && e.V.alphaEq(ov.V)
}

func (e KLit) close(int, Identifier) KExpr { return e }
func (e KLit) open(int, Var) KExpr { return e }
func (e KLit) freeVars(*set.Set[Identifier]) {}

// AlphaEq reports alpha-equivalence with another continuation expression.
func (e KLit) AlphaEq(o KExpr) bool {
	ol, ok := o.(KLit)
	return ok && e.L.Equal(ol.L)
}

func (c UCall) close(depth int, id Identifier) Call {
	return UCall{Fn: c.Fn.close(depth, id), Arg: c.Arg.close(depth, id), Cont: c.Cont.close(depth, id)}
}

func (c UCall) open(depth int, v Var) Call {
	return UCall{Fn: c.Fn.open(depth, v), Arg: c.Arg.open(depth, v), Cont: c.Cont.open(depth, v)}
}

func (c UCall) freeVars(acc *set.Set[Identifier]) {
	c.Fn.freeVars(acc)
	c.Arg.freeVars(acc)
	c.Cont.freeVars(acc)
}

// AlphaEq reports alpha-equivalence with another call.
func (c UCall) AlphaEq(o Call) bool {
	oc, ok := o.(UCall)
	return ok && c.Fn.AlphaEq(oc.Fn) && c.Arg.AlphaEq(oc.Arg) && c.Cont.AlphaEq(oc.Cont)
}

func (c KCall) close(depth int, id Identifier) Call {
	return KCall{Fn: c.Fn.close(depth, id), Arg: c.Arg.close(depth, id)}
}

func (c KCall) open(depth int, v Var) Call {
	return KCall{Fn: c.Fn.open(depth, v), Arg: c.Arg.open(depth, v)}
}

func (c KCall) freeVars(acc *set.Set[Identifier]) {
	c.Fn.freeVars(acc)
	c.Arg.freeVars(acc)
}

// AlphaEq reports alpha-equivalence with another call.
func (c KCall) AlphaEq(o Call) bool {
	oc, ok := o.(KCall)
	return ok && c.Fn.AlphaEq(oc.Fn) && c.Arg.AlphaEq(oc.Arg)
}
