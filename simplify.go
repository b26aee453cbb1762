// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cps

import "fmt"

// Administrative reduction. The translation names every intermediate value
// through a continuation lambda that is applied immediately; these
// administrative redexes obscure the output without contributing anything
// at run time. Simplify contracts them.

// Simplify contracts administrative redexes: every KCall whose function is
// a continuation lambda is replaced by the lambda body with the (always
// atomic) argument substituted for the parameter. User calls are left
// untouched — a UCall headed by a user lambda is a redex of the source
// program, not of the translation. Reified continuation lambdas that are
// never applied survive, so the output keeps the (lambda (rv) (k rv))
// result continuations.
//
// Simplify preserves the free-variable set and the CPS grammar invariants;
// it terminates because each contraction removes one continuation lambda
// and substitution of an atomic value cannot create a continuation redex.
func Simplify(c Call) Call {
	switch c := c.(type) {
	case UCall:
		return UCall{Fn: simplifyU(c.Fn), Arg: simplifyU(c.Arg), Cont: simplifyK(c.Cont)}
	case KCall:
		if lam, ok := c.Fn.(KLam); ok {
			p, body := lam.S.Unbind()
			return Simplify(substCall(body, p, simplifyU(c.Arg)))
		}
		return KCall{Fn: simplifyK(c.Fn), Arg: simplifyU(c.Arg)}
	}
	panic(fmt.Sprintf("cps: unhandled call %T", c))
}

func simplifyU(u UExpr) UExpr {
	if lam, ok := u.(ULam); ok {
		p, inner := lam.S.Unbind()
		k, body := inner.Unbind()
		return UserLam(p, k, Simplify(body))
	}
	return u
}

func simplifyK(k KExpr) KExpr {
	if lam, ok := k.(KLam); ok {
		p, body := lam.S.Unbind()
		return ContLam(p, Simplify(body))
	}
	return k
}

// substCall replaces free value occurrences of id in c with v. The
// substitution descends through scopes without reopening them: bound
// occurrences are indices and cannot collide with id, and the free
// variables of v are globally fresh, so no binder on the way down can
// capture them.
func substCall(c Call, id Identifier, v UExpr) Call {
	switch c := c.(type) {
	case UCall:
		return UCall{Fn: substU(c.Fn, id, v), Arg: substU(c.Arg, id, v), Cont: substK(c.Cont, id, v)}
	case KCall:
		return KCall{Fn: substK(c.Fn, id, v), Arg: substU(c.Arg, id, v)}
	}
	panic(fmt.Sprintf("cps: unhandled call %T", c))
}

func substU(u UExpr, id Identifier, v UExpr) UExpr {
	switch u := u.(type) {
	case ULam:
		inner := u.S.body
		return ULam{S: Scope[Scope[Call]]{
			binder: u.S.binder,
			body:   Scope[Call]{binder: inner.binder, body: substCall(inner.body, id, v)},
		}}
	case UVar:
		if got, ok := u.V.Identifier(); ok && got.Equal(id) {
			return v
		}
		return u
	case ULit:
		return u
	}
	panic(fmt.Sprintf("cps: unhandled user expression %T", u))
}

// substK only descends: id names a value parameter, which cannot occur in
// continuation position.
func substK(k KExpr, id Identifier, v UExpr) KExpr {
	if lam, ok := k.(KLam); ok {
		return KLam{S: Scope[Call]{binder: lam.S.binder, body: substCall(lam.S.body, id, v)}}
	}
	return k
}
