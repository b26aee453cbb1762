// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cps

import "github.com/hashicorp/go-set/v3"

// Expr is a direct-style source expression: a variable, a literal, a
// single-parameter lambda, or a single-argument application.
//
// The sort is closed; its variants are VarExpr, LitExpr, LamExpr and
// AppExpr.
type Expr interface {
	close(depth int, id Identifier) Expr
	open(depth int, v Var) Expr
	freeVars(acc *set.Set[Identifier])
	pretty() doc

	// AlphaEq reports alpha-equivalence with another source expression.
	AlphaEq(Expr) bool
}

// Atom is the trivial subset of Expr: variables, literals and lambdas —
// expressions whose evaluation needs no continuation. Applications are
// excluded, which lets the kernel's atomic translation take Atom and rule
// out the non-trivial case at compile time.
type Atom interface {
	Expr
	atom()
}

// VarExpr is a variable occurrence.
type VarExpr struct{ V Var }

// LitExpr is an opaque literal.
type LitExpr struct{ L Literal }

// LamExpr is a single-parameter function.
type LamExpr struct{ S Scope[Expr] }

// AppExpr applies Fn to Arg.
type AppExpr struct{ Fn, Arg Expr }

// Lam binds x in body, producing a single-parameter lambda.
func Lam(x Identifier, body Expr) LamExpr { return LamExpr{S: Bind(x, body)} }

func (VarExpr) atom() {}
func (LitExpr) atom() {}
func (LamExpr) atom() {}

func (e VarExpr) close(depth int, id Identifier) Expr { return VarExpr{V: e.V.close(depth, id)} }
func (e VarExpr) open(depth int, v Var) Expr { return VarExpr{V: e.V.open(depth, v)} }
func (e VarExpr) freeVars(acc *set.Set[Identifier]) { e.V.freeVars(acc) }

// AlphaEq reports alpha-equivalence with another source expression.
func (e VarExpr) AlphaEq(o Expr) bool {
	ov, ok := o.(VarExpr)
	return ok && e.V.alphaEq(ov.V)
}

func (e LitExpr) close(int, Identifier) Expr { return e }
func (e LitExpr) open(int, Var) Expr { return e }
func (e LitExpr) freeVars(*set.Set[Identifier]) {}

// AlphaEq reports alpha-equivalence with another source expression.
func (e LitExpr) AlphaEq(o Expr) bool {
	ol, ok := o.(LitExpr)
	return ok && e.L.Equal(ol.L)
}

func (e LamExpr) close(depth int, id Identifier) Expr { return LamExpr{S: e.S.close(depth, id)} }
func (e LamExpr) open(depth int, v Var) Expr { return LamExpr{S: e.S.open(depth, v)} }
func (e LamExpr) freeVars(acc *set.Set[Identifier]) { e.S.freeVars(acc) }

// AlphaEq reports alpha-equivalence with another source expression.
func (e LamExpr) AlphaEq(o Expr) bool {
	ol, ok := o.(LamExpr)
	return ok && e.S.AlphaEq(ol.S)
}

func (e AppExpr) close(depth int, id Identifier) Expr {
	return AppExpr{Fn: e.Fn.close(depth, id), Arg: e.Arg.close(depth, id)}
}

func (e AppExpr) open(depth int, v Var) Expr {
	return AppExpr{Fn: e.Fn.open(depth, v), Arg: e.Arg.open(depth, v)}
}

func (e AppExpr) freeVars(acc *set.Set[Identifier]) {
	e.Fn.freeVars(acc)
	e.Arg.freeVars(acc)
}

// AlphaEq reports alpha-equivalence with another source expression.
func (e AppExpr) AlphaEq(o Expr) bool {
	oa, ok := o.(AppExpr)
	return ok && e.Fn.AlphaEq(oa.Fn) && e.Arg.AlphaEq(oa.Arg)
}
