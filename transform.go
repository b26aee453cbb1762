// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cps

import "fmt"

// The one-pass translation after Plotkin and Fischer. Three mutually
// recursive procedures: tK translates under a reified continuation
// expression, tC translates under a continuation variable, and m embeds
// atomic expressions as user expressions. Each source node is visited
// once; output size is linear in input size.

// CPS transforms a direct-style source expression into a call that applies
// halt to the value of e. The output satisfies the CPS grammar by
// construction: every call is tail-positioned and every call argument is
// atomic. Free variables of e and halt survive unchanged; every introduced
// binder is globally fresh.
func CPS(e Expr, halt KExpr) Call { return tK(e, halt) }

// tK translates e with the reified continuation k.
//
// Atoms embed directly: the result is k applied to the atom. For an
// application the ambient continuation is first reified as a continuation
// lambda over a fresh result variable, then function and argument are
// translated left to right, each receiving a continuation that names its
// value before the final user call.
func tK(e Expr, k KExpr) Call {
	switch e := e.(type) {
	case Atom:
		return KCall{Fn: k, Arg: m(e)}
	case AppExpr:
		rv := Fresh("rv")
		cont := ContLam(rv, KCall{Fn: k, Arg: UVar{V: Free(rv)}})

		fv := Fresh("f")
		ev := Fresh("e")
		inner := ContLam(ev, UCall{Fn: UVar{V: Free(fv)}, Arg: UVar{V: Free(ev)}, Cont: cont})
		return tK(e.Fn, ContLam(fv, tK(e.Arg, inner)))
	}
	panic(fmt.Sprintf("cps: unhandled source expression %T", e))
}

// tC translates e when the ambient continuation is the continuation
// variable c, as inside a freshly built user lambda body. Unlike tK there
// is no result reification: the user call receives c by reference.
func tC(e Expr, c Identifier) Call {
	kRef := KVar{V: Free(c)}
	switch e := e.(type) {
	case Atom:
		return KCall{Fn: kRef, Arg: m(e)}
	case AppExpr:
		fv := Fresh("f")
		ev := Fresh("e")
		inner := ContLam(ev, UCall{Fn: UVar{V: Free(fv)}, Arg: UVar{V: Free(ev)}, Cont: kRef})
		return tK(e.Fn, ContLam(fv, tK(e.Arg, inner)))
	}
	panic(fmt.Sprintf("cps: unhandled source expression %T", e))
}

// m embeds an atomic expression as a user expression. A source lambda
// becomes a user lambda: the body is reopened, a fresh continuation
// parameter is allocated, and the body is translated under it.
//
// Applications cannot reach m; the Atom parameter type excludes them.
func m(a Atom) UExpr {
	switch a := a.(type) {
	case VarExpr:
		return UVar{V: a.V}
	case LitExpr:
		return ULit{L: a.L}
	case LamExpr:
		x, body := a.S.Unbind()
		k := Fresh("k")
		return UserLam(x, k, tC(body, k))
	}
	panic(fmt.Sprintf("cps: non-atomic expression %T", a))
}
