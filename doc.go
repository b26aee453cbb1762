// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cps implements a one-pass continuation-passing style
// transformation over a minimal lambda-calculus surface language.
//
// Given a direct-style expression tree (variables, literals,
// single-parameter lambdas, single-argument applications), [CPS] produces
// an equivalent tree in a restricted CPS form in which every call is
// tail-positioned and every intermediate result flows through an explicit
// continuation parameter.
//
// # Binding
//
// Terms use a locally nameless representation. [Identifier] is a
// process-unique identity with a display hint; [Fresh] mints one. A [Var]
// occurrence is either free (an identifier) or bound (a de Bruijn offset
// into enclosing scopes). [Scope] pairs one binder with a body:
//
//   - [Bind]: close free occurrences of the binder into the scope
//   - [Scope.Unbind]: reopen to a globally fresh identifier
//   - [Scope.AlphaEq]: structural equality is alpha-equivalence
//
// The scope abstraction is F-bounded (Scope[B term[B]]) so that closing
// and opening stay sort-preserving across the mutually recursive grammars,
// and scopes nest — a user lambda is a scope over a scope over a call.
//
// # Surface Grammar
//
// [Expr] with variants [VarExpr], [LitExpr], [LamExpr] and [AppExpr].
// The [Atom] refinement covers the trivial forms (everything but
// application); the kernel's atomic translation takes Atom, making its
// non-trivial case unrepresentable rather than a runtime contract.
//
// # CPS Grammar
//
// Three mutually recursive sorts enforce the calling convention
// syntactically:
//
//   - [UExpr]: user expressions — [ULam] binds a value parameter and a
//     continuation parameter around a call; [UVar], [ULit]
//   - [KExpr]: continuation expressions — [KLam] binds a single value
//     parameter around a call; [KVar], [KLit]
//   - [Call]: [UCall] applies a user function to a value and a
//     continuation; [KCall] applies a continuation to a value
//
// Lambda bodies are calls and call arguments are user expressions, so tail
// form and atomic arguments hold by construction.
//
// # Transformation
//
// [CPS] is the entry point: CPS(e, halt) returns a call that applies halt
// to the value of e. Internally three mutually recursive procedures
// translate with a reified continuation, under a continuation variable,
// and atomically; each source node is visited once and output size is
// linear in input size. Introduced binders use the hints "rv", "f", "e"
// and "k".
//
// # Administrative Reduction
//
// The canonical output names every intermediate value through a
// continuation lambda applied on the spot. [Simplify] contracts these
// administrative redexes while leaving user-level redexes and reified
// result continuations intact.
//
// # Lowering
//
// [Lower] (with [LowerU] and [LowerK]) collapses the three CPS sorts into
// the single flat sort [FExpr], tagging one-parameter versus two-parameter
// lambdas and calls explicitly. Lowering is purely structural: no fresh
// names, alpha-equivalence preserved.
//
// # Pretty Printing
//
// [Fprint] renders any [Node] as a parenthesized S-expression at a target
// width of [DefaultWidth] columns; [NewPrinter] configures width and color
// profile. Color uses termenv, keyed by syntactic role (lambda keyword,
// value binders, continuation binders, call heads), and disappears on
// non-terminal sinks without changing the text.
//
// # Concurrency
//
// The fresh-name counter is atomic and every term is an immutable value,
// so independent transformations may run concurrently.
//
// # Example
//
//	x := cps.Fresh("x")
//	id := cps.Lam(x, cps.VarExpr{V: cps.Free(x)})
//	halt := cps.KVar{V: cps.Free(cps.Fresh("halt"))}
//
//	call := cps.CPS(id, halt)
//	_ = cps.Fprint(os.Stdout, call)
//	// (halt (lambda (x k) (k x)))
package cps
