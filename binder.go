// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cps

import (
	"fmt"
	"sync/atomic"

	"github.com/hashicorp/go-set/v3"
)

// freshCounter backs Fresh. Atomic so that independent transformations can
// run concurrently.
var freshCounter atomic.Uint64

// Identifier is a free-variable identity paired with a textual hint.
// Two identifiers name the same variable only if they share the same
// generation-unique identity; the hint never participates in equality
// and exists purely for display.
type Identifier struct {
	id   uint64
	hint string
}

// Fresh returns an identifier distinct from every identifier previously
// produced in this process. The hint is stored for display.
func Fresh(hint string) Identifier {
	return Identifier{id: freshCounter.Add(1), hint: hint}
}

// Equal reports whether both identifiers share the same identity.
func (i Identifier) Equal(o Identifier) bool { return i.id == o.id }

// Hint returns the display hint the identifier was created with.
func (i Identifier) Hint() string { return i.hint }

// String renders the hint, or $N for hintless identifiers.
func (i Identifier) String() string {
	if i.hint == "" {
		return fmt.Sprintf("$%d", i.id)
	}
	return i.hint
}

// freeIndex marks a Var occurrence as free.
const freeIndex = -1

// Var is a variable occurrence: free, carrying an Identifier, or bound,
// carrying a de Bruijn offset counting the scope boundaries between the
// occurrence and its binder. Bound occurrences retain the identifier they
// were closed from so they can still be displayed without unbinding.
type Var struct {
	id    Identifier
	index int
}

// Free returns a free occurrence of id.
func Free(id Identifier) Var { return Var{id: id, index: freeIndex} }

// IsFree reports whether the occurrence is free.
func (v Var) IsFree() bool { return v.index == freeIndex }

// Identifier returns the identity of a free occurrence.
// The second result is false for bound occurrences.
func (v Var) Identifier() (Identifier, bool) {
	if v.index == freeIndex {
		return v.id, true
	}
	return Identifier{}, false
}

// String renders the occurrence by its display hint.
func (v Var) String() string { return v.id.String() }

// close converts a free occurrence of id into a bound occurrence at the
// given binding depth.
func (v Var) close(depth int, id Identifier) Var {
	if v.index == freeIndex && v.id.Equal(id) {
		return Var{id: v.id, index: depth}
	}
	return v
}

// open replaces a bound occurrence at the given depth with r.
func (v Var) open(depth int, r Var) Var {
	if v.index == depth {
		return r
	}
	return v
}

// alphaEq compares occurrences: bound ones by offset, free ones by identity.
func (v Var) alphaEq(o Var) bool {
	if v.index != o.index {
		return false
	}
	return v.index != freeIndex || v.id.Equal(o.id)
}

func (v Var) freeVars(acc *set.Set[Identifier]) {
	if v.index == freeIndex {
		acc.Insert(v.id)
	}
}

// term is the constraint satisfied by every syntactic sort that can appear
// under a binder. The F-bounded form (T referring to itself) keeps close
// and open sort-preserving without type assertions at use sites.
type term[T any] interface {
	close(depth int, id Identifier) T
	open(depth int, v Var) T
	freeVars(acc *set.Set[Identifier])

	// AlphaEq reports alpha-equivalence with another term of the same sort.
	AlphaEq(T) bool
}

// Scope is a single binder closed over a body of sort B. Scopes can only
// be produced by Bind, which is what maintains binding hygiene: free
// occurrences of the binder become bound occurrences on construction and
// are reopened to globally fresh identifiers by Unbind.
//
// Scope[B] itself satisfies the term constraint, so scopes nest: a user
// lambda body is a Scope[Scope[Call]].
type Scope[B term[B]] struct {
	binder Identifier
	body   B
}

// Bind closes free occurrences of binder in body into a scope.
func Bind[B term[B]](binder Identifier, body B) Scope[B] {
	return Scope[B]{binder: binder, body: body.close(0, binder)}
}

// Unbind reopens the scope. The binder is replaced with a fresh identifier
// carrying the same hint, and the bound occurrences in the returned body
// refer to that fresh identifier. The fresh identity is distinct from
// every live free variable, so reopening cannot capture.
func (s Scope[B]) Unbind() (Identifier, B) {
	id := Fresh(s.binder.hint)
	return id, s.body.open(0, Free(id))
}

// AlphaEq reports alpha-equivalence of two scopes: binder identities are
// ignored and the bodies are compared in de Bruijn form.
func (s Scope[B]) AlphaEq(o Scope[B]) bool { return s.body.AlphaEq(o.body) }

func (s Scope[B]) close(depth int, id Identifier) Scope[B] {
	return Scope[B]{binder: s.binder, body: s.body.close(depth+1, id)}
}

func (s Scope[B]) open(depth int, v Var) Scope[B] {
	return Scope[B]{binder: s.binder, body: s.body.open(depth+1, v)}
}

func (s Scope[B]) freeVars(acc *set.Set[Identifier]) { s.body.freeVars(acc) }

// FreeVars collects the free identifiers of a term. Identifiers closed by
// enclosing scopes are not reported.
func FreeVars[T term[T]](t T) *set.Set[Identifier] {
	acc := set.New[Identifier](8)
	t.freeVars(acc)
	return acc
}
