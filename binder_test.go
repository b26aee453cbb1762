// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cps_test

import (
	"sync"
	"testing"

	"code.hybscloud.com/cps"
)

func TestFreshDistinct(t *testing.T) {
	a := cps.Fresh("x")
	b := cps.Fresh("x")
	if a.Equal(b) {
		t.Fatal("two Fresh identifiers compare equal")
	}
	if a.Hint() != "x" || b.Hint() != "x" {
		t.Fatalf("hints not preserved: %q, %q", a.Hint(), b.Hint())
	}
}

func TestFreshConcurrent(t *testing.T) {
	const workers = 8
	const perWorker = 1000

	var wg sync.WaitGroup
	results := make([][]cps.Identifier, workers)
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := make([]cps.Identifier, 0, perWorker)
			for range perWorker {
				ids = append(ids, cps.Fresh("g"))
			}
			results[w] = ids
		}()
	}
	wg.Wait()

	seen := make(map[cps.Identifier]bool, workers*perWorker)
	for _, ids := range results {
		for _, id := range ids {
			if seen[id] {
				t.Fatalf("duplicate identifier %v", id)
			}
			seen[id] = true
		}
	}
}

func TestIdentifierString(t *testing.T) {
	if got := cps.Fresh("halt").String(); got != "halt" {
		t.Fatalf("got %q, want %q", got, "halt")
	}
}

func TestVarAccessors(t *testing.T) {
	x := cps.Fresh("x")
	v := cps.Free(x)
	if !v.IsFree() {
		t.Fatal("Free occurrence reported bound")
	}
	id, ok := v.Identifier()
	if !ok || !id.Equal(x) {
		t.Fatalf("Identifier() = %v, %v; want %v, true", id, ok, x)
	}
}

func TestBindUnbindRoundTrip(t *testing.T) {
	x := cps.Fresh("x")
	var body cps.Expr = cps.VarExpr{V: cps.Free(x)}
	s := cps.Bind(x, body)

	y, opened := s.Unbind()
	if y.Equal(x) {
		t.Fatal("Unbind reused the original identifier")
	}
	if y.Hint() != "x" {
		t.Fatalf("Unbind hint = %q, want %q", y.Hint(), "x")
	}
	want := cps.Expr(cps.VarExpr{V: cps.Free(y)})
	if !opened.AlphaEq(want) {
		t.Fatalf("opened body %s does not reference the fresh binder", cps.Sprint(opened))
	}
}

func TestUnbindTwiceIndependent(t *testing.T) {
	x := cps.Fresh("x")
	s := cps.Bind(x, cps.Expr(cps.VarExpr{V: cps.Free(x)}))

	y1, b1 := s.Unbind()
	y2, b2 := s.Unbind()
	if y1.Equal(y2) {
		t.Fatal("two Unbind calls produced the same identifier")
	}
	// Distinct names, but the bodies stay alpha-equivalent.
	if !b1.AlphaEq(b2) {
		t.Fatal("reopened bodies are not alpha-equivalent")
	}
}

func TestScopeAlphaEq(t *testing.T) {
	x := cps.Fresh("x")
	y := cps.Fresh("y")
	z := cps.Fresh("z")

	idX := cps.Lam(x, cps.VarExpr{V: cps.Free(x)})
	idY := cps.Lam(y, cps.VarExpr{V: cps.Free(y)})
	constZ := cps.Lam(y, cps.VarExpr{V: cps.Free(z)})

	if !idX.S.AlphaEq(idY.S) {
		t.Fatal("alpha-equivalent scopes compare unequal")
	}
	if idX.S.AlphaEq(constZ.S) {
		t.Fatal("distinct scopes compare equal")
	}
}

func TestShadowing(t *testing.T) {
	x := cps.Fresh("x")
	// (lambda (x) (lambda (x) x)): the inner binder wins.
	e := cps.Lam(x, cps.Lam(x, cps.VarExpr{V: cps.Free(x)}))

	_, outerBody := e.S.Unbind()
	inner, ok := outerBody.(cps.LamExpr)
	if !ok {
		t.Fatalf("outer body is %T, want LamExpr", outerBody)
	}
	y, innerBody := inner.S.Unbind()
	if !innerBody.AlphaEq(cps.Expr(cps.VarExpr{V: cps.Free(y)})) {
		t.Fatalf("inner occurrence not bound by inner binder: %s", cps.Sprint(innerBody))
	}
}

func TestFreeVars(t *testing.T) {
	x := cps.Fresh("x")
	z := cps.Fresh("z")
	// ((lambda (x) (x z)) z): only z is free.
	e := cps.Expr(cps.AppExpr{
		Fn:  cps.Lam(x, cps.AppExpr{Fn: cps.VarExpr{V: cps.Free(x)}, Arg: cps.VarExpr{V: cps.Free(z)}}),
		Arg: cps.VarExpr{V: cps.Free(z)},
	})

	got := cps.FreeVars(e)
	if got.Size() != 1 || !got.Contains(z) {
		t.Fatalf("FreeVars = %v, want {%v}", got.Slice(), z)
	}
}

func TestFreeVarsOfScope(t *testing.T) {
	x := cps.Fresh("x")
	z := cps.Fresh("z")
	s := cps.Bind(x, cps.Expr(cps.AppExpr{
		Fn:  cps.VarExpr{V: cps.Free(x)},
		Arg: cps.VarExpr{V: cps.Free(z)},
	}))

	got := cps.FreeVars(s)
	if got.Size() != 1 || !got.Contains(z) {
		t.Fatalf("FreeVars = %v, want {%v}", got.Slice(), z)
	}
}
