// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cps_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"code.hybscloud.com/cps"
)

func TestSprintForms(t *testing.T) {
	h := cps.Fresh("halt")
	x := cps.Fresh("x")
	f := cps.Fresh("f")
	a := cps.Fresh("a")
	k := cps.Fresh("k")
	rv := cps.Fresh("rv")

	tests := []struct {
		name string
		t    cps.Node
		want string
	}{
		{
			name: "user lambda",
			t:    cps.UserLam(x, k, cps.KCall{Fn: kv(k), Arg: uv(x)}),
			want: "(lambda (x k) (k x))",
		},
		{
			name: "continuation lambda",
			t:    cps.ContLam(rv, cps.KCall{Fn: kv(h), Arg: uv(rv)}),
			want: "(lambda (rv) (halt rv))",
		},
		{
			name: "user call",
			t:    cps.UCall{Fn: uv(f), Arg: uv(a), Cont: kv(k)},
			want: "(f a k)",
		},
		{
			name: "continuation call",
			t:    cps.KCall{Fn: kv(h), Arg: uv(a)},
			want: "(halt a)",
		},
		{
			name: "integer literal",
			t:    cps.ULit{L: cps.IntLit(42)},
			want: "42",
		},
		{
			name: "string literal",
			t:    cps.ULit{L: cps.StrLit("hi")},
			want: `"hi"`,
		},
		{
			name: "boolean literal",
			t:    cps.KCall{Fn: kv(h), Arg: cps.ULit{L: cps.BoolLit(true)}},
			want: "(halt true)",
		},
		{
			name: "surface application",
			t:    cps.AppExpr{Fn: cps.Lam(x, sv(x)), Arg: sv(a)},
			want: "((lambda (x) x) a)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cps.Sprint(tt.t); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintWrapsNarrowWidth(t *testing.T) {
	x := cps.Fresh("x")
	k := cps.Fresh("k")
	lam := cps.UserLam(x, k, cps.KCall{Fn: kv(k), Arg: uv(x)})

	var b strings.Builder
	p := cps.NewPrinter(&b, cps.WithWidth(10), cps.WithProfile(termenv.Ascii))
	if err := p.Print(lam); err != nil {
		t.Fatal(err)
	}
	want := "(lambda (x k)\n (k x))"
	if got := b.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrintKeepsWideBodyFlat(t *testing.T) {
	x := cps.Fresh("x")
	k := cps.Fresh("k")
	lam := cps.UserLam(x, k, cps.KCall{Fn: kv(k), Arg: uv(x)})

	var b strings.Builder
	p := cps.NewPrinter(&b, cps.WithWidth(80), cps.WithProfile(termenv.Ascii))
	if err := p.Print(lam); err != nil {
		t.Fatal(err)
	}
	if got := b.String(); strings.Contains(got, "\n") {
		t.Fatalf("body broke at width 80: %q", got)
	}
}

func TestPrintForcedColor(t *testing.T) {
	x := cps.Fresh("x")
	k := cps.Fresh("k")
	lam := cps.UserLam(x, k, cps.KCall{Fn: kv(k), Arg: uv(x)})

	var b strings.Builder
	p := cps.NewPrinter(&b, cps.WithProfile(termenv.ANSI))
	if err := p.Print(lam); err != nil {
		t.Fatal(err)
	}
	got := b.String()
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("no escape sequences in %q", got)
	}
	// lambda keyword in magenta, value binder green, continuation binder red.
	for _, seq := range []string{"\x1b[35mlambda", "\x1b[32mx", "\x1b[31mk"} {
		if !strings.Contains(got, seq) {
			t.Fatalf("missing %q in %q", seq, got)
		}
	}
}

func TestFprintPlainSink(t *testing.T) {
	h := cps.Fresh("halt")
	a := cps.Fresh("a")

	var b bytes.Buffer
	if err := cps.Fprint(&b, cps.KCall{Fn: kv(h), Arg: uv(a)}); err != nil {
		t.Fatal(err)
	}
	// A non-terminal sink gets plain text.
	if got := b.String(); got != "(halt a)" {
		t.Fatalf("got %q, want %q", got, "(halt a)")
	}
}

type failWriter struct{ err error }

func (w failWriter) Write([]byte) (int, error) { return 0, w.err }

func TestPrintSinkError(t *testing.T) {
	sinkErr := errors.New("sink closed")
	x := cps.Fresh("x")
	k := cps.Fresh("k")
	lam := cps.UserLam(x, k, cps.KCall{Fn: kv(k), Arg: uv(x)})

	p := cps.NewPrinter(failWriter{err: sinkErr}, cps.WithProfile(termenv.Ascii))
	if err := p.Print(lam); !errors.Is(err, sinkErr) {
		t.Fatalf("got %v, want %v", err, sinkErr)
	}
}
