// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cps

import (
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// The pretty printer renders terms as parenthesized S-expressions through
// a small Wadler-style document layer: text, an optional line break, nest,
// and group. A group renders flat when it fits in the remaining width and
// breaks otherwise. Only lambda bodies group; calls always stay on one
// line. Color is applied per role through termenv, so the escape sequences
// follow the output profile and plain sinks receive plain text.

// DefaultWidth is the target column width used by Fprint.
const DefaultWidth = 70

// Node is any expression form that can be pretty printed: every variant of
// the surface, CPS and flat sorts satisfies it.
type Node interface {
	pretty() doc
}

// colorRole classifies rendered text for colorization.
type colorRole uint8

const (
	roleNone    colorRole = iota
	roleKeyword           // the lambda keyword
	roleBinder            // value binders
	roleCont              // continuation binders
	roleCallee            // function position of calls
)

type doc interface{ isDoc() }

type textDoc struct {
	s    string
	role colorRole
}

// lineDoc renders as a space when flat and as a newline plus indentation
// when broken.
type lineDoc struct{}

type concatDoc struct{ parts []doc }

type nestDoc struct {
	indent int
	d      doc
}

type groupDoc struct{ d doc }

// annotateDoc colors every unstyled text below it.
type annotateDoc struct {
	role colorRole
	d    doc
}

func (textDoc) isDoc() {}
func (lineDoc) isDoc() {}
func (concatDoc) isDoc() {}
func (nestDoc) isDoc() {}
func (groupDoc) isDoc() {}
func (annotateDoc) isDoc() {}

func text(s string) doc { return textDoc{s: s} }
func styled(s string, role colorRole) doc { return textDoc{s: s, role: role} }
func cat(parts ...doc) doc { return concatDoc{parts: parts} }
func line() doc { return lineDoc{} }
func nest(indent int, d doc) doc { return nestDoc{indent: indent, d: d} }
func group(d doc) doc { return groupDoc{d: d} }
func annotate(role colorRole, d doc) doc { return annotateDoc{role: role, d: d} }

func parens(d doc) doc { return cat(text("("), d, text(")")) }

// lamDoc builds (lambda params body) with the body in a grouped,
// one-space-nested block after the parameter list.
func lamDoc(params doc, body doc) doc {
	return parens(cat(
		styled("lambda", roleKeyword),
		text(" "),
		params,
		group(nest(1, cat(line(), body))),
	))
}

// flatWidth is the width of d rendered without any line breaks.
func flatWidth(d doc) int {
	switch d := d.(type) {
	case textDoc:
		return len(d.s)
	case lineDoc:
		return 1
	case concatDoc:
		n := 0
		for _, p := range d.parts {
			n += flatWidth(p)
		}
		return n
	case nestDoc:
		return flatWidth(d.d)
	case groupDoc:
		return flatWidth(d.d)
	case annotateDoc:
		return flatWidth(d.d)
	}
	return 0
}

// render lays d out against the target width, emitting text runs tagged
// with their color role. It stops at the first emit error.
func render(d doc, width int, emit func(s string, role colorRole) error) error {
	type frame struct {
		indent int
		flat   bool
		role   colorRole
		d      doc
	}
	stack := []frame{{indent: 0, flat: false, role: roleNone, d: d}}
	col := 0
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch d := fr.d.(type) {
		case textDoc:
			role := d.role
			if role == roleNone {
				role = fr.role
			}
			if err := emit(d.s, role); err != nil {
				return err
			}
			col += len(d.s)
		case lineDoc:
			if fr.flat {
				if err := emit(" ", roleNone); err != nil {
					return err
				}
				col++
				break
			}
			if err := emit("\n"+strings.Repeat(" ", fr.indent), roleNone); err != nil {
				return err
			}
			col = fr.indent
		case concatDoc:
			for i := len(d.parts) - 1; i >= 0; i-- {
				stack = append(stack, frame{fr.indent, fr.flat, fr.role, d.parts[i]})
			}
		case nestDoc:
			stack = append(stack, frame{fr.indent + d.indent, fr.flat, fr.role, d.d})
		case groupDoc:
			flat := fr.flat || flatWidth(d.d) <= width-col
			stack = append(stack, frame{fr.indent, flat, fr.role, d.d})
		case annotateDoc:
			stack = append(stack, frame{fr.indent, fr.flat, d.role, d.d})
		}
	}
	return nil
}

// Printer renders expressions to a sink. The zero value is not usable;
// construct with NewPrinter.
type Printer struct {
	w     io.Writer
	out   *termenv.Output
	width int
}

type printerConfig struct {
	width      int
	profile    termenv.Profile
	hasProfile bool
}

// PrinterOption configures a Printer.
type PrinterOption func(*printerConfig)

// WithWidth sets the target column width.
func WithWidth(width int) PrinterOption {
	return func(cfg *printerConfig) { cfg.width = width }
}

// WithProfile forces a termenv color profile instead of detecting one from
// the sink and environment. Use termenv.Ascii for guaranteed-plain output
// or termenv.ANSI to colorize regardless of sink.
func WithProfile(profile termenv.Profile) PrinterOption {
	return func(cfg *printerConfig) {
		cfg.profile = profile
		cfg.hasProfile = true
	}
}

// NewPrinter returns a Printer writing to w. Without options the width is
// DefaultWidth and the color profile is detected from w and the
// environment, so non-terminal sinks receive plain text.
func NewPrinter(w io.Writer, opts ...PrinterOption) *Printer {
	cfg := printerConfig{width: DefaultWidth}
	for _, opt := range opts {
		opt(&cfg)
	}
	var out *termenv.Output
	if cfg.hasProfile {
		out = termenv.NewOutput(w, termenv.WithProfile(cfg.profile))
	} else {
		out = termenv.NewOutput(w)
	}
	return &Printer{w: w, out: out, width: cfg.width}
}

func (p *Printer) color(role colorRole) termenv.Color {
	switch role {
	case roleKeyword:
		return termenv.ANSIMagenta
	case roleBinder:
		return termenv.ANSIGreen
	case roleCont:
		return termenv.ANSIRed
	case roleCallee:
		return termenv.ANSIBlue
	}
	return nil
}

// Print renders t to the printer's sink. The first error returned by the
// sink is surfaced unchanged.
func (p *Printer) Print(t Node) error {
	return render(t.pretty(), p.width, func(s string, role colorRole) error {
		if c := p.color(role); c != nil {
			s = p.out.String(s).Foreground(c).String()
		}
		_, err := io.WriteString(p.w, s)
		return err
	})
}

// Fprint renders t to w at DefaultWidth. Color follows the detected
// profile of w: terminals are colorized, plain sinks are not, and the text
// content is identical either way.
func Fprint(w io.Writer, t Node) error {
	return NewPrinter(w).Print(t)
}

// Sprint renders t to a string without color.
func Sprint(t Node) string {
	var b strings.Builder
	// strings.Builder never errors.
	_ = NewPrinter(&b, WithProfile(termenv.Ascii)).Print(t)
	return b.String()
}

func (e VarExpr) pretty() doc { return text(e.V.String()) }
func (e LitExpr) pretty() doc { return text(e.L.String()) }

func (e LamExpr) pretty() doc {
	params := parens(styled(e.S.binder.String(), roleBinder))
	return lamDoc(params, e.S.body.pretty())
}

func (e AppExpr) pretty() doc {
	return parens(cat(annotate(roleCallee, e.Fn.pretty()), text(" "), e.Arg.pretty()))
}

func (e UVar) pretty() doc { return text(e.V.String()) }
func (e ULit) pretty() doc { return text(e.L.String()) }

func (e ULam) pretty() doc {
	inner := e.S.body
	params := parens(cat(
		styled(e.S.binder.String(), roleBinder),
		text(" "),
		styled(inner.binder.String(), roleCont),
	))
	return lamDoc(params, inner.body.pretty())
}

func (e KVar) pretty() doc { return text(e.V.String()) }
func (e KLit) pretty() doc { return text(e.L.String()) }

func (e KLam) pretty() doc {
	params := parens(styled(e.S.binder.String(), roleBinder))
	return lamDoc(params, e.S.body.pretty())
}

func (c UCall) pretty() doc {
	return parens(cat(
		annotate(roleCallee, c.Fn.pretty()),
		text(" "),
		c.Arg.pretty(),
		text(" "),
		c.Cont.pretty(),
	))
}

func (c KCall) pretty() doc {
	return parens(cat(
		annotate(roleCallee, c.Fn.pretty()),
		text(" "),
		c.Arg.pretty(),
	))
}

func (e FVar) pretty() doc { return text(e.V.String()) }
func (e FLit) pretty() doc { return text(e.L.String()) }

func (e FLamOne) pretty() doc {
	params := parens(styled(e.S.binder.String(), roleBinder))
	return lamDoc(params, e.S.body.pretty())
}

func (e FLamTwo) pretty() doc {
	inner := e.S.body
	params := parens(cat(
		styled(e.S.binder.String(), roleBinder),
		text(" "),
		styled(inner.binder.String(), roleCont),
	))
	return lamDoc(params, inner.body.pretty())
}

func (e FCallOne) pretty() doc {
	return parens(cat(annotate(roleCallee, e.Fn.pretty()), text(" "), e.Arg.pretty()))
}

func (e FCallTwo) pretty() doc {
	return parens(cat(
		annotate(roleCallee, e.Fn.pretty()),
		text(" "),
		e.Arg.pretty(),
		text(" "),
		e.Cont.pretty(),
	))
}
