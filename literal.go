// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cps

import "strconv"

// Literal is an opaque literal value. Literals carry no binders; they
// compare by value and render through String.
type Literal interface {
	Equal(Literal) bool
	String() string
}

// IntLit is an integer literal.
type IntLit int64

// Equal reports value equality with another literal.
func (l IntLit) Equal(o Literal) bool {
	ol, ok := o.(IntLit)
	return ok && l == ol
}

func (l IntLit) String() string { return strconv.FormatInt(int64(l), 10) }

// StrLit is a string literal.
type StrLit string

// Equal reports value equality with another literal.
func (l StrLit) Equal(o Literal) bool {
	ol, ok := o.(StrLit)
	return ok && l == ol
}

func (l StrLit) String() string { return strconv.Quote(string(l)) }

// BoolLit is a boolean literal.
type BoolLit bool

// Equal reports value equality with another literal.
func (l BoolLit) Equal(o Literal) bool {
	ol, ok := o.(BoolLit)
	return ok && l == ol
}

func (l BoolLit) String() string { return strconv.FormatBool(bool(l)) }
