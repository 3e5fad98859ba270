// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pretty

import (
	"strings"

	"github.com/bufbuild/pretty/internal/ext/stringsx"
)

// Group offers the single-line form of d as an alternative: the layout
// functions take it when it fits and fall back to d when it does not.
//
// Grouping a document that is already flat, or that contains a hard line
// break with no flat alternative, returns it unchanged; no alternative is
// built that could not alter the output.
func Group[A any](d *Doc[A]) *Doc[A] {
	switch d.Kind() {
	case KindUnion:
		// Already a choice.
		return d
	case KindFlatAlt:
		r := ChangesUponFlattening(d.y)
		switch r.Kind() {
		case FlattenChanged:
			return Union(r.Value(), d.x)
		case FlattenAlreadyFlat:
			return Union(d.y, d.x)
		default:
			return d.x
		}
	default:
		r := ChangesUponFlattening(d)
		if r.Kind() == FlattenChanged {
			return Union(r.Value(), d)
		}
		return d
	}
}

// Line is a line break that renders as a space when flattened.
func Line[A any]() *Doc[A] {
	return FlatAlt(HardLine[A](), Char[A](' '))
}

// LineBreak is a line break that renders as nothing when flattened.
func LineBreak[A any]() *Doc[A] {
	return FlatAlt(HardLine[A](), Empty[A]())
}

// SoftLine renders as a space if the following content fits on the current
// line, and as a line break otherwise.
func SoftLine[A any]() *Doc[A] {
	return Group(Line[A]())
}

// SoftLineBreak renders as nothing if the following content fits on the
// current line, and as a line break otherwise.
func SoftLineBreak[A any]() *Doc[A] {
	return Group(LineBreak[A]())
}

// String is [Text] for strings with embedded newlines: each newline becomes
// a [Line], a break that flattens to a space.
func String[A any](s string) *Doc[A] {
	if !strings.ContainsRune(s, '\n') {
		return Text[A](s)
	}
	var parts []*Doc[A]
	for line := range stringsx.Lines(s) {
		parts = append(parts, Text[A](line))
	}
	return VSep(parts...)
}

// Align lays out d with the nesting level set to the current column, so
// that every line of d lines up under its first.
func Align[A any](d *Doc[A]) *Doc[A] {
	return Column(func(column int) *Doc[A] {
		return Nesting(func(level int) *Doc[A] {
			return Nest(column-level, d)
		})
	})
}

// Hang lays out d with the nesting level set to indent past the current
// column: the first line stays put and the rest hang under it, offset by
// indent.
func Hang[A any](indent int, d *Doc[A]) *Doc[A] {
	return Align(Nest(indent, d))
}

// Indent moves all of d, first line included, indent columns to the right
// of the current column.
func Indent[A any](indent int, d *Doc[A]) *Doc[A] {
	return Hang(indent, Concat(Spaces[A](indent), d))
}

// Width lays out d and then f applied to the column d's layout ends at minus
// the column it started at. For a layout of one line that is its width; for
// one that breaks, it is measured on the last line against the starting
// column.
func Width[A any](d *Doc[A], f func(width int) *Doc[A]) *Doc[A] {
	return Column(func(start int) *Doc[A] {
		return Concat(d, Column(func(end int) *Doc[A] {
			return f(end - start)
		}))
	})
}

// Fill lays out d and pads it with spaces to width columns. Wider layouts
// are not padded.
func Fill[A any](width int, d *Doc[A]) *Doc[A] {
	return Width(d, func(w int) *Doc[A] {
		return Spaces[A](width - w)
	})
}

// FillBreak is [Fill], except that a layout wider than width is followed by
// a line break nested to width, so whatever comes next still lines up.
func FillBreak[A any](width int, d *Doc[A]) *Doc[A] {
	return Width(d, func(w int) *Doc[A] {
		if w > width {
			return Nest(width, LineBreak[A]())
		}
		return Spaces[A](width - w)
	})
}

// Spaces is a document of n spaces; zero or negative n is [Empty].
func Spaces[A any](n int) *Doc[A] {
	switch {
	case n <= 0:
		return Empty[A]()
	case n == 1:
		return Char[A](' ')
	default:
		return Text[A](strings.Repeat(" ", n))
	}
}

// ConcatWith folds the documents together left to right with f, yielding
// [Empty] for no documents.
func ConcatWith[A any](f func(x, y *Doc[A]) *Doc[A], ds ...*Doc[A]) *Doc[A] {
	if len(ds) == 0 {
		return Empty[A]()
	}
	out := ds[0]
	for _, d := range ds[1:] {
		out = f(out, d)
	}
	return out
}

// HCat concatenates with nothing in between.
func HCat[A any](ds ...*Doc[A]) *Doc[A] {
	return ConcatWith(Concat, ds...)
}

// VCat concatenates with a line break between documents that vanishes when
// flattened.
func VCat[A any](ds ...*Doc[A]) *Doc[A] {
	return ConcatWith(func(x, y *Doc[A]) *Doc[A] {
		return Concat(x, Concat(LineBreak[A](), y))
	}, ds...)
}

// FillCat concatenates as many documents per line as fit, with nothing in
// between, breaking lines as needed.
func FillCat[A any](ds ...*Doc[A]) *Doc[A] {
	return ConcatWith(func(x, y *Doc[A]) *Doc[A] {
		return Concat(x, Concat(SoftLineBreak[A](), y))
	}, ds...)
}

// Cat concatenates on one line with nothing in between where the result
// fits, and with a line break between every pair of documents where it
// does not.
func Cat[A any](ds ...*Doc[A]) *Doc[A] {
	return Group(VCat(ds...))
}

// HSep separates with spaces.
func HSep[A any](ds ...*Doc[A]) *Doc[A] {
	return ConcatWith(func(x, y *Doc[A]) *Doc[A] {
		return Concat(x, Concat(Char[A](' '), y))
	}, ds...)
}

// VSep separates with a line break between documents that becomes a space
// when flattened.
func VSep[A any](ds ...*Doc[A]) *Doc[A] {
	return ConcatWith(func(x, y *Doc[A]) *Doc[A] {
		return Concat(x, Concat(Line[A](), y))
	}, ds...)
}

// FillSep fits as many documents per line as it can, space-separated,
// breaking lines as needed.
func FillSep[A any](ds ...*Doc[A]) *Doc[A] {
	return ConcatWith(func(x, y *Doc[A]) *Doc[A] {
		return Concat(x, Concat(SoftLine[A](), y))
	}, ds...)
}

// Sep separates with spaces on one line where the result fits, and with a
// line break between every pair of documents where it does not.
func Sep[A any](ds ...*Doc[A]) *Doc[A] {
	return Group(VSep(ds...))
}

// Punctuate appends p to every document but the last.
func Punctuate[A any](p *Doc[A], ds ...*Doc[A]) []*Doc[A] {
	out := make([]*Doc[A], len(ds))
	for i, d := range ds {
		if i < len(ds)-1 {
			out[i] = Concat(d, p)
		} else {
			out[i] = d
		}
	}
	return out
}

// Enclose wraps d in left and right.
func Enclose[A any](left, right, d *Doc[A]) *Doc[A] {
	return Concat(left, Concat(d, right))
}

// EncloseSep lays the documents out between left and right, each but the
// first preceded by sep. When the result does not fit on one line, every
// separator opens a new line, so separators lead rather than trail:
//
//	[ 1
//	, 20
//	, 300 ]
//
// See [List] and [Tupled] for the usual instantiations.
func EncloseSep[A any](left, right, sep *Doc[A], ds ...*Doc[A]) *Doc[A] {
	switch len(ds) {
	case 0:
		return Concat(left, right)
	case 1:
		return Concat(left, Concat(ds[0], right))
	default:
		pieces := make([]*Doc[A], len(ds))
		for i, d := range ds {
			if i == 0 {
				pieces[i] = Concat(left, d)
			} else {
				pieces[i] = Concat(sep, d)
			}
		}
		return Concat(Cat(pieces...), right)
	}
}

// List lays the documents out as a bracketed, comma-separated list.
func List[A any](ds ...*Doc[A]) *Doc[A] {
	return Group(EncloseSep(
		FlatAlt(Text[A]("[ "), Char[A]('[')),
		FlatAlt(Text[A](" ]"), Char[A](']')),
		Text[A](", "),
		ds...,
	))
}

// Tupled lays the documents out as a parenthesized, comma-separated tuple.
func Tupled[A any](ds ...*Doc[A]) *Doc[A] {
	return Group(EncloseSep(
		FlatAlt(Text[A]("( "), Char[A]('(')),
		FlatAlt(Text[A](" )"), Char[A](')')),
		Text[A](", "),
		ds...,
	))
}

// Words splits s on whitespace into one document per word.
func Words[A any](s string) []*Doc[A] {
	fields := strings.Fields(s)
	out := make([]*Doc[A], len(fields))
	for i, w := range fields {
		out[i] = Text[A](w)
	}
	return out
}

// Reflow fits the words of s onto as few lines as the page width allows.
func Reflow[A any](s string) *Doc[A] {
	return FillSep(Words[A](s)...)
}
