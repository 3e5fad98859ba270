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
	"unicode/utf8"
)

const (
	kindNone DocKind = iota //nolint:unused

	KindFail      // Rejects every layout it appears in on its first line.
	KindEmpty     // The unit of concatenation.
	KindChar      // A single non-newline rune.
	KindText      // A run of non-newline text, at least two runes long.
	KindLine      // A hard line break.
	KindFlatAlt   // A pair of layouts, the second preferred when flattened.
	KindCat       // Concatenation of two documents.
	KindNest      // A change to the nesting level.
	KindUnion     // A choice of two layouts; see [Union].
	KindColumn    // Reacts to the current column.
	KindPageWidth // Reacts to the configured page width.
	KindNesting   // Reacts to the current nesting level.
	KindAnnotated // Attaches a user annotation to a subdocument.
)

// DocKind is a kind of [Doc] node.
type DocKind byte

// Doc is a document: a set of possible layouts of the same text, which a
// layout function collapses into a [Stream] of output events.
//
// A Doc is parameterized by the type of annotations attached to it with
// [Annotate]; use [Doc[struct{}]] (or any placeholder) when annotations are
// not needed. Documents are immutable once built and may be freely shared,
// including between subtrees of the same document.
//
// The nil *Doc is equivalent to [Empty].
type Doc[A any] struct {
	kind DocKind

	ch     rune
	text   string
	indent int

	x, y *Doc[A]
	ann  A

	// Deferred subdocuments for KindColumn/KindNesting and KindPageWidth.
	// Invoked by the layout functions once their input is known; they must
	// be pure.
	reactInt func(int) *Doc[A]
	reactPW  func(PageWidth) *Doc[A]
}

// Kind returns which kind of node this is. The nil document is KindEmpty.
func (d *Doc[A]) Kind() DocKind {
	if d == nil {
		return KindEmpty
	}
	return d.kind
}

// Rune returns the rune of a KindChar node.
func (d *Doc[A]) Rune() rune {
	d.expect(KindChar)
	return d.ch
}

// Text returns the text of a KindText node.
func (d *Doc[A]) Text() string {
	d.expect(KindText)
	return d.text
}

// Pair returns the two subdocuments of a KindFlatAlt, KindCat, or KindUnion
// node.
func (d *Doc[A]) Pair() (x, y *Doc[A]) {
	if k := d.Kind(); k != KindFlatAlt && k != KindCat && k != KindUnion {
		panic("pretty: called Pair() on a " + k.String() + " document")
	}
	return d.x, d.y
}

// IndentBy returns the indentation delta of a KindNest node.
func (d *Doc[A]) IndentBy() int {
	d.expect(KindNest)
	return d.indent
}

// Inner returns the subdocument of a KindNest or KindAnnotated node.
func (d *Doc[A]) Inner() *Doc[A] {
	if k := d.Kind(); k != KindNest && k != KindAnnotated {
		panic("pretty: called Inner() on a " + k.String() + " document")
	}
	return d.x
}

// Annotation returns the annotation of a KindAnnotated node.
func (d *Doc[A]) Annotation() A {
	d.expect(KindAnnotated)
	return d.ann
}

// AtColumn invokes the deferred subdocument of a KindColumn node with the
// given column.
func (d *Doc[A]) AtColumn(column int) *Doc[A] {
	d.expect(KindColumn)
	return d.reactInt(column)
}

// AtNesting invokes the deferred subdocument of a KindNesting node with the
// given nesting level.
func (d *Doc[A]) AtNesting(level int) *Doc[A] {
	d.expect(KindNesting)
	return d.reactInt(level)
}

// AtPageWidth invokes the deferred subdocument of a KindPageWidth node with
// the given page width.
func (d *Doc[A]) AtPageWidth(width PageWidth) *Doc[A] {
	d.expect(KindPageWidth)
	return d.reactPW(width)
}

func (d *Doc[A]) expect(kind DocKind) {
	if d.Kind() != kind {
		panic("pretty: called " + kind.String() + " accessor on a " + d.Kind().String() + " document")
	}
}

// String implements [fmt.Stringer].
func (k DocKind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Invalid"
}

var kindNames = [...]string{
	KindFail:      "Fail",
	KindEmpty:     "Empty",
	KindChar:      "Char",
	KindText:      "Text",
	KindLine:      "Line",
	KindFlatAlt:   "FlatAlt",
	KindCat:       "Cat",
	KindNest:      "Nest",
	KindUnion:     "Union",
	KindColumn:    "Column",
	KindPageWidth: "PageWidth",
	KindNesting:   "Nesting",
	KindAnnotated: "Annotated",
}

// Fail returns a document that rejects every layout it appears in.
//
// Flattening a hard line break produces Fail; it is rarely useful directly.
func Fail[A any]() *Doc[A] {
	return &Doc[A]{kind: KindFail}
}

// Empty returns the empty document.
//
// Empty still occupies a line: Empty between two hard line breaks produces
// an empty line of output.
func Empty[A any]() *Doc[A] {
	return &Doc[A]{kind: KindEmpty}
}

// Char returns a document of a single rune.
//
// Panics if r is a newline; line breaks are only ever introduced with
// [HardLine] and the combinators built on it.
func Char[A any](r rune) *Doc[A] {
	if r == '\n' {
		panic("pretty: Char called with a newline; use HardLine")
	}
	return &Doc[A]{kind: KindChar, ch: r}
}

// Text returns a document of a run of text.
//
// Panics if s contains a newline; use [String] for text with embedded line
// breaks. The empty string becomes [Empty] and a single rune becomes [Char],
// so that a KindText node always carries at least two runes.
func Text[A any](s string) *Doc[A] {
	if strings.ContainsRune(s, '\n') {
		panic("pretty: Text called with a newline; use String")
	}
	switch utf8.RuneCountInString(s) {
	case 0:
		return Empty[A]()
	case 1:
		r, _ := utf8.DecodeRuneInString(s)
		return &Doc[A]{kind: KindChar, ch: r}
	default:
		return &Doc[A]{kind: KindText, text: s}
	}
}

// HardLine returns a line break that survives [Group]: a group containing
// one is never flattened to a single line.
func HardLine[A any]() *Doc[A] {
	return &Doc[A]{kind: KindLine}
}

// FlatAlt renders as x, except when flattened by [Group], in which case y is
// used instead.
//
// The first line of x must never be wider than the first line of flattened
// y; the layout functions rely on this and produce overlong lines when it is
// violated.
func FlatAlt[A any](x, y *Doc[A]) *Doc[A] {
	return &Doc[A]{kind: KindFlatAlt, x: x, y: y}
}

// Concat concatenates two documents.
//
// Concatenation is associative with [Empty] as its unit. For joining more
// than two documents, see [HCat] and friends.
func Concat[A any](x, y *Doc[A]) *Doc[A] {
	return &Doc[A]{kind: KindCat, x: x, y: y}
}

// Nest changes the nesting level, the indentation prefixed onto every line
// opened inside d, by the given delta. Negative deltas are permitted and
// undo enclosing nesting.
//
// See also [Align], [Hang], and [Indent], which nest relative to the
// current column.
func Nest[A any](indent int, d *Doc[A]) *Doc[A] {
	if indent == 0 {
		return d
	}
	return &Doc[A]{kind: KindNest, indent: indent, x: d}
}

// Union is a choice between two layouts of the same content.
//
// Every first line of x must be at least as wide as the corresponding first
// line of y; the layout functions try x and fall back to y. [Group] is the
// only producer of unions that most callers need; building one directly
// makes the caller responsible for that invariant.
func Union[A any](x, y *Doc[A]) *Doc[A] {
	return &Doc[A]{kind: KindUnion, x: x, y: y}
}

// Column produces a document that depends on the column the output is at.
//
// react must be pure; it is invoked when the layout reaches this node and
// its result is laid out in place of it.
func Column[A any](react func(column int) *Doc[A]) *Doc[A] {
	return &Doc[A]{kind: KindColumn, reactInt: react}
}

// Nesting produces a document that depends on the current nesting level.
//
// react must be pure.
func Nesting[A any](react func(level int) *Doc[A]) *Doc[A] {
	return &Doc[A]{kind: KindNesting, reactInt: react}
}

// WithPageWidth produces a document that depends on the page width the
// layout was requested with.
//
// react must be pure.
func WithPageWidth[A any](react func(width PageWidth) *Doc[A]) *Doc[A] {
	return &Doc[A]{kind: KindPageWidth, reactPW: react}
}

// Annotate attaches an annotation to a document.
//
// Annotations are carried through layout into the output stream and are
// invisible to [Stream.Render]; back ends that interpret them consume the
// stream directly.
func Annotate[A any](ann A, d *Doc[A]) *Doc[A] {
	return &Doc[A]{kind: KindAnnotated, ann: ann, x: d}
}

// ReAnnotate rewrites every annotation in d with f.
func ReAnnotate[A, B any](d *Doc[A], f func(A) B) *Doc[B] {
	if d == nil {
		return nil
	}
	switch d.Kind() {
	case KindFail, KindEmpty, KindChar, KindText, KindLine:
		return &Doc[B]{kind: d.kind, ch: d.ch, text: d.text}
	case KindFlatAlt, KindCat, KindUnion:
		return &Doc[B]{kind: d.kind, x: ReAnnotate(d.x, f), y: ReAnnotate(d.y, f)}
	case KindNest:
		return &Doc[B]{kind: KindNest, indent: d.indent, x: ReAnnotate(d.x, f)}
	case KindColumn, KindNesting:
		react := d.reactInt
		return &Doc[B]{kind: d.kind, reactInt: func(n int) *Doc[B] {
			return ReAnnotate(react(n), f)
		}}
	case KindPageWidth:
		react := d.reactPW
		return &Doc[B]{kind: KindPageWidth, reactPW: func(w PageWidth) *Doc[B] {
			return ReAnnotate(react(w), f)
		}}
	case KindAnnotated:
		return &Doc[B]{kind: KindAnnotated, ann: f(d.ann), x: ReAnnotate(d.x, f)}
	default:
		panic("pretty: invalid document kind")
	}
}

// UnAnnotate strips every annotation from d.
//
// Stripping an already-laid-out [Stream] with [UnAnnotateStream] is cheaper
// than laying out an unannotated copy of the document.
func UnAnnotate[A, B any](d *Doc[A]) *Doc[B] {
	if d == nil {
		return nil
	}
	switch d.Kind() {
	case KindFail, KindEmpty, KindChar, KindText, KindLine:
		return &Doc[B]{kind: d.kind, ch: d.ch, text: d.text}
	case KindFlatAlt, KindCat, KindUnion:
		return &Doc[B]{kind: d.kind, x: UnAnnotate[A, B](d.x), y: UnAnnotate[A, B](d.y)}
	case KindNest:
		return &Doc[B]{kind: KindNest, indent: d.indent, x: UnAnnotate[A, B](d.x)}
	case KindColumn, KindNesting:
		react := d.reactInt
		return &Doc[B]{kind: d.kind, reactInt: func(n int) *Doc[B] {
			return UnAnnotate[A, B](react(n))
		}}
	case KindPageWidth:
		react := d.reactPW
		return &Doc[B]{kind: KindPageWidth, reactPW: func(w PageWidth) *Doc[B] {
			return UnAnnotate[A, B](react(w))
		}}
	case KindAnnotated:
		return UnAnnotate[A, B](d.x)
	default:
		panic("pretty: invalid document kind")
	}
}

// textWidth is the width a run of text contributes to a line.
//
// Widths are rune counts: combining characters, wide runes, and grapheme
// clusters all count per rune.
func textWidth(s string) int {
	return utf8.RuneCountInString(s)
}
