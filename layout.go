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
	"github.com/bufbuild/pretty/internal/ext/slicesx"
)

// LayoutOptions configures the layout functions that take a page width.
type LayoutOptions struct {
	PageWidth PageWidth
}

// DefaultLayoutOptions is 80 columns with the full line usable as ribbon.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{PageWidth: AvailablePerLine(80, 1.0)}
}

// FittingPredicate decides whether the first alternative of a [Union]
// should be committed to.
//
// lineIndent and currentColumn describe where on the page the alternative
// would start. altIndent yields the indentation of the second alternative's
// first line break, if it has one; it is deferred because computing it
// materializes the head of the discarded layout, which only [LayoutSmart]
// needs. s is the prospective layout, of which the predicate must examine
// only a bounded prefix.
type FittingPredicate[A any] func(lineIndent, currentColumn int, altIndent func() (indent int, ok bool), s *Stream[A]) bool

// pipeline is the layout work list: the documents still to be laid out,
// each with the nesting level it was captured at, plus markers for closing
// annotated regions. It replaces native recursion through Cat, Nest, and
// Annotated spines, which can be as deep as the document is long.
type pipeline[A any] struct {
	undoAnn bool // If set, emit a StreamAnnPop; indent and doc are unused.
	indent  int
	doc     *Doc[A]
	rest    *pipeline[A]
}

// LayoutWadlerLeijen is the Wadler/Leijen best-fit layout, parameterized by
// the predicate that arbitrates unions.
//
// Most callers want [LayoutPretty] or [LayoutSmart], which supply the
// predicate; this entry point is for custom fitting policies.
func LayoutWadlerLeijen[A any](fits FittingPredicate[A], width PageWidth, d *Doc[A]) *Stream[A] {
	e := &engine[A]{fits: fits, width: width}
	return e.best(0, 0, &pipeline[A]{doc: d})
}

type engine[A any] struct {
	fits  FittingPredicate[A]
	width PageWidth
}

// best lays out the work list, trying the first branch of every union and
// keeping it if the fitting predicate approves.
//
// nesting is the indentation of the line being laid out and column the
// position reached on it. Non-emitting nodes loop in place; emitting nodes
// return with the continuation behind a thunk, so the stream only grows as
// it is consumed and the recursion is never deeper than one frame per
// forced event.
func (e *engine[A]) best(nesting, column int, p *pipeline[A]) *Stream[A] {
	for {
		if p == nil {
			return &Stream[A]{kind: StreamEmpty}
		}
		if p.undoAnn {
			rest := p.rest
			nl, cc := nesting, column
			return &Stream[A]{kind: StreamAnnPop, thunk: func() *Stream[A] {
				return e.best(nl, cc, rest)
			}}
		}

		indent, d, rest := p.indent, p.doc, p.rest
		switch d.Kind() {
		case KindFail:
			return &Stream[A]{kind: StreamFail}

		case KindEmpty:
			p = rest

		case KindChar:
			nl, cc := nesting, column+1
			return &Stream[A]{kind: StreamChar, ch: d.ch, thunk: func() *Stream[A] {
				return e.best(nl, cc, rest)
			}}

		case KindText:
			nl, cc := nesting, column+textWidth(d.text)
			return &Stream[A]{kind: StreamText, text: d.text, thunk: func() *Stream[A] {
				return e.best(nl, cc, rest)
			}}

		case KindLine:
			// The stored indentation is what [Stream.Indent] collapses
			// against the successor; the next line starts at the captured
			// nesting level either way.
			i := indent
			return &Stream[A]{kind: StreamLine, indent: i, thunk: func() *Stream[A] {
				return e.best(i, i, rest)
			}}

		case KindFlatAlt:
			// Flattening is Group's job; layout always takes the first
			// branch.
			p = &pipeline[A]{indent: indent, doc: d.x, rest: rest}

		case KindCat:
			p = &pipeline[A]{indent: indent, doc: d.x, rest: &pipeline[A]{indent: indent, doc: d.y, rest: rest}}

		case KindNest:
			p = &pipeline[A]{indent: indent + d.indent, doc: d.x, rest: rest}

		case KindUnion:
			x := e.best(nesting, column, &pipeline[A]{indent: indent, doc: d.x, rest: rest})

			// The second branch is materialized at most once, and only if
			// the predicate asks for its indentation or the first branch
			// does not fit.
			var y *Stream[A]
			alt := func() *Stream[A] {
				if y == nil {
					y = e.best(nesting, column, &pipeline[A]{indent: indent, doc: d.y, rest: rest})
				}
				return y
			}
			if e.fits(nesting, column, func() (int, bool) { return initialIndentation(alt()) }, x) {
				return x
			}
			return alt()

		case KindColumn:
			p = &pipeline[A]{indent: indent, doc: d.reactInt(column), rest: rest}

		case KindNesting:
			p = &pipeline[A]{indent: indent, doc: d.reactInt(indent), rest: rest}

		case KindPageWidth:
			p = &pipeline[A]{indent: indent, doc: d.reactPW(e.width), rest: rest}

		case KindAnnotated:
			nl, cc := nesting, column
			inner := &pipeline[A]{indent: indent, doc: d.x, rest: &pipeline[A]{undoAnn: true, rest: rest}}
			return &Stream[A]{kind: StreamAnnPush, ann: d.ann, thunk: func() *Stream[A] {
				return e.best(nl, cc, inner)
			}}

		default:
			panic("pretty: invalid document kind")
		}
	}
}

// initialIndentation skips past the text of a layout's first line and
// returns the indentation of the line break ending it, if any.
func initialIndentation[A any](s *Stream[A]) (int, bool) {
	for {
		switch s.Kind() {
		case StreamLine:
			return s.Indent(), true
		case StreamChar, StreamText, StreamAnnPush, StreamAnnPop:
			s = s.Next()
		default:
			return 0, false
		}
	}
}

// LayoutPretty is the default layout: unions commit to their first branch
// if its first line fits into the width remaining on the current line.
//
// This looks no further than one line ahead, which is fast and almost
// always right; see [LayoutSmart] for the cases where it is not.
func LayoutPretty[A any](opts LayoutOptions, d *Doc[A]) *Stream[A] {
	w := opts.PageWidth
	if !w.IsBounded() {
		return LayoutUnbounded(d)
	}
	lineWidth, ribbon := w.lineWidth, w.ribbonFraction
	fits := func(nesting, column int, _ func() (int, bool), s *Stream[A]) bool {
		return fitsOnOneLine(s, RemainingWidth(lineWidth, ribbon, nesting, column))
	}
	return LayoutWadlerLeijen(fits, w, d)
}

func fitsOnOneLine[A any](s *Stream[A], width int) bool {
	for {
		if width < 0 {
			return false
		}
		switch s.Kind() {
		case StreamFail:
			return false
		case StreamEmpty, StreamLine:
			return true
		case StreamChar:
			width--
			s = s.Next()
		case StreamText:
			width -= textWidth(s.text)
			s = s.Next()
		default:
			s = s.Next()
		}
	}
}

// LayoutSmart fits with lookahead past the first line: it keeps checking
// every line that is indented deeper than where the union began, treating
// them as part of the same syntactic unit.
//
// This reins in layouts that [LayoutPretty] lets creep off the right
// margin, at the cost of inspecting more of each prospective layout. Prefer
// it for deeply nested documents; measure before defaulting to it.
func LayoutSmart[A any](opts LayoutOptions, d *Doc[A]) *Stream[A] {
	w := opts.PageWidth
	if !w.IsBounded() {
		return LayoutUnbounded(d)
	}
	lineWidth, ribbon := w.lineWidth, w.ribbonFraction
	fits := func(nesting, column int, altIndent func() (int, bool), s *Stream[A]) bool {
		minNesting := column
		if i, ok := altIndent(); ok {
			minNesting = min(i, column)
		}
		return fitsToMinNesting(s, RemainingWidth(lineWidth, ribbon, nesting, column), minNesting, lineWidth)
	}
	return LayoutWadlerLeijen(fits, w, d)
}

// fitsToMinNesting checks line by line until a line opens at or left of
// minNesting. A line opening at indentation i leaves lineWidth-i columns.
func fitsToMinNesting[A any](s *Stream[A], width, minNesting, lineWidth int) bool {
	for {
		if width < 0 {
			return false
		}
		switch s.Kind() {
		case StreamFail:
			return false
		case StreamEmpty:
			return true
		case StreamChar:
			width--
			s = s.Next()
		case StreamText:
			width -= textWidth(s.text)
			s = s.Next()
		case StreamLine:
			i := s.Indent()
			if minNesting >= i {
				return true
			}
			width = lineWidth - i
			s = s.Next()
		default:
			s = s.Next()
		}
	}
}

// LayoutUnbounded lays out without a width limit: unions commit to their
// first branch unless its first line fails outright.
func LayoutUnbounded[A any](d *Doc[A]) *Stream[A] {
	fits := func(_, _ int, _ func() (int, bool), s *Stream[A]) bool {
		return !failsOnFirstLine(s)
	}
	return LayoutWadlerLeijen(fits, Unbounded(), d)
}

func failsOnFirstLine[A any](s *Stream[A]) bool {
	for {
		switch s.Kind() {
		case StreamFail:
			return true
		case StreamEmpty, StreamLine:
			return false
		default:
			s = s.Next()
		}
	}
}

// LayoutCompact lays out for machines rather than margins: no indentation,
// no annotations, every union taking its narrow branch. Useful for
// debugging output and for destinations where width does not matter.
func LayoutCompact[A any](d *Doc[A]) *Stream[A] {
	return compactScan(0, []*Doc[A]{d})
}

// compactScan traverses with a plain stack: compact layout never looks
// ahead, so the pipeline's bookkeeping is unnecessary.
func compactScan[A any](column int, docs []*Doc[A]) *Stream[A] {
	for {
		d, ok := slicesx.Pop(&docs)
		if !ok {
			return &Stream[A]{kind: StreamEmpty}
		}
		switch d.Kind() {
		case KindFail:
			return &Stream[A]{kind: StreamFail}

		case KindEmpty:

		case KindChar:
			tail := docs
			cc := column + 1
			return &Stream[A]{kind: StreamChar, ch: d.ch, thunk: func() *Stream[A] {
				return compactScan(cc, tail)
			}}

		case KindText:
			tail := docs
			cc := column + textWidth(d.text)
			return &Stream[A]{kind: StreamText, text: d.text, thunk: func() *Stream[A] {
				return compactScan(cc, tail)
			}}

		case KindLine:
			tail := docs
			return &Stream[A]{kind: StreamLine, thunk: func() *Stream[A] {
				return compactScan(0, tail)
			}}

		case KindFlatAlt:
			docs = append(docs, d.x)

		case KindCat:
			docs = append(docs, d.y, d.x)

		case KindNest:
			docs = append(docs, d.x)

		case KindUnion:
			docs = append(docs, d.y)

		case KindColumn:
			docs = append(docs, d.reactInt(column))

		case KindNesting:
			docs = append(docs, d.reactInt(0))

		case KindPageWidth:
			docs = append(docs, d.reactPW(Unbounded()))

		case KindAnnotated:
			docs = append(docs, d.x)

		default:
			panic("pretty: invalid document kind")
		}
	}
}
