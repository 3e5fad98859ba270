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

// Package pretty is a Wadler/Leijen-style pretty printer, in the lineage of
// Haskell's prettyprinter library.
//
// A [Doc] does not describe one layout of a piece of text; it describes a
// set of them. Combinators like [Group], [Sep], and [SoftLine] introduce
// alternatives that render on one line when there is room and break across
// lines when there is not, and a layout function ([LayoutPretty],
// [LayoutSmart], [LayoutCompact], [LayoutUnbounded]) picks one member of
// the set. [LayoutPretty] and [LayoutSmart] choose by a page width;
// [LayoutUnbounded] and [LayoutCompact] do not limit line width. The result
// is a [Stream] of output events; [Stream.Render] folds it into a string,
// and back ends with their
// own notion of markup can walk it directly to interpret annotations.
//
// The usual pipeline, via the [Format] shorthand:
//
//	doc := pretty.Sep(
//		pretty.Text[any]("lorem"),
//		pretty.Text[any]("ipsum"),
//	)
//	out := pretty.Format(doc)
//
// Widths are rune counts. Tabs, wide runes, and grapheme clusters all count
// one column per rune; measure text yourself via [Column] tricks if that is
// not enough.
package pretty

// Format renders d with [LayoutPretty] under [DefaultLayoutOptions].
func Format[A any](d *Doc[A]) string {
	return FormatWithOptions(DefaultLayoutOptions(), d)
}

// FormatWithOptions renders d with [LayoutPretty] under the given options.
func FormatWithOptions[A any](opts LayoutOptions, d *Doc[A]) string {
	return LayoutPretty(opts, d).Render()
}
