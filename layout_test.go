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
	"testing"

	"github.com/rivo/uniseg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func atWidth(w int) LayoutOptions {
	return LayoutOptions{PageWidth: AvailablePerLine(w, 1.0)}
}

func TestRemainingWidth(t *testing.T) {
	t.Parallel()

	for lineWidth := 0; lineWidth <= 40; lineWidth += 8 {
		for _, ribbon := range []float64{0, 0.25, 0.4, 0.5, 1} {
			ribbonWidth := int(float64(lineWidth) * ribbon)
			for indent := 0; indent <= 20; indent += 5 {
				for column := indent; column <= lineWidth+5; column += 3 {
					got := RemainingWidth(lineWidth, ribbon, indent, column)
					require.LessOrEqual(t, got, lineWidth-column)
					require.LessOrEqual(t, got, indent+ribbonWidth-column)
				}
			}
		}
	}
}

func TestHangNested(t *testing.T) {
	t.Parallel()

	doc := Hang(4, VSep(
		txt("lorem"),
		txt("ipsum"),
		Hang(4, VSep(txt("dolor"), txt("sit"))),
	))

	assert.Equal(t,
		"lorem\n    ipsum\n    dolor\n        sit",
		LayoutPretty(atWidth(80), doc).Render(),
	)
	assert.Equal(t,
		"lorem\nipsum\ndolor\nsit",
		LayoutCompact(doc).Render(),
	)
}

func TestSoftLineReflows(t *testing.T) {
	t.Parallel()

	doc := HCat(txt("lorem ipsum"), SoftLine[any](), txt("dolor sit amet"))

	assert.Equal(t,
		"lorem ipsum dolor sit amet",
		LayoutPretty(atWidth(80), doc).Render(),
	)
	assert.Equal(t,
		"lorem ipsum\ndolor sit amet",
		LayoutPretty(atWidth(10), doc).Render(),
	)
}

func TestListBreaksWithLeadingSeparators(t *testing.T) {
	t.Parallel()

	doc := List(txt("1"), txt("20"), txt("300"), txt("4000"))

	assert.Equal(t,
		"[1, 20, 300, 4000]",
		LayoutPretty(atWidth(80), doc).Render(),
	)
	assert.Equal(t,
		"[ 1\n, 20\n, 300\n, 4000 ]",
		LayoutPretty(atWidth(10), doc).Render(),
	)
}

func TestGroupFlattensWhenItFits(t *testing.T) {
	t.Parallel()

	plain := HCat(txt("a"), Line[any](), txt("b"))
	grouped := Group(plain)

	assert.Equal(t, "a\nb", LayoutPretty(atWidth(80), plain).Render())
	assert.Equal(t, "a b", LayoutPretty(atWidth(80), grouped).Render())
	assert.Equal(t, "a\nb", LayoutPretty(atWidth(2), grouped).Render())
}

// fun wraps a document the way a curried call chain would,
// hanging continuation lines two columns past the opening.
func fun(d *Doc[any]) *Doc[any] {
	return HCat(
		Hang(2, HCat(txt("fun("), SoftLineBreak[any](), d)),
		txt(")"),
	)
}

func TestSmartLayoutLooksPastFirstLine(t *testing.T) {
	t.Parallel()

	doc := fun(fun(fun(fun(fun(
		Align(List(Words[any]("abcdef ghijklm")...)),
	)))))

	pretty := LayoutPretty(atWidth(26), doc).Render()
	assert.Equal(t,
		"fun(fun(fun(fun(fun(\n"+
			"                  [ abcdef\n"+
			"                  , ghijklm ])))))",
		pretty,
	)

	// The one-line lookahead commits before seeing the overflow.
	widest := 0
	for line := range strings.Lines(pretty) {
		widest = max(widest, uniseg.StringWidth(strings.TrimSuffix(line, "\n")))
	}
	assert.Greater(t, widest, 26)

	smart := LayoutSmart(atWidth(26), doc).Render()
	assert.Equal(t,
		"fun(\n"+
			"  fun(\n"+
			"    fun(\n"+
			"      fun(\n"+
			"        fun(\n"+
			"          [ abcdef\n"+
			"          , ghijklm ])))))",
		smart,
	)
	for line := range strings.Lines(smart) {
		require.LessOrEqual(t, uniseg.StringWidth(strings.TrimSuffix(line, "\n")), 26)
	}
}

func TestRibbonNarrowerThanLine(t *testing.T) {
	t.Parallel()

	doc := Sep(txt("aaaaaa"), txt("bbbbbb"))

	// 13 columns flat: inside a 20-column line, but not its 10-column
	// ribbon.
	full := LayoutOptions{PageWidth: AvailablePerLine(20, 1.0)}
	half := LayoutOptions{PageWidth: AvailablePerLine(20, 0.5)}
	assert.Equal(t, "aaaaaa bbbbbb", LayoutPretty(full, doc).Render())
	assert.Equal(t, "aaaaaa\nbbbbbb", LayoutPretty(half, doc).Render())
}

func TestRibbonFractionClamped(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, AvailablePerLine(80, 12).RibbonFraction())
	assert.Equal(t, 0.0, AvailablePerLine(80, -3).RibbonFraction())
}

func TestLayoutUnbounded(t *testing.T) {
	t.Parallel()

	words := make([]*Doc[any], 40)
	for i := range words {
		words[i] = txt("word")
	}
	doc := Sep(words...)

	got := LayoutUnbounded(doc).Render()
	assert.NotContains(t, got, "\n")
	assert.Equal(t, 40*5-1, len(got))

	// An unbounded page width takes the same path.
	assert.Equal(t, got, LayoutPretty(LayoutOptions{PageWidth: Unbounded()}, doc).Render())
	assert.Equal(t, got, LayoutSmart(LayoutOptions{PageWidth: Unbounded()}, doc).Render())
}

func TestLayoutCompactStripsEverything(t *testing.T) {
	t.Parallel()

	doc := Annotate("x",
		Nest(4, VSep(
			Text[string]("lorem"),
			Annotate("y", Text[string]("ipsum")),
			Group(VSep(Text[string]("dolor"), Text[string]("sit"))),
		)),
	)

	s := LayoutCompact(doc)
	for n := range s.All() {
		switch n.Kind() {
		case StreamAnnPush, StreamAnnPop:
			t.Fatalf("compact layout emitted %v", n.Kind())
		case StreamLine:
			require.Zero(t, n.Indent())
		}
	}
	assert.Equal(t, "lorem\nipsum\ndolor\nsit", s.Render())
}

func TestLayoutCompactReactives(t *testing.T) {
	t.Parallel()

	doc := HCat(
		txt("ab"),
		Column(func(c int) *Doc[any] { return Spaces[any](c) }),
		Nesting(func(n int) *Doc[any] { return Spaces[any](n + 1) }),
		WithPageWidth(func(w PageWidth) *Doc[any] {
			if w.IsBounded() {
				return txt("bounded")
			}
			return txt("unbounded")
		}),
	)

	// Column sees 2, nesting is pinned to 0, and the page width is
	// reported unbounded.
	assert.Equal(t, "ab   unbounded", LayoutCompact(doc).Render())
}

func TestNestedGroupsStayLinear(t *testing.T) {
	t.Parallel()

	// Thirty levels of grouped parentheses: an eager engine evaluates
	// both branches of every union and never finishes this.
	doc := txt("x")
	for range 30 {
		doc = Group(VCat(Char[any]('('), doc, Char[any](')')))
	}

	flat := strings.Repeat("(", 30) + "x" + strings.Repeat(")", 30)
	assert.Equal(t, flat, LayoutPretty(atWidth(80), doc).Render())

	// At width 10 only the innermost four levels fit flat.
	broken := strings.Repeat("(\n", 26) + "((((x))))" + strings.Repeat("\n)", 26)
	assert.Equal(t, broken, LayoutPretty(atWidth(10), doc).Render())
}

func TestUnionFallsBackOnFailure(t *testing.T) {
	t.Parallel()

	// The flat branch fails outright, so even unbounded layout takes the
	// second branch.
	doc := Union(Concat(txt("nope"), Fail[any]()), txt("ok"))
	assert.Equal(t, "ok", LayoutUnbounded(doc).Render())
	assert.Equal(t, "ok", LayoutPretty(atWidth(80), doc).Render())
}

func TestLayoutWadlerLeijenCustomPredicate(t *testing.T) {
	t.Parallel()

	doc := Group(VSep(txt("aa"), txt("bb")))

	// A predicate that rejects everything forces every union to break.
	never := func(int, int, func() (int, bool), *Stream[any]) bool { return false }
	assert.Equal(t, "aa\nbb", LayoutWadlerLeijen(never, Unbounded(), doc).Render())

	always := func(int, int, func() (int, bool), *Stream[any]) bool { return true }
	assert.Equal(t, "aa bb", LayoutWadlerLeijen(always, Unbounded(), doc).Render())
}
