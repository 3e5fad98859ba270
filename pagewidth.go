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

import "math"

// PageWidth is the horizontal budget a layout must fit into.
//
// The zero value is unbounded. Construct bounded widths with
// [AvailablePerLine].
type PageWidth struct {
	bounded        bool
	lineWidth      int
	ribbonFraction float64
}

// AvailablePerLine is a page width of lineWidth columns per line, of which
// only the ribbon, the fraction ribbonFraction measured after the line's
// indentation, may be filled.
//
// ribbonFraction is clamped to [0, 1]; a fraction of 1 allows the full line.
func AvailablePerLine(lineWidth int, ribbonFraction float64) PageWidth {
	return PageWidth{
		bounded:        true,
		lineWidth:      lineWidth,
		ribbonFraction: min(1, max(0, ribbonFraction)),
	}
}

// Unbounded is a page width with no limit: layouts never wrap to fit.
func Unbounded() PageWidth {
	return PageWidth{}
}

// IsBounded reports whether this page width imposes a limit.
func (w PageWidth) IsBounded() bool {
	return w.bounded
}

// LineWidth returns the column limit of a bounded page width.
func (w PageWidth) LineWidth() int {
	if !w.bounded {
		panic("pretty: called LineWidth() on an unbounded page width")
	}
	return w.lineWidth
}

// RibbonFraction returns the ribbon fraction of a bounded page width.
func (w PageWidth) RibbonFraction() float64 {
	if !w.bounded {
		panic("pretty: called RibbonFraction() on an unbounded page width")
	}
	return w.ribbonFraction
}

// RemainingWidth computes how many columns are left on the current line,
// given the line's indentation and the column already reached.
//
// The result is the lesser of the columns left before the line limit and
// the columns left in the ribbon. It is negative once the line overflows.
func RemainingWidth(lineWidth int, ribbonFraction float64, lineIndent, currentColumn int) int {
	columnsLeftInLine := lineWidth - currentColumn

	ribbonWidth := int(math.Floor(float64(lineWidth) * ribbonFraction))
	ribbonWidth = min(lineWidth, max(0, ribbonWidth))
	columnsLeftInRibbon := lineIndent + ribbonWidth - currentColumn

	return min(columnsLeftInLine, columnsLeftInRibbon)
}
