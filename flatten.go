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

const (
	// Flattening changed the document; the changed form is carried in the
	// result.
	FlattenChanged FlattenKind = iota + 1
	// The document is already flat: flattening it would be the identity.
	FlattenAlreadyFlat
	// The document contains a hard line break with no flat alternative;
	// no flat form exists.
	FlattenNeverFlat
)

// FlattenKind classifies a [FlattenResult].
type FlattenKind byte

// FlattenResult is the outcome of [ChangesUponFlattening]: whether
// flattening a document would change it, and if so, into what.
type FlattenResult[T any] struct {
	kind  FlattenKind
	value T
}

// Flattened returns a result carrying the changed form of a document.
func Flattened[T any](value T) FlattenResult[T] {
	return FlattenResult[T]{kind: FlattenChanged, value: value}
}

// AlreadyFlat returns the result for documents flattening cannot change.
func AlreadyFlat[T any]() FlattenResult[T] {
	return FlattenResult[T]{kind: FlattenAlreadyFlat}
}

// NeverFlat returns the result for documents with no flat form.
func NeverFlat[T any]() FlattenResult[T] {
	return FlattenResult[T]{kind: FlattenNeverFlat}
}

// Kind returns which of the three outcomes this is.
func (r FlattenResult[T]) Kind() FlattenKind {
	return r.kind
}

// Value returns the changed document of a FlattenChanged result.
func (r FlattenResult[T]) Value() T {
	if r.kind != FlattenChanged {
		panic("pretty: called Value() on a flatten result with no value")
	}
	return r.value
}

// mapValue applies f to the carried value, leaving the other outcomes
// untouched.
func (r FlattenResult[T]) mapValue(f func(T) T) FlattenResult[T] {
	if r.kind == FlattenChanged {
		r.value = f(r.value)
	}
	return r
}

// Flatten commits a document to its single-line form: hard line breaks
// become [Fail], flat alternatives take their flat branch, and unions
// collapse to their first (already flat) branch.
//
// Most callers want [Group], which inserts a flattened layout only as an
// alternative and only when it differs.
func Flatten[A any](d *Doc[A]) *Doc[A] {
	switch d.Kind() {
	case KindFail, KindEmpty, KindChar, KindText:
		return d
	case KindLine:
		return Fail[A]()
	case KindFlatAlt:
		return Flatten(d.y)
	case KindCat:
		return Concat(Flatten(d.x), Flatten(d.y))
	case KindNest:
		return Nest(d.indent, Flatten(d.x))
	case KindUnion:
		return Flatten(d.x)
	case KindColumn, KindNesting:
		react := d.reactInt
		return &Doc[A]{kind: d.kind, reactInt: func(n int) *Doc[A] {
			return Flatten(react(n))
		}}
	case KindPageWidth:
		react := d.reactPW
		return &Doc[A]{kind: KindPageWidth, reactPW: func(w PageWidth) *Doc[A] {
			return Flatten(react(w))
		}}
	case KindAnnotated:
		return Annotate(d.ann, Flatten(d.x))
	default:
		panic("pretty: invalid document kind")
	}
}

// ChangesUponFlattening reports whether [Flatten] would change a document,
// without rewriting subtrees it would leave alone.
//
// [Group] consults this before building a [Union], so that documents that
// are already flat, or can never be, do not double in size every time they
// are grouped.
func ChangesUponFlattening[A any](d *Doc[A]) FlattenResult[*Doc[A]] {
	switch d.Kind() {
	case KindFail, KindEmpty, KindChar, KindText:
		return AlreadyFlat[*Doc[A]]()
	case KindLine:
		return NeverFlat[*Doc[A]]()
	case KindFlatAlt:
		return Flattened(Flatten(d.y))
	case KindCat:
		rx := ChangesUponFlattening(d.x)
		ry := ChangesUponFlattening(d.y)
		switch {
		case rx.kind == FlattenNeverFlat || ry.kind == FlattenNeverFlat:
			return NeverFlat[*Doc[A]]()
		case rx.kind == FlattenAlreadyFlat && ry.kind == FlattenAlreadyFlat:
			return AlreadyFlat[*Doc[A]]()
		default:
			x, y := d.x, d.y
			if rx.kind == FlattenChanged {
				x = rx.value
			}
			if ry.kind == FlattenChanged {
				y = ry.value
			}
			return Flattened(Concat(x, y))
		}
	case KindNest:
		indent := d.indent
		return ChangesUponFlattening(d.x).mapValue(func(x *Doc[A]) *Doc[A] {
			return Nest(indent, x)
		})
	case KindUnion:
		// The left branch is the flat one by the Union invariant.
		return Flattened(d.x)
	case KindColumn, KindNesting:
		react := d.reactInt
		return Flattened(&Doc[A]{kind: d.kind, reactInt: func(n int) *Doc[A] {
			return Flatten(react(n))
		}})
	case KindPageWidth:
		react := d.reactPW
		return Flattened(&Doc[A]{kind: KindPageWidth, reactPW: func(w PageWidth) *Doc[A] {
			return Flatten(react(w))
		}})
	case KindAnnotated:
		ann := d.ann
		return ChangesUponFlattening(d.x).mapValue(func(x *Doc[A]) *Doc[A] {
			return Annotate(ann, x)
		})
	default:
		panic("pretty: invalid document kind")
	}
}
