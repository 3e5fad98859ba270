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
	"iter"
	"strings"
	"sync"
)

const (
	streamNone StreamKind = iota //nolint:unused

	StreamFail    // A layout every alternative of which failed. Unrenderable.
	StreamEmpty   // End of output.
	StreamChar    // A single rune.
	StreamText    // A run of text.
	StreamLine    // A newline followed by indentation.
	StreamAnnPush // Start of an annotated region.
	StreamAnnPop  // End of the innermost annotated region.
)

// StreamKind is a kind of [Stream] node.
type StreamKind byte

// Stream is one concrete layout of a document: a chain of output events
// produced by the layout functions and consumed by [Stream.Render].
//
// The chain is produced on demand. A node's successor may not exist until
// [Stream.Next] is called, and the layout functions lean on this: when they
// pick between alternative layouts they examine no more of either
// alternative than the fitting check needs, and the loser's tail is never
// built. Forcing is memoized and safe to race.
//
// StreamAnnPush and StreamAnnPop events are balanced along every chain.
type Stream[A any] struct {
	kind StreamKind

	ch     rune
	text   string
	indent int
	ann    A

	once  sync.Once
	next  *Stream[A]
	thunk func() *Stream[A]
}

// Kind returns which kind of event this is. The nil stream is StreamEmpty.
func (s *Stream[A]) Kind() StreamKind {
	if s == nil {
		return StreamEmpty
	}
	return s.kind
}

// Next forces and returns the successor of this event.
//
// Returns nil for StreamFail and StreamEmpty, which end the chain.
func (s *Stream[A]) Next() *Stream[A] {
	s.once.Do(s.force)
	return s.next
}

func (s *Stream[A]) force() {
	if s.thunk != nil {
		s.next = s.thunk()
		s.thunk = nil
	}
}

// Rune returns the rune of a StreamChar event.
func (s *Stream[A]) Rune() rune {
	s.expect(StreamChar)
	return s.ch
}

// Text returns the text of a StreamText event.
func (s *Stream[A]) Text() string {
	s.expect(StreamText)
	return s.text
}

// Indent returns the indentation that follows a StreamLine event's newline.
//
// A line break with nothing after it, or with another line break
// immediately after it, reports an indentation of zero, so that blank and
// final lines carry no trailing spaces.
func (s *Stream[A]) Indent() int {
	s.expect(StreamLine)
	switch s.Next().Kind() {
	case StreamEmpty, StreamLine:
		return 0
	}
	return s.indent
}

// Annotation returns the annotation of a StreamAnnPush event.
func (s *Stream[A]) Annotation() A {
	s.expect(StreamAnnPush)
	return s.ann
}

func (s *Stream[A]) expect(kind StreamKind) {
	if s.Kind() != kind {
		panic("pretty: called " + kind.String() + " accessor on a " + s.Kind().String() + " stream event")
	}
}

// String implements [fmt.Stringer].
func (k StreamKind) String() string {
	if int(k) < len(streamKindNames) && streamKindNames[k] != "" {
		return streamKindNames[k]
	}
	return "Invalid"
}

var streamKindNames = [...]string{
	StreamFail:    "SFail",
	StreamEmpty:   "SEmpty",
	StreamChar:    "SChar",
	StreamText:    "SText",
	StreamLine:    "SLine",
	StreamAnnPush: "SAnnPush",
	StreamAnnPop:  "SAnnPop",
}

// All iterates over the events of the chain in order, forcing them as it
// goes.
func (s *Stream[A]) All() iter.Seq[*Stream[A]] {
	return func(yield func(*Stream[A]) bool) {
		for n := s; n != nil; n = n.Next() {
			if !yield(n) {
				return
			}
		}
	}
}

// Render folds a stream into its text.
//
// Panics on a StreamFail event: a failed layout reaching the renderer means
// the document had no successful alternative, such as a flattened hard line
// break with no escape through [FlatAlt].
func (s *Stream[A]) Render() string {
	var out strings.Builder
	for n := range s.All() {
		switch n.kind {
		case StreamFail:
			panic("pretty: refusing to render a failed layout")
		case StreamEmpty, StreamAnnPush, StreamAnnPop:
		case StreamChar:
			out.WriteRune(n.ch)
		case StreamText:
			out.WriteString(n.text)
		case StreamLine:
			out.WriteByte('\n')
			for range n.Indent() {
				out.WriteByte(' ')
			}
		default:
			panic("pretty: invalid stream event kind")
		}
	}
	return out.String()
}

// ReAnnotateStream rewrites every annotation in the stream with f.
//
// The result is as lazy as its input: events are rewritten as they are
// forced.
func ReAnnotateStream[A, B any](s *Stream[A], f func(A) B) *Stream[B] {
	if s == nil {
		return nil
	}
	out := &Stream[B]{kind: s.kind, ch: s.ch, text: s.text, indent: s.indent}
	if s.kind == StreamAnnPush {
		out.ann = f(s.ann)
	}
	if s.kind != StreamFail && s.kind != StreamEmpty {
		out.thunk = func() *Stream[B] {
			return ReAnnotateStream(s.Next(), f)
		}
	}
	return out
}

// UnAnnotateStream drops every StreamAnnPush and StreamAnnPop event from
// the stream.
//
// The result is as lazy as its input.
func UnAnnotateStream[A, B any](s *Stream[A]) *Stream[B] {
	for s != nil && (s.kind == StreamAnnPush || s.kind == StreamAnnPop) {
		s = s.Next()
	}
	if s == nil {
		return nil
	}
	out := &Stream[B]{kind: s.kind, ch: s.ch, text: s.text, indent: s.indent}
	if s.kind != StreamFail && s.kind != StreamEmpty {
		out.thunk = func() *Stream[B] {
			return UnAnnotateStream[A, B](s.Next())
		}
	}
	return out
}
