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

package pretty_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/pretty"
	"github.com/bufbuild/pretty/internal/golden"
)

// TestRenderCorpus renders each document in testdata with every layout
// function at each requested width and diffs against the checked-in
// expectations. Refresh with PRETTY_REFRESH='**'.
func TestRenderCorpus(t *testing.T) {
	t.Parallel()

	corpus := golden.Corpus{
		Root:       "testdata",
		Refresh:    "PRETTY_REFRESH",
		Extensions: []string{"yaml"},
		Outputs: []golden.Output{
			{Extension: "pretty"},
			{Extension: "smart"},
			{Extension: "compact"},
		},
	}

	corpus.Run(t, func(t *testing.T, _, text string, outputs []string) {
		var file struct {
			Widths []int     `yaml:"widths"`
			Doc    yaml.Node `yaml:"doc"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(text), &file))
		require.NotEmpty(t, file.Widths)
		doc := parseDoc(t, &file.Doc)

		var prettyOut, smartOut strings.Builder
		for _, w := range file.Widths {
			opts := pretty.LayoutOptions{PageWidth: pretty.AvailablePerLine(w, 1.0)}
			fmt.Fprintf(&prettyOut, "=== width %d\n%s\n", w, pretty.LayoutPretty(opts, doc).Render())
			fmt.Fprintf(&smartOut, "=== width %d\n%s\n", w, pretty.LayoutSmart(opts, doc).Render())
		}
		outputs[0] = prettyOut.String()
		outputs[1] = smartOut.String()
		outputs[2] = pretty.LayoutCompact(doc).Render() + "\n"
	})
}

// parseDoc interprets a YAML node as a document: a scalar is text (or one
// of the break keywords), and a single-key mapping applies the named
// combinator.
func parseDoc(t *testing.T, n *yaml.Node) *pretty.Doc[any] {
	t.Helper()

	if n.Kind == yaml.AliasNode {
		return parseDoc(t, n.Alias)
	}

	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Value {
		case "line":
			return pretty.Line[any]()
		case "linebreak":
			return pretty.LineBreak[any]()
		case "softline":
			return pretty.SoftLine[any]()
		case "softlinebreak":
			return pretty.SoftLineBreak[any]()
		case "hardline":
			return pretty.HardLine[any]()
		case "space":
			return pretty.Space[any]()
		default:
			return pretty.String[any](n.Value)
		}

	case yaml.MappingNode:
		require.Len(t, n.Content, 2, "line %d: document mappings have a single key", n.Line)
		key, value := n.Content[0].Value, n.Content[1]
		switch key {
		case "text":
			return pretty.String[any](value.Value)
		case "group":
			return pretty.Group(parseDoc(t, value))
		case "align":
			return pretty.Align(parseDoc(t, value))
		case "hcat":
			return pretty.HCat(parseDocs(t, value)...)
		case "vcat":
			return pretty.VCat(parseDocs(t, value)...)
		case "fillcat":
			return pretty.FillCat(parseDocs(t, value)...)
		case "cat":
			return pretty.Cat(parseDocs(t, value)...)
		case "hsep":
			return pretty.HSep(parseDocs(t, value)...)
		case "vsep":
			return pretty.VSep(parseDocs(t, value)...)
		case "fillsep":
			return pretty.FillSep(parseDocs(t, value)...)
		case "sep":
			return pretty.Sep(parseDocs(t, value)...)
		case "list":
			return pretty.List(parseDocs(t, value)...)
		case "tupled":
			return pretty.Tupled(parseDocs(t, value)...)
		case "nest":
			by, doc := parseIndented(t, value)
			return pretty.Nest(by, doc)
		case "hang":
			by, doc := parseIndented(t, value)
			return pretty.Hang(by, doc)
		case "indent":
			by, doc := parseIndented(t, value)
			return pretty.Indent(by, doc)
		default:
			t.Fatalf("line %d: unknown combinator %q", n.Line, key)
			return nil
		}

	default:
		t.Fatalf("line %d: cannot interpret node as a document", n.Line)
		return nil
	}
}

func parseDocs(t *testing.T, n *yaml.Node) []*pretty.Doc[any] {
	t.Helper()

	require.Equal(t, yaml.SequenceNode, n.Kind, "line %d: want a sequence", n.Line)
	out := make([]*pretty.Doc[any], len(n.Content))
	for i, c := range n.Content {
		out[i] = parseDoc(t, c)
	}
	return out
}

func parseIndented(t *testing.T, n *yaml.Node) (int, *pretty.Doc[any]) {
	t.Helper()

	require.Equal(t, yaml.MappingNode, n.Kind, "line %d: want by/doc keys", n.Line)
	var by int
	var doc *pretty.Doc[any]
	for i := 0; i+1 < len(n.Content); i += 2 {
		switch n.Content[i].Value {
		case "by":
			require.NoError(t, n.Content[i+1].Decode(&by))
		case "doc":
			doc = parseDoc(t, n.Content[i+1])
		default:
			t.Fatalf("line %d: unknown key %q", n.Content[i].Line, n.Content[i].Value)
		}
	}
	require.NotNil(t, doc)
	return by, doc
}

// TestConcurrentReads exercises the thread-safety contract: one document,
// and even one stream, may be consumed from many goroutines at once.
func TestConcurrentReads(t *testing.T) {
	t.Parallel()

	items := make([]*pretty.Doc[any], 20)
	for i := range items {
		items[i] = pretty.Text[any](strings.Repeat("x", i%7+1))
	}
	doc := pretty.Annotate[any]("list",
		pretty.Hang(2, pretty.List(items...)),
	)
	opts := pretty.LayoutOptions{PageWidth: pretty.AvailablePerLine(30, 1.0)}
	want := pretty.LayoutPretty(opts, doc).Render()

	var eg errgroup.Group
	for range 8 {
		eg.Go(func() error {
			if got := pretty.LayoutPretty(opts, doc).Render(); got != want {
				return fmt.Errorf("concurrent layout diverged:\n%s", got)
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	shared := pretty.LayoutPretty(opts, doc)
	for range 8 {
		eg.Go(func() error {
			if got := shared.Render(); got != want {
				return fmt.Errorf("concurrent render diverged:\n%s", got)
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
}
