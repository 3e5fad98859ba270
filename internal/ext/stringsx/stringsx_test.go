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

package stringsx_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/pretty/internal/ext/stringsx"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "c"}, slices.Collect(stringsx.Split("a,b,c", ',')))
	assert.Equal(t, []string{""}, slices.Collect(stringsx.Split("", ',')))
	assert.Equal(t, []string{"", ""}, slices.Collect(stringsx.Split(",", ',')))
}

func TestLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"ab", "", "cd"}, slices.Collect(stringsx.Lines("ab\n\ncd")))
	assert.Equal(t, []string{"ab", ""}, slices.Collect(stringsx.Lines("ab\n")))
}
