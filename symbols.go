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

// Ready-made documents for the punctuation every caller ends up needing.

func Space[A any]() *Doc[A]     { return Char[A](' ') }
func Comma[A any]() *Doc[A]     { return Char[A](',') }
func Colon[A any]() *Doc[A]     { return Char[A](':') }
func Semi[A any]() *Doc[A]      { return Char[A](';') }
func Dot[A any]() *Doc[A]       { return Char[A]('.') }
func Equals[A any]() *Doc[A]    { return Char[A]('=') }
func Slash[A any]() *Doc[A]     { return Char[A]('/') }
func Backslash[A any]() *Doc[A] { return Char[A]('\\') }
func Pipe[A any]() *Doc[A]      { return Char[A]('|') }
func LParen[A any]() *Doc[A]    { return Char[A]('(') }
func RParen[A any]() *Doc[A]    { return Char[A](')') }
func LBracket[A any]() *Doc[A]  { return Char[A]('[') }
func RBracket[A any]() *Doc[A]  { return Char[A](']') }
func LBrace[A any]() *Doc[A]    { return Char[A]('{') }
func RBrace[A any]() *Doc[A]    { return Char[A]('}') }
func LAngle[A any]() *Doc[A]    { return Char[A]('<') }
func RAngle[A any]() *Doc[A]    { return Char[A]('>') }
func SQuote[A any]() *Doc[A]    { return Char[A]('\'') }
func DQuote[A any]() *Doc[A]    { return Char[A]('"') }

// Parenthesized wraps d in parentheses.
func Parenthesized[A any](d *Doc[A]) *Doc[A] {
	return Enclose(LParen[A](), RParen[A](), d)
}

// Bracketed wraps d in square brackets.
func Bracketed[A any](d *Doc[A]) *Doc[A] {
	return Enclose(LBracket[A](), RBracket[A](), d)
}

// Braced wraps d in curly braces.
func Braced[A any](d *Doc[A]) *Doc[A] {
	return Enclose(LBrace[A](), RBrace[A](), d)
}

// Angled wraps d in angle brackets.
func Angled[A any](d *Doc[A]) *Doc[A] {
	return Enclose(LAngle[A](), RAngle[A](), d)
}

// SingleQuoted wraps d in single quotes.
func SingleQuoted[A any](d *Doc[A]) *Doc[A] {
	return Enclose(SQuote[A](), SQuote[A](), d)
}

// DoubleQuoted wraps d in double quotes.
func DoubleQuoted[A any](d *Doc[A]) *Doc[A] {
	return Enclose(DQuote[A](), DQuote[A](), d)
}
