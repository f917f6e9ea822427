// This file is part of Mode1PCM.
//
// Mode1PCM is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Mode1PCM is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Mode1PCM.  If not, see <https://www.gnu.org/licenses/>.

// Package test contains helper functions to remove common boilerplate from
// test files.
//
// The Expect*() functions report a failure with t.Errorf() and allow the test
// to continue. The Demand*() functions report with t.Fatalf() and should be
// used when the rest of the test depends on the value being correct, for
// example checking the length of a slice before indexing it.
//
// Success and failure are judged by the type of the value. A bool is
// successful when true. An error is successful when it is nil. An untyped nil
// is considered a success because that is how a nil error arrives when it is
// passed through an interface{} argument.
//
// The CompareWriter type implements io.Writer and is used to capture output
// for comparison with an expected string.
package test
