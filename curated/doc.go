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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with the
// Errorf() function, which takes a formatting pattern and placeholder values
// in the same way as fmt.Errorf().
//
// The pattern is what identifies a curated error. Packages that want callers
// to be able to recognise a particular error should store the pattern as an
// exported const string. For example, the link package does this:
//
//	const NotReady = "link: not ready"
//
//	return curated.Errorf(NotReady)
//
// And the caller can check for it with Is():
//
//	if curated.Is(err, link.NotReady) {
//		...
//	}
//
// Has() is similar but searches the entire chain, so that a pattern wrapped
// by another curated error will still be found:
//
//	e := curated.Errorf(link.BringUpTimeout, 2000000)
//	f := curated.Errorf("console: %v", e)
//
//	curated.Has(f, link.BringUpTimeout) // true
//	curated.Is(f, link.BringUpTimeout)  // false
//
// IsAny() answers whether an error was created by Errorf() at all. Errors that
// are not curated can be thought of as unexpected.
//
// The Error() implementation normalises the message chain by removing
// duplicate adjacent parts. Parts are separated by the sub-string ": ". This
// means a function can wrap an error with its package prefix without worrying
// whether the error it received already carries the same prefix:
//
//	link: link: not ready
//
// is printed as:
//
//	link: not ready
package curated
