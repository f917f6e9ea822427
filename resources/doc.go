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

// Package resources contains functions to prepare paths for Mode1PCM
// resources.
//
// The JoinPath() function returns the correct path to the resource directory
// or file. A "portable" installation keeps resources in a directory named
// ".mode1pcm" in the current working directory. Otherwise resources are
// kept in the user's configuration directory, as returned by
// os.UserConfigDir().
package resources
