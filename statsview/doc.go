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

// Package statsview offers runtime statistics of the Mode1PCM process over
// HTTP. The server is only built when the statsview build tag is present.
// Without the tag the Launch() function does nothing and Available() returns
// false.
//
// Underlying functionality is provided by "github.com/go-echarts/statsview".
// After launch, graphical statistics will be viewable at:
//
//	localhost:12652/debug/statsview
//
// And standard Go pprof statistics available at:
//
//	localhost:12652/debug/pprof/
//
// The statistics are useful when the simulated peer is served over a bridge
// to a remote client, where the host process runs for a long time.
package statsview

// Address of the statistics server.
const Address = "localhost:12652"
