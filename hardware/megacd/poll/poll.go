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

// Package poll implements the busy-wait used by the host when waiting on the
// peer. A wait is either bounded, in which case it gives up after a fixed
// number of attempts, or unbounded, in which case it never gives up.
//
// There is no cancellation. An unbounded wait on a peer that never responds
// will block forever, exactly as the host processor would.
package poll

// Result of a call to Until().
type Result int

// List of valid Result values.
const (
	Ready Result = iota
	Timeout
)

func (r Result) String() string {
	switch r {
	case Ready:
		return "ready"
	case Timeout:
		return "timeout"
	}
	return "unknown poll result"
}

// Limit is the maximum number of times the condition in a call to Until() is
// evaluated. Create with Bounded() or use the Unbounded value.
type Limit struct {
	n int
}

// Unbounded waits never time out.
var Unbounded = Limit{}

// Bounded returns a Limit that evaluates the condition at most n times. A
// value of n less than one is treated as one.
func Bounded(n int) Limit {
	if n < 1 {
		n = 1
	}
	return Limit{n: n}
}

// IsBounded returns true if the Limit will eventually time out.
func (l Limit) IsBounded() bool {
	return l.n > 0
}

// Attempts returns the maximum number of evaluations. Zero if unbounded.
func (l Limit) Attempts() int {
	return l.n
}

// Until evaluates cond until it returns true or the limit is reached. The
// delay is spent between evaluations of cond, never before the first.
//
// Returns the result and the number of times cond was evaluated.
func Until(cond func() bool, limit Limit, delay int) (Result, int) {
	var i int
	for {
		i++
		if cond() {
			return Ready, i
		}
		if limit.n > 0 && i >= limit.n {
			return Timeout, i
		}
		Spin(delay)
	}
}

// Spin is a short busy delay of n iterations. Returns the number of iterations
// spent. Safe to call from more than one goroutine.
func Spin(n int) uint32 {
	var spin uint32
	for ; n > 0; n-- {
		spin++
	}
	return spin
}
