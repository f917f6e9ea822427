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

package poll_test

import (
	"sync"
	"testing"

	"github.com/jetsetilly/mode1pcm/hardware/megacd/poll"
	"github.com/jetsetilly/mode1pcm/test"
)

func TestBoundedTimeout(t *testing.T) {
	var calls int
	r, n := poll.Until(func() bool {
		calls++
		return false
	}, poll.Bounded(100), 5)

	test.ExpectEquality(t, r, poll.Timeout)
	test.ExpectEquality(t, n, 100)
	test.ExpectEquality(t, calls, 100)
}

func TestBoundedReady(t *testing.T) {
	var calls int
	r, n := poll.Until(func() bool {
		calls++
		return calls == 10
	}, poll.Bounded(100), 0)

	test.ExpectEquality(t, r, poll.Ready)
	test.ExpectEquality(t, n, 10)
}

func TestBoundedReadyOnLastAttempt(t *testing.T) {
	var calls int
	r, n := poll.Until(func() bool {
		calls++
		return calls == 5
	}, poll.Bounded(5), 0)

	test.ExpectEquality(t, r, poll.Ready)
	test.ExpectEquality(t, n, 5)
}

func TestUnbounded(t *testing.T) {
	var calls int
	r, n := poll.Until(func() bool {
		calls++
		return calls == 100000
	}, poll.Unbounded, 1)

	test.ExpectEquality(t, r, poll.Ready)
	test.ExpectEquality(t, n, 100000)
	test.ExpectFailure(t, poll.Unbounded.IsBounded())
}

func TestLimit(t *testing.T) {
	test.ExpectEquality(t, poll.Bounded(0).Attempts(), 1)
	test.ExpectEquality(t, poll.Bounded(2000000).Attempts(), 2000000)
	test.ExpectSuccess(t, poll.Bounded(10).IsBounded())
	test.ExpectEquality(t, poll.Timeout.String(), "timeout")
}

func TestSpin(t *testing.T) {
	test.ExpectEquality(t, poll.Spin(0), uint32(0))
	test.ExpectEquality(t, poll.Spin(-1), uint32(0))
	test.ExpectEquality(t, poll.Spin(500), uint32(500))
}

// waits on separate links run side by side. run with -race
func TestConcurrentWaits(t *testing.T) {
	const waits = 8

	var wg sync.WaitGroup
	results := make([]int, waits)
	for i := 0; i < waits; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			var calls int
			_, results[i] = poll.Until(func() bool {
				calls++
				return calls == 1000
			}, poll.Unbounded, 10)
		}()
	}
	wg.Wait()

	for i, n := range results {
		test.ExpectEquality(t, n, 1000, i)
	}
}
