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

// Package script runs Lua scripts against the driver. Driver operations are
// available to the script through the mcd table and the deferred command
// queue through the queue table. For example:
//
//	mcd.init()
//	mcd.upload(1, "macabre.wav")
//	local src = mcd.play(255, 1)
//	queue.update(src, 0, 64, 200)
//	queue.stop(3)
//	print(queue.flush())
//
// An error returned by a driver operation stops the script.
package script

import (
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/jetsetilly/mode1pcm/curated"
	"github.com/jetsetilly/mode1pcm/environment"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/driver"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/queue"
	"github.com/jetsetilly/mode1pcm/logger"
)

// ScriptError is the sentinel pattern for errors raised while running a script.
const ScriptError = "script: %v"

// Ticker is implemented by peers that need to be told that time has passed.
type Ticker interface {
	Tick(samples int)
}

// Script is a Lua state with the driver bindings installed.
type Script struct {
	env    *environment.Environment
	drv    *driver.Driver
	q      *queue.Queue
	ticker Ticker
	out    io.Writer

	L *lua.LState
}

// NewScript is the preferred method of initialisation for the Script type.
// Output from the Lua print() function is written to out. The ticker can be
// nil, in which case the mcd.tick() function does nothing.
func NewScript(env *environment.Environment, drv *driver.Driver, ticker Ticker, out io.Writer) *Script {
	s := &Script{
		env:    env,
		drv:    drv,
		q:      queue.NewQueue(env, drv),
		ticker: ticker,
		out:    out,
		L:      lua.NewState(),
	}

	mcd := s.L.NewTable()
	s.L.SetFuncs(mcd, s.driverBindings())
	s.L.SetGlobal("mcd", mcd)

	q := s.L.NewTable()
	s.L.SetFuncs(q, s.queueBindings())
	s.L.SetGlobal("queue", q)

	s.L.SetGlobal("print", s.L.NewFunction(s.print))

	return s
}

// Queue returns the queue used by the script.
func (s *Script) Queue() *queue.Queue {
	return s.q
}

// Close the Lua state.
func (s *Script) Close() {
	s.L.Close()
}

// RunFile runs the named Lua file.
func (s *Script) RunFile(filename string) error {
	logger.Logf(s.env, "script", "running %s", filename)
	if err := s.L.DoFile(filename); err != nil {
		return curated.Errorf(ScriptError, err)
	}
	return nil
}

// RunString runs the Lua source.
func (s *Script) RunString(src string) error {
	if err := s.L.DoString(src); err != nil {
		return curated.Errorf(ScriptError, err)
	}
	return nil
}

func (s *Script) print(L *lua.LState) int {
	n := L.GetTop()
	v := make([]string, n)
	for i := 1; i <= n; i++ {
		v[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(s.out, strings.Join(v, "\t"))
	return 0
}
