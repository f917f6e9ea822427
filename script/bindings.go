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

package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/jetsetilly/mode1pcm/hardware/megacd/driver"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/queue"
	"github.com/jetsetilly/mode1pcm/samples"
)

// raise a Lua error if err is not nil. the function does not return if the
// error is raised
func check(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%v", err)
	}
}

func playParams(L *lua.LState) driver.PlayParams {
	return driver.PlayParams{
		Source:   driver.SourceID(L.CheckInt(1)),
		Buffer:   driver.BufferID(L.CheckInt(2)),
		Freq:     uint16(L.OptInt(3, 0)),
		Pan:      uint8(L.OptInt(4, driver.PanCentre)),
		Vol:      uint8(L.OptInt(5, 255)),
		Autoloop: L.OptBool(6, false),
	}
}

func updateParams(L *lua.LState) driver.UpdateParams {
	return driver.UpdateParams{
		Source:   driver.SourceID(L.CheckInt(1)),
		Freq:     uint16(L.OptInt(2, 0)),
		Pan:      uint8(L.OptInt(3, driver.PanCentre)),
		Vol:      uint8(L.OptInt(4, 255)),
		Autoloop: L.OptBool(5, false),
	}
}

func (s *Script) driverBindings() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"init": func(L *lua.LState) int {
			check(L, s.drv.Init())
			return 0
		},
		"play": func(L *lua.LState) int {
			id, err := s.drv.PlaySource(playParams(L))
			check(L, err)
			L.Push(lua.LNumber(id))
			return 1
		},
		"update": func(L *lua.LState) int {
			check(L, s.drv.UpdateSource(updateParams(L)))
			return 0
		},
		"pause": func(L *lua.LState) int {
			_, err := s.drv.PauseSource(driver.SourceID(L.CheckInt(1)), L.OptBool(2, true))
			check(L, err)
			return 0
		},
		"stop": func(L *lua.LState) int {
			check(L, s.drv.StopSource(driver.SourceID(L.CheckInt(1))))
			return 0
		},
		"rewind": func(L *lua.LState) int {
			check(L, s.drv.RewindSource(driver.SourceID(L.CheckInt(1))))
			return 0
		},
		"position": func(L *lua.LState) int {
			pos, err := s.drv.SourcePosition(driver.SourceID(L.CheckInt(1)))
			check(L, err)
			L.Push(lua.LNumber(pos))
			return 1
		},
		"clear": func(L *lua.LState) int {
			check(L, s.drv.ClearAll())
			return 0
		},
		"suspend": func(L *lua.LState) int {
			check(L, s.drv.SuspendMixer(L.OptBool(1, true)))
			return 0
		},
		"upload": func(L *lua.LState) int {
			smp, err := samples.Load(s.env, L.CheckString(2))
			check(L, err)
			check(L, s.drv.UploadBuffer(driver.BufferID(L.CheckInt(1)), smp.Payload))
			L.Push(lua.LNumber(smp.SampleRate))
			return 1
		},
		"upload_bytes": func(L *lua.LState) int {
			check(L, s.drv.UploadBuffer(driver.BufferID(L.CheckInt(1)), []byte(L.CheckString(2))))
			return 0
		},
		"load": func(L *lua.LState) int {
			ok, err := s.drv.LoadFile(L.CheckString(1), driver.BufferID(L.CheckInt(2)))
			check(L, err)
			L.Push(lua.LBool(ok))
			return 1
		},
		"open": func(L *lua.LState) int {
			h, err := s.drv.OpenFile(L.CheckString(1))
			check(L, err)
			L.Push(lua.LNumber(h.Length))
			L.Push(lua.LNumber(h.Status))
			return 2
		},
		"disc": func(L *lua.LState) int {
			di, err := s.drv.DiscInfo()
			check(L, err)
			t := L.NewTable()
			L.SetField(t, "status", lua.LNumber(di.Status))
			L.SetField(t, "first", lua.LNumber(di.FirstTrack))
			L.SetField(t, "last", lua.LNumber(di.LastTrack))
			L.SetField(t, "version", lua.LNumber(di.DriveVersion))
			L.SetField(t, "flags", lua.LNumber(di.Flags))
			L.Push(t)
			return 1
		},
		"track": func(L *lua.LState) int {
			ti, err := s.drv.TrackInfo(uint16(L.CheckInt(1)))
			check(L, err)
			t := L.NewTable()
			L.SetField(t, "minutes", lua.LNumber(ti.Minutes))
			L.SetField(t, "seconds", lua.LNumber(ti.Seconds))
			L.SetField(t, "frames", lua.LNumber(ti.Frames))
			L.SetField(t, "track", lua.LNumber(ti.Track))
			L.SetField(t, "data", lua.LBool(ti.Type == driver.TrackData))
			L.Push(t)
			return 1
		},
		"play_track": func(L *lua.LState) int {
			check(L, s.drv.PlayTrack(uint16(L.CheckInt(1)), L.OptBool(2, false)))
			return 0
		},
		"stop_track": func(L *lua.LState) int {
			check(L, s.drv.StopTrack())
			return 0
		},
		"pause_track": func(L *lua.LState) int {
			check(L, s.drv.ToggleTrackPause())
			return 0
		},
		"track_volume": func(L *lua.LState) int {
			check(L, s.drv.SetTrackVolume(uint16(L.CheckInt(1))))
			return 0
		},
		"play_spcm": func(L *lua.LState) int {
			check(L, s.drv.PlaySPCM(L.CheckString(1), uint32(L.OptInt64(2, 0))))
			return 0
		},
		"stop_spcm": func(L *lua.LState) int {
			check(L, s.drv.StopSPCM())
			return 0
		},
		"resume_spcm": func(L *lua.LState) int {
			check(L, s.drv.ResumeSPCM())
			return 0
		},
		"status": func(L *lua.LState) int {
			L.Push(lua.LNumber(s.drv.PlaybackStatus()))
			return 1
		},
		"spcm_status": func(L *lua.LState) int {
			L.Push(lua.LNumber(s.drv.SPCMStatus()))
			return 1
		},
		"tick": func(L *lua.LState) int {
			if s.ticker != nil {
				s.ticker.Tick(L.CheckInt(1))
			}
			return 0
		},
	}
}

// queue functions return true if the command was queued and false if the
// queue was full
func (s *Script) queueBindings() map[string]lua.LGFunction {
	push := func(L *lua.LState, o queue.Outcome, err error) int {
		check(L, err)
		L.Push(lua.LBool(o == queue.Queued))
		return 1
	}

	return map[string]lua.LGFunction{
		"play": func(L *lua.LState) int {
			o, err := s.q.Play(playParams(L))
			return push(L, o, err)
		},
		"update": func(L *lua.LState) int {
			o, err := s.q.Update(updateParams(L))
			return push(L, o, err)
		},
		"stop": func(L *lua.LState) int {
			o, err := s.q.Stop(driver.SourceID(L.CheckInt(1)))
			return push(L, o, err)
		},
		"clear": func(L *lua.LState) int {
			return push(L, s.q.Clear(), nil)
		},
		"flush": func(L *lua.LState) int {
			n, err := s.q.Flush()
			check(L, err)
			L.Push(lua.LNumber(n))
			return 1
		},
		"len": func(L *lua.LState) int {
			L.Push(lua.LNumber(s.q.Len()))
			return 1
		},
		"cap": func(L *lua.LState) int {
			L.Push(lua.LNumber(s.q.Cap()))
			return 1
		},
	}
}
