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

package peer

// DiscInfo is the information returned by the disc info command.
type DiscInfo struct {
	Status       uint16
	FirstTrack   uint8
	LastTrack    uint8
	DriveVersion uint8
	Flags        uint8
}

// Track is an entry in the table of contents of the simulated disc.
type Track struct {
	Minutes uint8
	Seconds uint8
	Frames  uint8

	// 0 for CDDA, 1 for data
	Type uint8
}

// Config for the simulated peer.
type Config struct {
	// number of reads of the reset register before the bus is granted and
	// before the peer reports that it is running
	BusAckDelay int
	RunDelay    int

	// number of reads of the status port, once interrupts have started,
	// before the driver reports that it is alive. and then the number of
	// reads before it reports that it is ready for the first command
	LiveDelay  int
	ReadyDelay int

	// the driver never reports that it is alive
	NeverLive bool

	// number of reads of the status port before a command is acknowledged
	AckDelay int

	// no BIOS signature is present in ROM
	Absent bool

	// BIOS signature is that of a WonderMega/X'Eye
	WonderMega bool

	// the number of bytes available to buffers
	PoolSize int

	Disc   DiscInfo
	Tracks []Track
}

// DefaultConfig returns a Config with reasonable values. The disc has ten
// tracks, the first of which is a data track.
func DefaultConfig() Config {
	cfg := Config{
		BusAckDelay: 3,
		RunDelay:    3,
		LiveDelay:   100,
		ReadyDelay:  10,
		AckDelay:    2,
		PoolSize:    0x60000,
		Disc: DiscInfo{
			Status:       0x0100,
			FirstTrack:   1,
			LastTrack:    10,
			DriveVersion: 3,
			Flags:        0b0110,
		},
	}

	for i := 0; i < 10; i++ {
		t := Track{Minutes: uint8(i * 4), Seconds: uint8(i*17) % 60, Frames: uint8(i*7) % 75}
		if i == 0 {
			t.Type = 1
		}
		cfg.Tracks = append(cfg.Tracks, t)
	}

	return cfg
}
