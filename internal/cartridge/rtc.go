package cartridge

import (
	"encoding/binary"
	"os"
	"time"
)

// rtc models the MBC3 real-time clock: seconds/minutes/hours/day-low/
// day-high registers derived from elapsed wall-clock time since a
// persisted Unix-epoch zero point, plus a latch snapshot that reads
// actually observe (so two latches with no time passing compare
// equal).
type rtc struct {
	zero time.Time // anchor persisted to <rom>.rtc
	halt bool
	haltAccum time.Duration // elapsed total frozen while halted; zero while running

	latched    bool
	latchedAt  time.Time
	sel        uint8 // 0x08-0x0C register select
	dayCarry   bool
}

// newRTC loads the zero anchor from path, defaulting to "now" if the
// file is absent.
func newRTC(path string) *rtc {
	r := &rtc{zero: time.Now()}
	if path == "" {
		return r
	}
	data, err := os.ReadFile(path)
	if err != nil || len(data) < 8 {
		return r
	}
	secs := int64(binary.BigEndian.Uint64(data[:8]))
	r.zero = time.Unix(secs, 0)
	return r
}

func (r *rtc) save(path string) error {
	if path == "" {
		return nil
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(r.zero.Unix()))
	return os.WriteFile(path, buf[:], 0o644)
}

// elapsed returns the duration the clock has been running, excluding
// time spent halted.
func (r *rtc) elapsed() time.Duration {
	if r.halt {
		return r.haltAccum
	}
	return time.Since(r.zero) - r.haltAccum
}

// latch records the current instant; later register reads compute
// S/M/H/DL/DH as of that instant rather than now. Calling it twice in
// a row without any wall-clock time passing yields identical values.
func (r *rtc) latch() {
	r.latchedAt = time.Now()
	r.latched = true
}

func (r *rtc) registerValue(reg uint8) uint8 {
	total := r.elapsed()
	if r.latched {
		// recompute elapsed as of the latch instant rather than now
		total = r.elapsedAsOf(r.latchedAt)
	}
	totalSeconds := int64(total.Seconds())
	days := totalSeconds / 86400

	switch reg {
	case 0x08:
		return uint8(totalSeconds % 60)
	case 0x09:
		return uint8((totalSeconds / 60) % 60)
	case 0x0A:
		return uint8((totalSeconds / 3600) % 24)
	case 0x0B:
		return uint8(days & 0xFF)
	case 0x0C:
		v := uint8((days >> 8) & 0x01)
		if r.halt {
			v |= 0x40
		}
		if days > 0x1FF {
			v |= 0x80
			r.dayCarry = true
		}
		if r.dayCarry {
			v |= 0x80
		}
		return v
	}
	return 0xFF
}

func (r *rtc) elapsedAsOf(t time.Time) time.Duration {
	if r.halt {
		return r.haltAccum
	}
	return t.Sub(r.zero) - r.haltAccum
}

// writeRegister handles a write to the currently selected RTC
// register. Writes to 0x08-0x0B (S/M/H/DL) overwrite that one field of
// the current S/M/H/DL/DH breakdown and re-derive the zero anchor so
// elapsed() reports the new total from this instant on; 0x0C sets or
// clears the halt bit from bit 6 and clears the day-carry flag when
// bit 7 is written as 0.
func (r *rtc) writeRegister(reg uint8, value uint8) {
	switch reg {
	case 0x08, 0x09, 0x0A, 0x0B:
		total := int64(r.elapsed().Seconds())
		days := total / 86400
		secs := total % 60
		mins := (total / 60) % 60
		hours := (total / 3600) % 24

		switch reg {
		case 0x08:
			secs = int64(value % 60)
		case 0x09:
			mins = int64(value % 60)
		case 0x0A:
			hours = int64(value % 24)
		case 0x0B:
			days = (days &^ 0xFF) | int64(value)
		}

		newTotal := time.Duration(days*86400+hours*3600+mins*60+secs) * time.Second
		if r.halt {
			r.haltAccum = newTotal
		} else {
			r.zero = time.Now().Add(-(newTotal + r.haltAccum))
		}
	case 0x0C:
		wasHalted := r.halt
		r.halt = value&0x40 != 0
		if r.halt && !wasHalted {
			r.haltAccum = time.Since(r.zero) - r.haltAccum
		} else if !r.halt && wasHalted {
			r.zero = time.Now().Add(-r.haltAccum)
			r.haltAccum = 0
		}
		if value&0x80 == 0 {
			r.dayCarry = false
		}
	}
}
