/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package quiz

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

const roomLetters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RoomCodeLength is the length of codes returned by NewRoomCode.
const RoomCodeLength = 4

func newRand() *rand.Rand {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic("crypto/rand failure: " + err.Error())
	}

	return rand.New(rand.NewPCG(
		binary.LittleEndian.Uint64(b[:8]),
		binary.LittleEndian.Uint64(b[8:]),
	))
}

// NewRoomCode returns a short uppercase base-36 code. Room codes are only
// shown to players; nothing is ever joined through them.
func NewRoomCode() string {
	const max = byte(255 - (256 % len(roomLetters)))

	out := make([]byte, 0, RoomCodeLength)
	buf := make([]byte, RoomCodeLength*2)

	for {
		if _, err := crand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}

		for _, b := range buf {
			if b > max {
				continue
			}

			out = append(out, roomLetters[int(b)%len(roomLetters)])
			if len(out) == RoomCodeLength {
				return string(out)
			}
		}
	}
}
