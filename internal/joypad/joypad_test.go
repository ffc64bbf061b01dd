package joypad

import (
	"testing"

	"github.com/cormacvale/goboycore/internal/interrupts"
	"github.com/stretchr/testify/assert"
)

func TestReadReflectsSelectedGroup(t *testing.T) {
	j := New()
	j.Write(0x20) // P14 direction group selected

	assert.Equal(t, uint8(0x2F), j.Read())

	j.KeyDown(Down)
	assert.Equal(t, uint8(0x27), j.Read())
	assert.Equal(t, interrupts.JoypadFlag, j.Interrupt())
}

func TestKeyUpSetsBitBack(t *testing.T) {
	j := New()
	j.Write(0x20)
	j.KeyDown(Down)
	j.ClearInterrupt()
	j.KeyUp(Down)
	assert.Equal(t, uint8(0x2F), j.Read())
	assert.Equal(t, uint8(0), j.Interrupt())
}
