package cpu

import (
	"testing"

	"github.com/cormacvale/goboycore/internal/types"
	"github.com/stretchr/testify/assert"
)

// testBus is a flat 64 KiB memory used only to exercise the CPU in
// isolation; it answers IF/IE reads/writes like the real MMU would.
type testBus struct {
	mem [0x10000]byte
}

func (b *testBus) Read(addr uint16) uint8         { return b.mem[addr] }
func (b *testBus) Write(addr uint16, value uint8) { b.mem[addr] = value }
func (b *testBus) TriggerSpeedSwitch()            {}

func newTestCPU(program ...uint8) (*CPU, *testBus) {
	bus := &testBus{}
	copy(bus.mem[0x0100:], program)
	c := New(bus, false)
	return c, bus
}

func TestNOPTakesFourCyclesAndAdvancesPC(t *testing.T) {
	c, _ := newTestCPU(0x00)
	flagsBefore := c.Reg.F

	cycles := c.Step()

	assert.Equal(t, 4, cycles)
	assert.Equal(t, uint16(0x0101), c.Reg.PC)
	assert.Equal(t, flagsBefore, c.Reg.F)
}

func TestADDSetsFlagsPerSpecExample(t *testing.T) {
	c, _ := newTestCPU(0x80) // ADD A,B
	c.Reg.A = 0x3A
	c.Reg.B = 0xC6

	c.Step()

	assert.Equal(t, uint8(0x00), c.Reg.A)
	assert.Equal(t, uint8(0xB0), c.Reg.F)
}

func TestSUBSetsFlagsPerSpecExample(t *testing.T) {
	c, _ := newTestCPU(0x90) // SUB B
	c.Reg.A = 0x3E
	c.Reg.B = 0x3E

	c.Step()

	assert.Equal(t, uint8(0x00), c.Reg.A)
	assert.Equal(t, uint8(0xC0), c.Reg.F)
}

func TestSWAPIsInvolution(t *testing.T) {
	c, _ := newTestCPU()
	for _, v := range []uint8{0x00, 0x01, 0xF0, 0xAB, 0xFF} {
		result := c.swap(v)
		zeroFlag := c.Reg.Flag(types.FlagZero)
		assert.Equal(t, v == 0, zeroFlag)
		assert.Equal(t, v, c.swap(result))
	}
}

func TestPushPopRestoresBC(t *testing.T) {
	c, _ := newTestCPU()
	c.Reg.SetBC(0xBEEF)
	c.Reg.SP = 0xFFFE

	c.push16(c.Reg.BC())
	c.Reg.SetBC(0x0000)
	c.Reg.SetBC(c.pop16())

	assert.Equal(t, uint16(0xBEEF), c.Reg.BC())
}

func TestPushAFThenPopAFKeepsLowNibbleZero(t *testing.T) {
	c, _ := newTestCPU()
	c.Reg.SetAF(0x12FF) // low nibble should be masked to 0 on write
	c.Reg.SP = 0xFFFE

	c.push16(c.Reg.AF())
	result := c.pop16()
	c.Reg.SetAF(result)

	assert.Equal(t, uint8(0), c.Reg.F&0x0F)
}

func TestStackWrapsOnPushAtZeroSP(t *testing.T) {
	c, _ := newTestCPU()
	c.Reg.SP = 0x0000

	c.push16(0x1234)

	assert.Equal(t, uint16(0xFFFE), c.Reg.SP)
}

func TestInterruptDispatchServicesLowestBitFirst(t *testing.T) {
	c, bus := newTestCPU(0x00)
	c.ime = true
	c.Reg.SP = 0xFFFE
	bus.Write(types.IE, 0x1F)
	bus.Write(types.IF, 0x06) // LCD (bit1) and Timer (bit2) both pending

	cycles, handled := c.dispatchInterrupt()

	assert.True(t, handled)
	assert.Equal(t, 16, cycles)
	assert.Equal(t, uint16(0x0048), c.Reg.PC) // LCDStat vector, lowest pending bit
	assert.Equal(t, uint8(0x04), bus.Read(types.IF))
	assert.False(t, c.ime)
}

func TestUnmappedOpcodeIsFatal(t *testing.T) {
	c, _ := newTestCPU(0xD3)
	assert.Panics(t, func() { c.Step() })
}
