package vm

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lol3rrr/prizm-sub000/sh"
)

func newTestEmulator(t *testing.T, instructions []sh.Instruction) *Emulator {
	t.Helper()
	em := NewFromInstructions(instructions, NewMockInput(nil), NewMockDisplay())
	em.Output = io.Discard
	return em
}

func TestInitialState(t *testing.T) {
	em := newTestEmulator(t, []sh.Instruction{sh.Nop()})

	assert.Equal(t, uint32(CodeMappingOffset), em.PC())
	assert.Equal(t, uint32(InitialStackTop), em.CPU.SP())
	assert.Equal(t, uint32(InitialStackTop), em.CPU.FP())
}

func TestMovImmediateSignExtends(t *testing.T) {
	em := newTestEmulator(t, []sh.Instruction{
		sh.MovI(0, 0x12),
		sh.MovI(1, 0x8f),
	})

	require.NoError(t, em.Tick())
	require.NoError(t, em.Tick())

	assert.Equal(t, uint32(0x12), em.CPU.R[0])
	assert.Equal(t, uint32(0xffffff8f), em.CPU.R[1])
}

func TestPushPopRoundTrip(t *testing.T) {
	em := newTestEmulator(t, []sh.Instruction{
		sh.MovI(0, 0x55),
		sh.Push(0),
		sh.Pop(1),
	})

	for i := 0; i < 3; i++ {
		require.NoError(t, em.Tick())
	}

	assert.Equal(t, uint32(0x55), em.CPU.R[1])
	assert.Equal(t, uint32(InitialStackTop), em.CPU.SP())
}

// A BRA executes its delay slot exactly once, between the branch and the
// target: after two ticks the PC sits at the branch target and the slot's
// side effect happened.
func TestDelaySlotExecutesOnce(t *testing.T) {
	em := newTestEmulator(t, []sh.Instruction{
		sh.BRA(2),     // target = base+4+4 = offset 8
		sh.MovI(3, 7), // delay slot
		sh.Nop(),      // skipped
		sh.Nop(),      // skipped
		sh.Nop(),      // offset 8: branch target
	})

	require.NoError(t, em.Tick())
	assert.Equal(t, uint32(CodeMappingOffset+8), em.PC())
	// Slot not executed yet.
	assert.Equal(t, uint32(0), em.CPU.R[3])

	require.NoError(t, em.Tick())
	// Slot executed while the PC stays at the target.
	assert.Equal(t, uint32(7), em.CPU.R[3])
	assert.Equal(t, uint32(CodeMappingOffset+8), em.PC())
}

// Resolved jumps reach their target in exactly two ticks: the branch
// itself and the queued delay slot.
func TestJumpReachesTargetInTwoTicks(t *testing.T) {
	em := newTestEmulator(t, []sh.Instruction{
		sh.BRA(1), // target = offset 6
		sh.Nop(),
		sh.Nop(),
		sh.Add(0, 1), // offset 6
	})

	require.NoError(t, em.Tick())
	require.NoError(t, em.Tick())
	assert.Equal(t, uint32(CodeMappingOffset+6), em.PC())
}

func TestSlotIllegal(t *testing.T) {
	em := newTestEmulator(t, []sh.Instruction{
		sh.BRA(0),
		sh.Rts(), // branch in the delay slot
	})

	err := em.Tick()
	require.Error(t, err)

	var exc *Exception
	require.ErrorAs(t, err, &exc)
	assert.Equal(t, SlotIllegal, exc.Kind)
}

func TestConditionalBranches(t *testing.T) {
	// BT taken when T is set; BF when clear.
	em := newTestEmulator(t, []sh.Instruction{
		sh.MovI(0, 5),
		sh.MovI(1, 5),
		sh.CmpEq(0, 1), // T = true
		sh.BT(1),       // jump to offset 6+2+4 = 12
		sh.Nop(),
		sh.Nop(),
		sh.MovI(2, 1), // offset 12
	})

	for i := 0; i < 4; i++ {
		require.NoError(t, em.Tick())
	}
	assert.Equal(t, uint32(CodeMappingOffset+12), em.PC())

	require.NoError(t, em.Tick())
	assert.Equal(t, uint32(1), em.CPU.R[2])
}

func TestBranchNotTakenFallsThrough(t *testing.T) {
	em := newTestEmulator(t, []sh.Instruction{
		sh.MovI(0, 5),
		sh.MovI(1, 6),
		sh.CmpEq(0, 1), // T = false
		sh.BT(4),
		sh.MovI(2, 9), // executed: fall-through
	})

	for i := 0; i < 5; i++ {
		require.NoError(t, em.Tick())
	}
	assert.Equal(t, uint32(9), em.CPU.R[2])
}

func TestComparisons(t *testing.T) {
	cases := []struct {
		name  string
		setup []sh.Instruction
		want  bool
	}{
		{"hi true", []sh.Instruction{sh.MovI(0, 9), sh.MovI(1, 3), sh.CmpHi(0, 1)}, true},
		{"hi false", []sh.Instruction{sh.MovI(0, 3), sh.MovI(1, 9), sh.CmpHi(0, 1)}, false},
		{"hi unsigned", []sh.Instruction{sh.MovI(0, 0xff), sh.MovI(1, 3), sh.CmpHi(0, 1)}, true},
		{"gt signed", []sh.Instruction{sh.MovI(0, 0xff), sh.MovI(1, 3), sh.CmpGt(1, 0)}, true},
		{"hs equal", []sh.Instruction{sh.MovI(0, 3), sh.MovI(1, 3), sh.CmpHs(0, 1)}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			em := newTestEmulator(t, tc.setup)
			for range tc.setup {
				require.NoError(t, em.Tick())
			}
			assert.Equal(t, tc.want, em.CPU.T)
		})
	}
}

func TestMultiplyWritesMACL(t *testing.T) {
	em := newTestEmulator(t, []sh.Instruction{
		sh.MovI(0, 6),
		sh.MovI(1, 7),
		sh.MulL(0, 1),
		sh.StsMacl(2),
	})

	for i := 0; i < 4; i++ {
		require.NoError(t, em.Tick())
	}
	assert.Equal(t, uint32(42), em.CPU.MACL)
	assert.Equal(t, uint32(42), em.CPU.R[2])
}

func TestJsrRtsPair(t *testing.T) {
	em := newTestEmulator(t, []sh.Instruction{
		sh.Jsr(2),     // offset 0: call through R2
		sh.Nop(),      // delay slot
		sh.MovI(4, 9), // offset 4: return point
		sh.Nop(),
		sh.MovI(3, 1), // offset 8: subroutine
		sh.Rts(),
		sh.Nop(),
	})
	em.CPU.R[2] = CodeMappingOffset + 8

	require.NoError(t, em.Tick()) // JSR
	require.NoError(t, em.Tick()) // delay slot
	assert.Equal(t, uint32(CodeMappingOffset+8), em.PC())
	assert.Equal(t, uint32(CodeMappingOffset+4), em.CPU.PR)

	require.NoError(t, em.Tick()) // MovI(3,1)
	require.NoError(t, em.Tick()) // RTS
	require.NoError(t, em.Tick()) // slot
	require.NoError(t, em.Tick()) // MovI(4,9) back at the return point
	assert.Equal(t, uint32(1), em.CPU.R[3])
	assert.Equal(t, uint32(9), em.CPU.R[4])
	assert.Equal(t, uint32(CodeMappingOffset+6), em.PC())
}

func TestSyscallGetKey(t *testing.T) {
	input := NewMockInput([]KeyPress{{Key: Number(7), Modifier: ModifierNone}})
	em := NewFromInstructions([]sh.Instruction{sh.Nop()}, input, NewMockDisplay())
	em.Output = io.Discard

	em.CPU.R[R0] = SyscallGetKey
	em.CPU.R[R4] = 0x1000 // destination address
	em.CPU.PR = CodeMappingOffset
	em.CPU.PC = SyscallTrapAddress

	require.NoError(t, em.Tick())

	value, err := em.Memory.ReadLong(0x1000)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x0037), value)
	assert.Equal(t, uint32(CodeMappingOffset), em.PC())
	assert.Empty(t, input.LeftOver())
}

func TestSyscallDisplayRouting(t *testing.T) {
	display := NewMockDisplay()
	em := NewFromInstructions([]sh.Instruction{sh.Nop()}, NewMockInput(nil), display)
	em.Output = io.Discard

	em.CPU.PR = CodeMappingOffset

	em.CPU.R[R0] = SyscallPresentVRAM
	em.CPU.PC = SyscallTrapAddress
	require.NoError(t, em.Tick())
	assert.Equal(t, 1, display.Presents)

	em.CPU.R[R0] = SyscallClearVRAM
	em.CPU.PC = SyscallTrapAddress
	require.NoError(t, em.Tick())
	assert.Equal(t, 1, display.Clears)
}

func TestUnknownSyscallIsIgnored(t *testing.T) {
	em := NewFromInstructions([]sh.Instruction{sh.Nop()}, NewMockInput(nil), NewMockDisplay())
	em.Output = io.Discard

	em.CPU.R[R0] = 0xffff
	em.CPU.PR = CodeMappingOffset
	em.CPU.PC = SyscallTrapAddress

	require.NoError(t, em.Tick())
	assert.Equal(t, uint32(CodeMappingOffset), em.PC())
}

func TestTickLimit(t *testing.T) {
	// A tight loop: BRA back onto itself.
	em := newTestEmulator(t, []sh.Instruction{
		sh.BRA(0xffe), // target = pc+4-4 = pc
		sh.Nop(),
	})
	em.TickLimit = 100

	var err error
	for err == nil {
		err = em.Tick()
	}
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tick limit")
	assert.Equal(t, uint64(100), em.Ticks())
}

func TestUnknownInstruction(t *testing.T) {
	em := newTestEmulator(t, []sh.Instruction{sh.Literal(0xff, 0xff)})

	err := em.Tick()
	require.Error(t, err)

	var exc *Exception
	require.ErrorAs(t, err, &exc)
	assert.Equal(t, UnknownInstruction, exc.Kind)
}

func TestKeySerialization(t *testing.T) {
	cases := []struct {
		key  Key
		want uint16
	}{
		{Menu(), 0x7533},
		{Exit(), 0x7532},
		{Exe(), 0x7534},
		{Ac(), 0x753f},
		{Number(0), 0x0030},
		{Number(9), 0x0039},
		{ArrowUp(), 0x7542},
		{ArrowDown(), 0x7547},
		{ArrowLeft(), 0x7544},
		{ArrowRight(), 0x7545},
	}

	for _, tc := range cases {
		code, err := tc.key.Serialize(ModifierNone)
		require.NoError(t, err)
		assert.Equal(t, tc.want, code)
	}

	_, err := Del().Serialize(ModifierNone)
	assert.Error(t, err)
	_, err = Exe().Serialize(ModifierShift)
	assert.Error(t, err)
}
