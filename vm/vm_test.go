package vm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// program is a tiny helper to write a literal word image without manually
// counting commas, mirroring KTStephano-GVM's program-as-data test style.
func program(words ...Word) []Word {
	return words
}

func TestNewZeroesScreenAndOverlaysImage(t *testing.T) {
	img := program(1, 2, 3, 4, 5)
	v := New(img)
	for i, want := range img {
		assert.Equal(t, want, v.Read(Word(i)))
	}
	assert.Equal(t, Word(0), v.Read(Word(len(img))))
	for a := 0; a < 65536; a += 7919 { // sparse sample of the whole space
		assert.Equal(t, Word(0), v.ReadScreen(Word(a)))
	}
}

func TestSimpleSetAndAdd(t *testing.T) {
	// SET 100,5 | SET 101,7 | ADD 100,101,102 | SYNC 103,104 (data cells
	// sit past the program so no write lands on an instruction word)
	img := program(
		0, 100, 5, 0,
		0, 101, 7, 0,
		3, 100, 101, 102,
		15, 103, 104, 15,
	)
	v := New(img)
	for i := 0; i < 4; i++ {
		require.NoError(t, v.Step())
	}
	assert.EqualValues(t, 5, v.Read(100))
	assert.EqualValues(t, 7, v.Read(101))
	assert.EqualValues(t, 12, v.Read(102))
	assert.True(t, v.WantsSync())
	assert.Equal(t, v.r.P, v.Read(103))
	assert.Equal(t, v.r.K, v.Read(104))
}

func TestDivisionByZeroIsFatalAndLeavesStateUnchanged(t *testing.T) {
	img := program(6, 100, 101, 102)
	v := New(img)
	v.m.write(101, 0)
	ipBefore := v.ReadIP()
	err := v.Step()
	require.ErrorIs(t, err, ErrZeroDivision)
	assert.Equal(t, ipBefore, v.ReadIP())
	assert.EqualValues(t, 0, v.Read(102))
}

func TestInvalidOpcodeIsFatal(t *testing.T) {
	img := program(17, 0, 0, 0)
	v := New(img)
	err := v.Step()
	require.ErrorIs(t, err, ErrInvalidInstruction)
}

func TestGotoLoopWithCounter(t *testing.T) {
	// GOTO jumps when its condition operand reads zero, so the loop gates
	// on a CMP-computed "is the counter zero" flag rather than on the
	// counter directly: SET 50,5 | SUB 50,100,50 | CMP 50,102,103 (flag =
	// counter<1) | GOTO(101,0,103) jumps back to the SUB while flag==0 |
	// SYNC 200,201.
	img := program(
		0, 50, 5, 0, // addr0: SET M[50]=5
		4, 50, 100, 50, // addr4: SUB M[50] -= M[100]
		7, 50, 102, 103, // addr8: CMP M[103] = (M[50] < M[102])
		1, 101, 0, 103, // addr12: GOTO addr4 while M[103]==0
		15, 200, 201, 0, // addr16: SYNC
	)
	v := New(img)
	v.m.write(100, 1)   // decrement step
	v.m.write(101, 4)   // loop-back target: the SUB instruction
	v.m.write(102, 1)   // CMP upper bound: flag = (counter < 1)

	require.NoError(t, v.Step()) // SET 50,5

	for i := 0; i < 5; i++ {
		require.NoError(t, v.Step()) // SUB
		require.NoError(t, v.Step()) // CMP
		require.NoError(t, v.Step()) // GOTO
	}
	// After 5 iterations M[50] has reached 0 and GOTO fell through to SYNC.
	assert.EqualValues(t, 0, v.Read(50))
	assert.Equal(t, Word(16), v.ReadIP())

	require.NoError(t, v.Step()) // SYNC
	assert.True(t, v.WantsSync())
}

func TestWrapAroundSkipBackJump(t *testing.T) {
	// SKIP 0,1,10 with M[10]=0: IP becomes (0 + 0*4 - 1*4) mod 2^16 = 0xFFFC
	img := program(2, 0, 1, 10)
	v := New(img)
	require.NoError(t, v.Step())
	assert.Equal(t, Word(0xFFFC), v.ReadIP())
}

func TestPrintReadRoundTripAcrossFrame(t *testing.T) {
	// SET 0,0xABCD | SET 1,0x1234 | PRINT 0,1 | SYNC 2,3
	img := program(
		0, 0, 0xABCD, 0,
		0, 1, 0x1234, 0,
		11, 0, 1, 0,
		15, 2, 3, 0,
	)
	v := New(img)
	for i := 0; i < 4; i++ {
		require.NoError(t, v.Step())
	}
	snap := v.PerformSync(0, 0)
	assert.EqualValues(t, 0xABCD, snap[0x1234])

	// Next frame, modelled on a fresh VM whose screen already holds the
	// printed word: READ 1,4 pulls S[0x1234] back into M[4].
	v2 := New(program(
		0, 1, 0x1234, 0,
		12, 1, 4, 0,
	))
	v2.s.write(0x1234, 0xABCD)
	require.NoError(t, v2.Step())
	require.NoError(t, v2.Step())
	assert.EqualValues(t, 0xABCD, v2.Read(4))
}

func TestSelfLocatingInst(t *testing.T) {
	img := program(10, 5, 0, 0)
	v := New(img)
	require.NoError(t, v.Step())
	assert.EqualValues(t, 0, v.Read(5))
}

func TestSyncLatchIdempotentAcrossConsecutiveSyncs(t *testing.T) {
	img := program(
		15, 0, 1, 0,
		15, 2, 3, 0,
	)
	v := New(img)
	_ = v.PerformSync(0x55, 0xAA)
	require.NoError(t, v.Step())
	require.NoError(t, v.Step())
	assert.Equal(t, v.Read(0), v.Read(2))
	assert.Equal(t, v.Read(1), v.Read(3))
	assert.EqualValues(t, 0x55, v.Read(0))
	assert.EqualValues(t, 0xAA, v.Read(1))
}

func TestCmpIsStrictlyLessThanUnsigned(t *testing.T) {
	cases := []struct {
		x, y Word
		want Word
	}{
		{3, 5, 1},
		{5, 3, 0},
		{5, 5, 0},
		{0, 0xFFFF, 1},
	}
	for _, c := range cases {
		img := program(
			0, 100, c.x, 0,
			0, 101, c.y, 0,
			7, 100, 101, 102,
		)
		v := New(img)
		for i := 0; i < 3; i++ {
			require.NoError(t, v.Step())
		}
		assert.Equalf(t, c.want, v.Read(102), "CMP(%d,%d)", c.x, c.y)
	}
}

func TestArithmeticWrapsModulo2to16(t *testing.T) {
	img := program(
		0, 100, 0xFFFF, 0,
		0, 101, 2, 0,
		3, 100, 101, 102, // ADD: 0xFFFF+2 wraps to 1
		4, 101, 100, 103, // SUB: 2-0xFFFF wraps to 3
		5, 100, 101, 104, // MUL: 0xFFFF*2 wraps to 0xFFFE
		13, 100, 101, 105, // BAND: 0xFFFF & 2 = 2
		14, 100, 101, 106, // XOR: 0xFFFF ^ 2 = 0xFFFD
	)
	v := New(img)
	for i := 0; i < 7; i++ {
		require.NoError(t, v.Step())
	}
	assert.EqualValues(t, 1, v.Read(102))
	assert.EqualValues(t, 3, v.Read(103))
	assert.EqualValues(t, 0xFFFE, v.Read(104))
	assert.EqualValues(t, 2, v.Read(105))
	assert.EqualValues(t, 0xFFFD, v.Read(106))
}

func TestDerefAndRefUseDisplacementAddressing(t *testing.T) {
	// M[20] = 100 (a base address). DEREF a2=21 <- M[M[20]+5] = M[105]
	img := program(
		0, 20, 100, 0,
		0, 105, 0xBEEF, 0,
		8, 20, 21, 5, // DEREF: M[21] = M[M[20]+5] = M[105] = 0xBEEF
		0, 30, 0x1234, 0,
		9, 20, 30, 6, // REF: M[M[20]+6] = M[30] -> M[106] = 0x1234
	)
	v := New(img)
	for i := 0; i < 5; i++ {
		require.NoError(t, v.Step())
	}
	assert.EqualValues(t, 0xBEEF, v.Read(21))
	assert.EqualValues(t, 0x1234, v.Read(106))
}

func TestStepReturnsDistinguishableErrorKinds(t *testing.T) {
	zd := New(program(6, 100, 101, 102)).Step()
	ii := New(program(16, 0, 0, 0)).Step()
	require.ErrorIs(t, zd, ErrZeroDivision)
	require.ErrorIs(t, ii, ErrInvalidInstruction)
	assert.False(t, errors.Is(zd, ErrInvalidInstruction))
	assert.False(t, errors.Is(ii, ErrZeroDivision))
}
