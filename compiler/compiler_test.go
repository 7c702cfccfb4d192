package compiler_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lol3rrr/prizm-sub000/compiler"
	"github.com/Lol3rrr/prizm-sub000/vm"
)

// runProgram compiles the source and runs it to completion on a fresh
// emulator with scripted input, returning the machine for inspection.
func runProgram(t *testing.T, source string, keys []vm.KeyPress) *vm.Emulator {
	t.Helper()

	result, err := compiler.Compile(source, "test")
	require.NoError(t, err)

	input := vm.NewMockInput(keys)
	em := vm.New(result.Code, input, vm.NewMockDisplay())
	em.Output = io.Discard

	require.NoError(t, em.RunToCompletion())
	return em
}

func TestDirectDereferenceStore(t *testing.T) {
	em := runProgram(t, `int main() {
		*13123 = 1;
		return 0;
	}`, nil)

	assert.Equal(t, byte(1), em.Memory.ReadByte(13123))
	assert.Equal(t, uint32(0), em.CPU.R[0])
}

func TestDereferenceExpressionStore(t *testing.T) {
	em := runProgram(t, `int main() {
		unsigned int a = 13123;
		*(a + 2 * 6) = 1;
		return 0;
	}`, nil)

	assert.Equal(t, byte(1), em.Memory.ReadByte(13135))
}

func TestFunctionArguments(t *testing.T) {
	em := runProgram(t, `int store(int v1, int v2) {
		*13123 = v1;
		*13124 = v2;
		return 0;
	}
	int main() {
		store(1, 2);
		return 0;
	}`, nil)

	assert.Equal(t, byte(1), em.Memory.ReadByte(13123))
	assert.Equal(t, byte(2), em.Memory.ReadByte(13124))
}

func TestFunctionReturnValue(t *testing.T) {
	em := runProgram(t, `int calc(int a, int b) {
		return a + b;
	}
	int main() {
		*13123 = calc(1, 2);
		return 0;
	}`, nil)

	assert.Equal(t, byte(3), em.Memory.ReadByte(13123))
}

func TestNestedLoops(t *testing.T) {
	em := runProgram(t, `int main() {
		unsigned int v = 100;
		for (int i = 0; i < 5; i = i + 1) {
			for (int j = 0; j < 5; j = j + 1) {
				*(v + i * 5 + j) = 1;
			}
		}
		return 0;
	}`, nil)

	for addr := uint32(100); addr < 125; addr++ {
		assert.Equal(t, byte(1), em.Memory.ReadByte(addr), "heap[%d]", addr)
	}
	assert.Equal(t, byte(0), em.Memory.ReadByte(125))
}

func TestConditionals(t *testing.T) {
	em := runProgram(t, `int main() {
		if (0 == 0) {
			*100 = 1;
		}
		if (0 == 1) {
			*101 = 1;
		}
		return 0;
	}`, nil)

	assert.Equal(t, byte(1), em.Memory.ReadByte(100))
	assert.Equal(t, byte(0), em.Memory.ReadByte(101))
}

func TestLessThanCondition(t *testing.T) {
	em := runProgram(t, `int main() {
		if (1 < 2) {
			*100 = 1;
		}
		if (2 < 1) {
			*101 = 1;
		}
		return 0;
	}`, nil)

	assert.Equal(t, byte(1), em.Memory.ReadByte(100))
	assert.Equal(t, byte(0), em.Memory.ReadByte(101))
}

func TestWhileLoop(t *testing.T) {
	em := runProgram(t, `int main() {
		unsigned int i = 0;
		while (i < 10) {
			*(200 + i) = 1;
			i = i + 1;
		}
		return 0;
	}`, nil)

	for addr := uint32(200); addr < 210; addr++ {
		assert.Equal(t, byte(1), em.Memory.ReadByte(addr), "heap[%d]", addr)
	}
	assert.Equal(t, byte(0), em.Memory.ReadByte(210))
}

func TestPointerVariableStore(t *testing.T) {
	// Writing through a declared int pointer uses the pointee width, so
	// all four bytes of the long land on the heap.
	em := runProgram(t, `int main() {
		int* addr = 13120;
		*addr = 300;
		return 0;
	}`, nil)

	value, err := em.Memory.ReadLong(13120)
	require.NoError(t, err)
	assert.Equal(t, uint32(300), value)
}

func TestIndexedPointerAssignment(t *testing.T) {
	em := runProgram(t, `int store() {
		int* raw_addr = 13120;
		raw_addr[1] = 1;
		return 0;
	}
	int main() {
		store();
		return 0;
	}`, nil)

	// Element stride is four bytes.
	assert.Equal(t, byte(1), em.Memory.ReadByte(13124))
}

func TestIndexedLoadReadsLong(t *testing.T) {
	em := runProgram(t, `int main() {
		int* raw_addr = 13120;
		raw_addr[1] = 42;
		*200 = raw_addr[1];
		return 0;
	}`, nil)

	assert.Equal(t, byte(42), em.Memory.ReadByte(13124))
	// The indexed load is long-width: it reads 0x2A000000 from 13124, and
	// the byte store to 200 writes its low byte.
	assert.Equal(t, byte(0), em.Memory.ReadByte(200))
}

func TestArrayVariable(t *testing.T) {
	em := runProgram(t, `int main() {
		int test[5];
		test[0] = 1;
		return 0;
	}`, nil)

	// The array lives in the frame: below the saved FP/SP pair and the
	// 20-byte local area.
	addr := uint32(vm.InitialStackTop - 4*5 - 8)
	assert.Equal(t, byte(1), em.Memory.ReadByte(addr))
}

func TestSyscallGetKeyLoop(t *testing.T) {
	keys := make([]vm.KeyPress, 0, 10)
	for i := 0; i < 10; i++ {
		keys = append(keys, vm.KeyPress{Key: vm.Number(0), Modifier: vm.ModifierNone})
	}

	em := runProgram(t, `int main() {
		int key = 0;
		for (int i = 0; i < 10; i = i + 1) {
			__syscall(3755, &key, 0, 0, 0);
		}
		return 0;
	}`, keys)

	input := em.Input.(*vm.MockInput)
	assert.Empty(t, input.LeftOver())
}

func TestLargeConstantStore(t *testing.T) {
	// Forces the 32-bit constant path: two literal loads, shift, mask,
	// add.
	em := runProgram(t, `int main() {
		unsigned int big = 305419896;
		*100 = 1;
		return 0;
	}`, nil)

	assert.Equal(t, byte(1), em.Memory.ReadByte(100))
}

func TestShortVariableWidth(t *testing.T) {
	em := runProgram(t, `int main() {
		short a = 5;
		short b = 6;
		unsigned int sum = a + b;
		*(100 + sum) = 1;
		return 0;
	}`, nil)

	assert.Equal(t, byte(1), em.Memory.ReadByte(111))
}

func TestCompileErrors(t *testing.T) {
	_, err := compiler.Compile("", "empty.c")
	assert.Error(t, err)

	// Subtraction of non-constants has no lowering.
	_, err = compiler.Compile(`int main() {
		int a = 5;
		int b = a - 1;
		return 0;
	}`, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not implemented")

	// Wrong __syscall arity is a semantic error.
	_, err = compiler.Compile(`int main() {
		__syscall(1, 2);
		return 0;
	}`, "test")
	assert.Error(t, err)
}

func TestConstantExpressionProperty(t *testing.T) {
	// Constant expressions fold and store their byte value at the target
	// address.
	cases := []struct {
		expr string
		want byte
	}{
		{"1 + 2", 3},
		{"2 * 6 + 1", 13},
		{"10 / 2", 5},
		{"7 - 3", 4},
	}

	for _, tc := range cases {
		em := runProgram(t, `int main() {
			*150 = `+tc.expr+`;
			return 0;
		}`, nil)
		assert.Equal(t, tc.want, em.Memory.ReadByte(150), "expression %q", tc.expr)
	}
}
