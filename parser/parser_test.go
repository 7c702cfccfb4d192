package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lol3rrr/prizm-sub000/ir"
)

func parseOne(t *testing.T, content string) ir.Function {
	t.Helper()
	functions, errs := ParseSource(content, "test")
	require.False(t, errs.HasErrors(), "unexpected diagnostics: %v", errs.Err())
	require.Len(t, functions, 1)
	return functions[0]
}

func TestSimpleFunctionWithReturn(t *testing.T) {
	fn := parseOne(t, "int main() { return 0; }")

	assert.Equal(t, "main", fn.Name)
	assert.True(t, fn.Return.Equal(ir.I32()))
	assert.Empty(t, fn.Params)
	assert.Equal(t, []ir.Statement{
		ir.Return{Expr: ir.Constant{Value: ir.I32Value(0)}},
	}, fn.Body)
}

func TestDeclarationWithInitialiser(t *testing.T) {
	fn := parseOne(t, `int main() {
		int test = 2;
		return 0;
	}`)

	assert.Equal(t, []ir.Statement{
		ir.Declaration{Name: "test", Type: ir.I32()},
		ir.Assignment{Name: "test", Expr: ir.Constant{Value: ir.I32Value(2)}},
		ir.Return{Expr: ir.Constant{Value: ir.I32Value(0)}},
	}, fn.Body)
}

func TestDataTypes(t *testing.T) {
	cases := []struct {
		source string
		want   ir.DataType
	}{
		{"int", ir.I32()},
		{"unsigned int", ir.U32()},
		{"short", ir.I16()},
		{"unsigned short", ir.U16()},
		{"int*", ir.Ptr(ir.I32())},
	}

	for _, tc := range cases {
		fn := parseOne(t, tc.source+" f() { return; }")
		assert.True(t, fn.Return.Equal(tc.want), "return type of %q", tc.source)
	}
}

func TestParameters(t *testing.T) {
	fn := parseOne(t, "int add(int a, unsigned short b) { return 0; }")

	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.True(t, fn.Params[0].Type.Equal(ir.I32()))
	assert.Equal(t, "b", fn.Params[1].Name)
	assert.True(t, fn.Params[1].Type.Equal(ir.U16()))
}

func TestOperatorPrecedence(t *testing.T) {
	fn := parseOne(t, `int main() {
		int x = 1 * 2 + 3;
		return 0;
	}`)

	// 1 * 2 + 3 must re-bracket to (1 * 2) + 3.
	assign, ok := fn.Body[1].(ir.Assignment)
	require.True(t, ok)
	assert.Equal(t, ir.Operation{
		Op: ir.Add,
		Left: ir.Operation{
			Op:    ir.Multiply,
			Left:  ir.Constant{Value: ir.I32Value(1)},
			Right: ir.Constant{Value: ir.I32Value(2)},
		},
		Right: ir.Constant{Value: ir.I32Value(3)},
	}, assign.Expr)
}

func TestAdditionRightNested(t *testing.T) {
	fn := parseOne(t, `int main() {
		int x = 1 + 2 + 3;
		return 0;
	}`)

	// Same-precedence chains stay right-nested from the recursive parse.
	assign := fn.Body[1].(ir.Assignment)
	assert.Equal(t, ir.Operation{
		Op:   ir.Add,
		Left: ir.Constant{Value: ir.I32Value(1)},
		Right: ir.Operation{
			Op:    ir.Add,
			Left:  ir.Constant{Value: ir.I32Value(2)},
			Right: ir.Constant{Value: ir.I32Value(3)},
		},
	}, assign.Expr)
}

func TestForLoopLowering(t *testing.T) {
	fn := parseOne(t, `int main() {
		for (int i = 0; i < 10; i = i + 1) {
			f();
		}
		return 0;
	}`)

	require.Len(t, fn.Body, 4)
	assert.Equal(t, ir.Declaration{Name: "i", Type: ir.I32()}, fn.Body[0])
	assert.Equal(t, ir.Assignment{Name: "i", Expr: ir.Constant{Value: ir.I32Value(0)}}, fn.Body[1])

	loop, ok := fn.Body[2].(ir.WhileLoop)
	require.True(t, ok)
	assert.Equal(t, ir.Condition{
		Left:       ir.Variable{Name: "i"},
		Comparison: ir.LessThan,
		Right:      ir.Constant{Value: ir.I32Value(10)},
	}, loop.Cond)

	// Body is the loop body followed by the step statement.
	require.Len(t, loop.Body, 2)
	assert.Equal(t, ir.SingleExpression{Expr: ir.Call{Name: "f"}}, loop.Body[0])
	_, isStep := loop.Body[1].(ir.Assignment)
	assert.True(t, isStep)
}

func TestWhileCondition(t *testing.T) {
	fn := parseOne(t, `int main() {
		int i = 0;
		while (i == 0) {
			f();
		}
		return 0;
	}`)

	loop, ok := fn.Body[2].(ir.WhileLoop)
	require.True(t, ok)
	assert.Equal(t, ir.Equal, loop.Cond.Comparison)
}

func TestDerefAssignment(t *testing.T) {
	fn := parseOne(t, `int main() {
		*13123 = 1;
		return 0;
	}`)

	assert.Equal(t, ir.DerefAssignment{
		Target: ir.Constant{Value: ir.I32Value(13123)},
		Value:  ir.Constant{Value: ir.I32Value(1)},
	}, fn.Body[0])
}

func TestIndexedAssignment(t *testing.T) {
	fn := parseOne(t, `int main() {
		int* addr = 13120;
		addr[1] = 1;
		return 0;
	}`)

	assert.Equal(t, ir.DerefAssignment{
		Target: ir.Indexed{
			Base:   ir.Variable{Name: "addr"},
			Offset: ir.Constant{Value: ir.I32Value(1)},
		},
		Value: ir.Constant{Value: ir.I32Value(1)},
	}, fn.Body[2])
}

func TestIndexedLoad(t *testing.T) {
	fn := parseOne(t, `int main() {
		int* addr = 13120;
		int v = addr[1];
		return 0;
	}`)

	assign := fn.Body[3].(ir.Assignment)
	assert.Equal(t, ir.Dereference{Expr: ir.Indexed{
		Base:   ir.Variable{Name: "addr"},
		Offset: ir.Constant{Value: ir.I32Value(1)},
	}}, assign.Expr)
}

func TestArrayDeclaration(t *testing.T) {
	fn := parseOne(t, `int main() {
		int buf[5];
		buf[0] = 1;
		return 0;
	}`)

	decl, ok := fn.Body[0].(ir.Declaration)
	require.True(t, ok)
	assert.True(t, decl.Type.Equal(ir.Array(ir.I32(), 5)))
}

func TestArraySizeMustBeConstant(t *testing.T) {
	_, errs := ParseSource(`int main() {
		int n = 5;
		int buf[n];
		return 0;
	}`, "test")

	assert.True(t, errs.HasErrors())
}

func TestReferenceAndDereference(t *testing.T) {
	fn := parseOne(t, `int main() {
		int key = 0;
		f(&key);
		int v = *13120;
		return 0;
	}`)

	call := fn.Body[2].(ir.SingleExpression).Expr.(ir.Call)
	assert.Equal(t, []ir.Expression{ir.Reference{Name: "key"}}, call.Args)

	assign := fn.Body[4].(ir.Assignment)
	assert.Equal(t, ir.Dereference{Expr: ir.Constant{Value: ir.I32Value(13120)}}, assign.Expr)
}

func TestUndeclaredIdentifier(t *testing.T) {
	_, errs := ParseSource(`int main() {
		missing = 1;
		return 0;
	}`, "test")

	require.True(t, errs.HasErrors())
	assert.Contains(t, errs.Error(), "missing")
}

func TestPartialResultOnBrokenFunction(t *testing.T) {
	functions, errs := ParseSource(`int good() { return 0; }
int bad( { return 0; }
`, "test")

	assert.True(t, errs.HasErrors())
	require.NotEmpty(t, functions)
	assert.Equal(t, "good", functions[0].Name)
}

func TestErrorsCarryMetadata(t *testing.T) {
	_, errs := ParseSource("int main() {\n\tmissing = 1;\n\treturn 0;\n}", "file.c")

	require.True(t, errs.HasErrors())
	assert.Equal(t, "file.c", errs.Errors[0].Pos.File)
	assert.Equal(t, 2, errs.Errors[0].Pos.Line)
}
