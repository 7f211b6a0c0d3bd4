package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/exprkit/expr"
)

func TestEncode(t *testing.T) {
	p := Compile(expr.Add(expr.Lit(1), expr.Mul(expr.Lit(2), expr.Lit(3))))
	b := Encode(p)
	assert.Equal(t, []byte{byte(OpLit), byte(OpLit), byte(OpLit), byte(OpMul), byte(OpAdd)}, b.Code)
	assert.Equal(t, []float64{1, 2, 3}, b.Consts)

	v, err := RunBytecode(b)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)
}

func TestEncodeDecodeFused(t *testing.T) {
	p := Program{Lit(1), {Code: OpAddLit, Value: 2}, {Code: OpInc}, Lit(3), Mul}
	b := Encode(p)
	assert.Equal(t, []float64{1, 2, 3}, b.Consts)

	decoded, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestDecodeCorpus(t *testing.T) {
	for _, e := range randomCorpus(8, 100, 5) {
		p := Compile(e)
		decoded, err := Decode(Encode(p))
		require.NoError(t, err)
		assert.Equal(t, len(p), len(decoded))
		for i := range p {
			assert.Equal(t, p[i].Code, decoded[i].Code)
			assert.True(t, sameFloat(p[i].Value, decoded[i].Value))
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		b    Bytecode
		err  error
	}{
		{"missing constant", Bytecode{Code: []byte{byte(OpLit), byte(OpLit)}, Consts: []float64{1}}, ErrConstTable},
		{"extra constant", Bytecode{Code: []byte{byte(OpLit)}, Consts: []float64{1, 2}}, ErrConstTable},
		{"unknown opcode", Bytecode{Code: []byte{byte(OpLit), 0xff}, Consts: []float64{1}}, ErrUnknownOpcode},
		{"invalid opcode", Bytecode{Code: []byte{0}}, ErrUnknownOpcode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.b)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestRunBytecodeErrors(t *testing.T) {
	_, err := RunBytecode(Bytecode{Code: []byte{byte(OpLit)}})
	assert.ErrorIs(t, err, ErrConstTable)

	_, err = RunBytecode(Bytecode{Code: []byte{byte(OpLit), byte(OpAdd)}, Consts: []float64{1}})
	assert.ErrorIs(t, err, ErrStackUnderflow)

	_, err = RunBytecode(Bytecode{})
	assert.ErrorIs(t, err, ErrUnbalanced)

	_, err = RunBytecode(Bytecode{Code: []byte{byte(OpLit)}, Consts: []float64{1, 2}})
	var rerr *RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.ErrorIs(t, err, ErrConstTable)
	assert.Equal(t, 1, rerr.IP)
	assert.Nil(t, rerr.Op)
}
