package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpMetaTable(t *testing.T) {
	for c := OpCode(0); c < numOpCodes; c++ {
		meta := c.Meta()
		assert.Equal(t, c, meta.Code, "opcode %d", c)
		assert.NotEmpty(t, meta.Name, "opcode %d", c)
		if meta.Illegal {
			continue
		}
		assert.Equal(t, 1, meta.Pushes, "%s", meta.Name)
		assert.Equal(t, meta.Fused, c >= OpInc, "%s", meta.Name)
	}

	assert.True(t, OpCode(255).Meta().Illegal)
	assert.False(t, OpInvalid.Valid())
	assert.True(t, OpAddAddLit.Valid())
}

func TestOpCodeString(t *testing.T) {
	assert.Equal(t, "LIT", OpLit.String())
	assert.Equal(t, "ADDADDLIT", OpAddAddLit.String())
	assert.Equal(t, "OP(0)", OpInvalid.String())
	assert.Equal(t, "OP(200)", OpCode(200).String())
}

func TestLookupOpCode(t *testing.T) {
	tests := []struct {
		name   string
		code   OpCode
		wantOK bool
	}{
		{"lit", OpLit, true},
		{"LIT", OpLit, true},
		{"Div", OpDiv, true},
		{"inc", OpInc, true},
		{"addaddlit", OpAddAddLit, true},
		{"invalid", OpInvalid, false},
		{"illegal", OpInvalid, false},
		{"push", OpInvalid, false},
		{"", OpInvalid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := LookupOpCode(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op       Op
		expected string
	}{
		{Lit(2.5), "LIT 2.5"},
		{Lit(-1), "LIT -1"},
		{Lit(1e21), "LIT 1e+21"},
		{Add, "ADD"},
		{Div, "DIV"},
		{Op{Code: OpInc}, "INC"},
		{Op{Code: OpMulLit, Value: 3}, "MULLIT 3"},
		{Op{Code: 99, Value: 3}, "OP(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.op.String())
		})
	}
}
