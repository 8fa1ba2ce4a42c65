package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "trim and fold", input: "  Xin CHÀO  ", want: "xin chào"},
		{name: "vietnamese capitals", input: "ÁO CHO CHÓ", want: "áo cho chó"},
		{name: "d with stroke", input: "Đà Nẵng", want: "đà nẵng"},
		// "a" + combining grave composes to "à"
		{name: "decomposed input", input: "cha\u0300o", want: "chào"},
		{name: "fullwidth digits", input: "dưới ２００k", want: "dưới 200k"},
		{name: "whitespace only", input: " \t\n", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Áo Cho Chó Dưới 200K Màu Đỏ",
		"  Giao hàng tới SÀI GÒN bao lâu?  ",
		"ﬁne ＯＫ",
		"Straße",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestRuneLen(t *testing.T) {
	assert.Equal(t, 2, RuneLen("ừ"+"m"))
	assert.Equal(t, 4, RuneLen("vâng"))
}
