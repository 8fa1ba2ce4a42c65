package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadProductsCSV(t *testing.T) {
	input := "id,name,category,price,color,stock,description,pet_type,size,material\n" +
		"P001,Áo hoodie cho chó,áo,150000,đỏ,12,Ấm áp,chó,m,cotton\n" +
		"P002,\"Váy công chúa, có nơ\",váy,250000,hồng,,Dễ thương,mèo,S,voan\n"

	products, err := ReadProductsCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "P001", products[0].ID)
	assert.Equal(t, 150000, products[0].Price)
	assert.Equal(t, 12, products[0].Stock)
	assert.EqualValues(t, "M", products[0].Size)
	assert.Equal(t, "Váy công chúa, có nơ", products[1].Name)
	assert.Equal(t, 0, products[1].Stock)
}

func TestReadProductsCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "missing price column", input: "id,name\nP1,Áo\n"},
		{name: "bad price", input: "id,name,price\nP1,Áo,rẻ\n"},
		{name: "bad stock", input: "id,name,price,stock\nP1,Áo,100,nhiều\n"},
		{name: "missing id", input: "id,name,price\n,Áo,100\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadProductsCSV(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}
