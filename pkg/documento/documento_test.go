package documento

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCPF(t *testing.T) {
	got, err := FormatCPF("529 982 247 25")
	require.NoError(t, err)
	assert.Equal(t, "529.982.247-25", got)

	_, err = FormatCPF("123.456.789")
	assert.ErrorIs(t, err, ErrCPFLength)
}

func TestFormatCNPJ(t *testing.T) {
	got, err := FormatCNPJ("11222333000181")
	require.NoError(t, err)
	assert.Equal(t, "11.222.333/0001-81", got)

	_, err = FormatCNPJ("1")
	assert.ErrorIs(t, err, ErrCNPJLength)
}

func TestValidateCPF(t *testing.T) {
	assert.NoError(t, ValidateCPF("529.982.247-25"))
	assert.Error(t, ValidateCPF("529.982.247-24"))
	assert.Error(t, ValidateCPF("111.111.111-11"))
	assert.ErrorIs(t, ValidateCPF("5299"), ErrCPFLength)
}

func TestValidateCNPJ(t *testing.T) {
	assert.NoError(t, ValidateCNPJ("11.222.333/0001-81"))
	assert.Error(t, ValidateCNPJ("11.222.333/0001-80"))
	assert.Error(t, ValidateCNPJ("11.111.111/1111-11"))
}

func TestCompleteCPF(t *testing.T) {
	got, err := CompleteCPF("529982247")
	require.NoError(t, err)
	assert.Equal(t, "529.982.247-25", got)
	assert.NoError(t, ValidateCPF(got))

	_, err = CompleteCPF("12")
	assert.Error(t, err)
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "12345", Digits("a1.2-3/4 5ç"))
	assert.Empty(t, Digits(""))
}
