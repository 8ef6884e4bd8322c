package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskCPF(t *testing.T) {
	assert.Equal(t, "***.***.*789-01", MaskCPF("123.456.789-01"))
	assert.Equal(t, "***.***.*789-09", MaskCPF("12345678909"))
	assert.Equal(t, "***.***.*789-09", MaskCPF("123.456.789-09"))
	assert.Equal(t, "***.***.***-**", MaskCPF("123"))
	assert.Equal(t, "***.***.***-**", MaskCPF(""))
}

func TestCliente_Idade(t *testing.T) {
	ref := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	c := &Cliente{}
	assert.Nil(t, c.Idade(ref))

	nasc := time.Date(1990, 7, 1, 0, 0, 0, 0, time.UTC)
	c.DataNascimento = &nasc
	require.NotNil(t, c.Idade(ref))
	assert.Equal(t, 33, *c.Idade(ref), "aniversário ainda não chegou")

	nasc = time.Date(1990, 6, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 34, *c.Idade(ref))
}

func TestUser_HasDataAccess(t *testing.T) {
	tenant := int64(1)
	assert.True(t, (&User{Role: RoleDiretor}).HasDataAccess())
	assert.False(t, (&User{Role: RoleOperador}).HasDataAccess())
	assert.True(t, (&User{Role: RoleOperador, TenantID: &tenant}).HasDataAccess())
}

func TestSegmento_Overlaps(t *testing.T) {
	s := &Segmento{MinDaysOverdue: 31, MaxDaysOverdue: 60}
	assert.True(t, s.Overlaps(60, 90))
	assert.True(t, s.Overlaps(0, 31))
	assert.False(t, s.Overlaps(61, 90))
	assert.True(t, s.Contains(45))
	assert.Equal(t, "Acima de 90 dias", DefaultSegmentFor(91))
	assert.Equal(t, "Até 30 dias", DefaultSegmentFor(0))
}
