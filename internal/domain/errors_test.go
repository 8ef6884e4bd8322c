package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_CategoriaViaErrorsIs(t *testing.T) {
	err := fmt.Errorf("cadastro: %w", ErrEmailAlreadyExists)

	assert.True(t, errors.Is(err, ErrEmailAlreadyExists))
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "Email já cadastrado", Detail(err, "x"))
}

func TestErrorf(t *testing.T) {
	err := Errorf(ErrConflict, "Intervalo sobrepõe o segmento %s", "D+30")
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "Intervalo sobrepõe o segmento D+30", err.Error())
}

func TestDetail_Fallback(t *testing.T) {
	assert.Equal(t, "Erro interno do servidor", Detail(errors.New("pgx: boom"), "Erro interno do servidor"))
}
