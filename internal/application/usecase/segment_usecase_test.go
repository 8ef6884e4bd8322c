package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/domain"
	"github.com/cordobafintech/cobranca-api/internal/domain/repository"
)

func newSegmentUC() (*SegmentUseCase, *fakeSegments, *fakeContratos) {
	segs, contratos := newFakeSegments(), newFakeContratos()
	return NewSegmentUseCase(segs, contratos), segs, contratos
}

func TestSegment_Create_Validacoes(t *testing.T) {
	uc, _, _ := newSegmentUC()
	ctx := context.Background()
	user := gerente(1)

	cases := []struct {
		name string
		in   dto.CreateSegmentRequest
		msg  string
	}{
		{"negativo", dto.CreateSegmentRequest{Name: "X", MinDaysOverdue: -1, MaxDaysOverdue: 10}, "Dias de atraso inválidos"},
		{"invertido", dto.CreateSegmentRequest{Name: "X", MinDaysOverdue: 30, MaxDaysOverdue: 10}, "Intervalo inválido"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, user, nil, tc.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}

func TestSegment_Create_Sobreposicao(t *testing.T) {
	uc, _, _ := newSegmentUC()
	ctx := context.Background()
	user := gerente(1)

	_, err := uc.Create(ctx, user, nil, dto.CreateSegmentRequest{Name: "D+30", MinDaysOverdue: 1, MaxDaysOverdue: 30})
	require.NoError(t, err)

	_, err = uc.Create(ctx, user, nil, dto.CreateSegmentRequest{Name: "D+60", MinDaysOverdue: 30, MaxDaysOverdue: 60})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, "Intervalo sobrepõe o segmento D+30", err.Error())

	// outro tenant não conflita
	_, err = uc.Create(ctx, gerente(2), nil, dto.CreateSegmentRequest{Name: "D+60", MinDaysOverdue: 30, MaxDaysOverdue: 60})
	assert.NoError(t, err)
}

func TestSegment_Create_DiretorSemTenant(t *testing.T) {
	uc, _, _ := newSegmentUC()
	_, err := uc.Create(context.Background(), diretor(), nil, dto.CreateSegmentRequest{Name: "X", MinDaysOverdue: 0, MaxDaysOverdue: 5})
	assert.ErrorIs(t, err, domain.ErrNoTenant)

	out, err := uc.Create(context.Background(), diretor(), ptr(int64(3)), dto.CreateSegmentRequest{Name: "X", MinDaysOverdue: 0, MaxDaysOverdue: 5})
	require.NoError(t, err)
	assert.Equal(t, "X", out.Name)
}

func TestSegment_Simulate(t *testing.T) {
	uc, _, _ := newSegmentUC()
	ctx := context.Background()
	user := gerente(1)

	_, err := uc.Simulate(ctx, user, nil, -5)
	require.Error(t, err)
	assert.Equal(t, "Dias inválidos", err.Error())

	out, err := uc.Simulate(ctx, user, nil, 45)
	require.NoError(t, err)
	assert.Equal(t, "31 a 60 dias", out.Segment)

	_, err = uc.Create(ctx, user, nil, dto.CreateSegmentRequest{Name: "Cobrança amigável", MinDaysOverdue: 40, MaxDaysOverdue: 50})
	require.NoError(t, err)

	out, err = uc.Simulate(ctx, user, nil, 45)
	require.NoError(t, err)
	assert.Equal(t, 45, out.DaysOverdue)
	assert.Equal(t, "Cobrança amigável", out.Segment)

	out, err = uc.Simulate(ctx, user, nil, 120)
	require.NoError(t, err)
	assert.Equal(t, "Acima de 90 dias", out.Segment)
}

func TestSegment_DeleteOutroTenant(t *testing.T) {
	uc, segs, _ := newSegmentUC()
	ctx := context.Background()

	s, err := uc.Create(ctx, gerente(1), nil, dto.CreateSegmentRequest{Name: "A", MinDaysOverdue: 0, MaxDaysOverdue: 10})
	require.NoError(t, err)

	err = uc.Delete(ctx, gerente(2), s.ID)
	assert.ErrorIs(t, err, domain.ErrTenantDenied)

	require.NoError(t, uc.Delete(ctx, gerente(1), s.ID))
	assert.Empty(t, segs.byID)

	err = uc.Delete(ctx, gerente(1), s.ID)
	assert.ErrorIs(t, err, domain.ErrSegmentNotFound)
}

func TestSegment_Contracts(t *testing.T) {
	uc, _, contratos := newSegmentUC()
	ctx := context.Background()
	venc := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	contratos.atrasos = []repository.ContratoAtraso{
		{ContratoID: 1, NumeroContrato: "C1", ClienteNome: "João", CPF: "123.456.789-01", Status: "atrasado", ValorPendente: decimal.NewFromInt(100), DiasAtraso: 15, DataVencimento: venc},
		{ContratoID: 2, NumeroContrato: "C2", ClienteNome: "Maria", CPF: "987.654.321-00", Status: "atrasado", ValorPendente: decimal.NewFromInt(50), DiasAtraso: 70, DataVencimento: venc},
	}

	s, err := uc.Create(ctx, gerente(1), nil, dto.CreateSegmentRequest{Name: "Até 30", MinDaysOverdue: 1, MaxDaysOverdue: 30})
	require.NoError(t, err)

	list, err := uc.Contracts(ctx, gerente(1), s.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "C1", list[0].NumeroContrato)
	assert.Equal(t, "***.***.*789-01", list[0].CPFMascarado)
	assert.Equal(t, "2026-01-10", list[0].DataVencimento)
	assert.Equal(t, int64(1), contratos.lastTenant)
	assert.Equal(t, 1, contratos.lastMin)
	assert.Equal(t, 30, contratos.lastMax)
}
