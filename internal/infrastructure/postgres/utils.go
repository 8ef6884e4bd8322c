package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier é satisfeito por *pgxpool.Pool e por pgx.Tx; os repos aceitam qualquer um.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica se um erro é violação de constraint única (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isNoRows encapsula pgx.ErrNoRows para os Get que devolvem (nil, nil).
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// nullString grava NULL para string vazia.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// strOf lê colunas de texto opcionais.
func strOf(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// nullableID converte filtros opcionais (tenant, usuário) em parâmetro SQL; nil vira NULL.
func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

// isUUID informa se id é um uuid; ids inválidos não chegam ao banco.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
