package postgres

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate aplica as migrations embutidas que ainda não rodaram.
func Migrate(pool *pgxpool.Pool, log zerolog.Logger) error {
	m, err := newMigrator(pool)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("aplicar migrations: %w", err)
	}
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("versão das migrations: %w", err)
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("migrations aplicadas")
	return nil
}

// MigrateDown desfaz n migrations (n <= 0 desfaz todas).
func MigrateDown(pool *pgxpool.Pool, n int) error {
	m, err := newMigrator(pool)
	if err != nil {
		return err
	}
	defer m.Close()

	if n <= 0 {
		err = m.Down()
	} else {
		err = m.Steps(-n)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("reverter migrations: %w", err)
	}
	return nil
}

func newMigrator(pool *pgxpool.Pool) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("abrir migrations: %w", err)
	}
	// Conexão própria: m.Close fecha o *sql.DB sem tocar no pool da API.
	db := stdlib.OpenDB(*pool.Config().ConnConfig)
	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return nil, fmt.Errorf("driver de migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return nil, fmt.Errorf("criar migrator: %w", err)
	}
	return m, nil
}
