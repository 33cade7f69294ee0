package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/dispatch/internal/domain/errors"
	"github.com/polkiloo/dispatch/internal/domain/repository"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNumericOutOfRange   = "22003"
)

// querier is satisfied by both the pool and an open transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxPool interface {
	querier
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

var (
	_ repository.Factory    = (*Storage)(nil)
	_ repository.Transactor = (*Storage)(nil)
)

// New creates storage with schema initialization. maxConns <= 0 keeps the pgx default.
func New(ctx context.Context, dsn string, maxConns int32, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories outside of a transaction.
func (s *Storage) Customers() repository.CustomerRepository {
	return &customerRepository{db: s.pool}
}

func (s *Storage) Phones() repository.PhoneRepository {
	return &phoneRepository{db: s.pool}
}

func (s *Storage) Addresses() repository.AddressRepository {
	return &addressRepository{db: s.pool}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{db: s.pool}
}

func (s *Storage) Deliveries() repository.DeliveryRepository {
	return &deliveryRepository{db: s.pool}
}

// txFactory hands out repositories bound to one transaction.
type txFactory struct {
	tx pgx.Tx
}

func (f txFactory) Customers() repository.CustomerRepository { return &customerRepository{db: f.tx} }
func (f txFactory) Phones() repository.PhoneRepository       { return &phoneRepository{db: f.tx} }
func (f txFactory) Addresses() repository.AddressRepository  { return &addressRepository{db: f.tx} }
func (f txFactory) Orders() repository.OrderRepository       { return &orderRepository{db: f.tx} }
func (f txFactory) Deliveries() repository.DeliveryRepository {
	return &deliveryRepository{db: f.tx}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS clientes (
            idCliente BIGSERIAL PRIMARY KEY,
            nomeCliente TEXT NOT NULL,
            sobrenomeCliente TEXT NOT NULL,
            cpfCliente CHAR(11) NOT NULL UNIQUE,
            emailCliente TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS telefones (
            idTelefone BIGSERIAL PRIMARY KEY,
            idClienteFK BIGINT NOT NULL REFERENCES clientes(idCliente),
            numero TEXT NOT NULL,
            tipoTelefone TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS enderecos (
            idEndereco BIGSERIAL PRIMARY KEY,
            idClienteFK BIGINT NOT NULL REFERENCES clientes(idCliente),
            logradouro TEXT NOT NULL,
            numero TEXT NOT NULL,
            bairro TEXT NOT NULL,
            cidade TEXT NOT NULL,
            estado TEXT NOT NULL,
            cep CHAR(8) NOT NULL,
            complemento TEXT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS pedidos (
            idPedido BIGSERIAL PRIMARY KEY,
            idCliente BIGINT NOT NULL REFERENCES clientes(idCliente),
            urgencia TEXT NOT NULL,
            distanciaKM NUMERIC(10,4) NOT NULL,
            pesoCargaKG NUMERIC(10,4) NOT NULL,
            valorKM NUMERIC(10,4) NOT NULL,
            valorKG NUMERIC(10,4) NOT NULL,
            dataPedido TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS entregas (
            idEntrega BIGSERIAL PRIMARY KEY,
            idPedidoFK BIGINT NOT NULL UNIQUE REFERENCES pedidos(idPedido),
            valorDistancia NUMERIC(18,8) NOT NULL,
            valorPeso NUMERIC(18,8) NOT NULL,
            acrescimo NUMERIC(18,8) NOT NULL,
            desconto NUMERIC(18,8) NOT NULL,
            taxaExtra NUMERIC(18,8) NOT NULL,
            valorTotal NUMERIC(18,8) NOT NULL,
            statusEntrega TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_telefones_cliente ON telefones(idClienteFK)`,
		`CREATE INDEX IF NOT EXISTS idx_enderecos_cliente ON enderecos(idClienteFK)`,
		`CREATE INDEX IF NOT EXISTS idx_pedidos_cliente ON pedidos(idCliente)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// WithinTransaction runs fn with repositories bound to a single transaction.
// It commits when fn returns nil and rolls back on error or panic.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(repository.Factory) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domainErrors.Persistence("begin transaction", err)
	}
	defer func() {
		if p := recover(); p != nil {
			s.rollback(ctx, tx)
			panic(p)
		}
		if err != nil {
			s.rollback(ctx, tx)
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			err = domainErrors.Persistence("commit transaction", commitErr)
		}
	}()

	err = fn(txFactory{tx: tx})
	return err
}

func (s *Storage) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		s.logger.Error("transaction rollback failed", slog.Any("error", err))
	}
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// mapError translates driver errors into domain errors. subject names the
// row being touched, e.g. "order 7".
func mapError(err error, subject string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErrors.NotFoundf("%s not found", subject)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return domainErrors.Conflictf("%s already exists (%s)", subject, pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return domainErrors.NotFoundf("%s references a missing row (%s)", subject, pgErr.ConstraintName)
		case codeNumericOutOfRange:
			return domainErrors.Validationf("%s has a value out of range", subject)
		}
	}
	return domainErrors.Persistence(subject, err)
}

type scanner interface {
	Scan(dest ...any) error
}

func collect[T any](rows pgx.Rows, err error, subject string, scan func(scanner, *T) error) ([]T, error) {
	if err != nil {
		return nil, mapError(err, subject)
	}
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		var item T
		if err := scan(rows, &item); err != nil {
			return nil, mapError(err, subject)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, subject)
	}
	return result, nil
}
