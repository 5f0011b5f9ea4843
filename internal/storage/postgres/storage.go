package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
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

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type scanner interface {
	Scan(dest ...any) error
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
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

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'user',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price DOUBLE PRECISION NOT NULL,
            image TEXT NOT NULL DEFAULT '',
            category TEXT NOT NULL DEFAULT '',
            stock INT[] NOT NULL DEFAULT '{0,0,0,0,0}',
            sizes TEXT[] NOT NULL DEFAULT '{}',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            items JSONB NOT NULL,
            shipping JSONB NOT NULL,
            payment_id TEXT NOT NULL DEFAULT '',
            payment_status TEXT NOT NULL DEFAULT '',
            items_price DOUBLE PRECISION NOT NULL,
            tax_price DOUBLE PRECISION NOT NULL,
            shipping_price DOUBLE PRECISION NOT NULL,
            total_price DOUBLE PRECISION NOT NULL,
            status TEXT NOT NULL,
            paid_at TIMESTAMPTZ NOT NULL,
            delivered_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

const selectUser = `SELECT id, name, email, password_hash, role, created_at FROM users`

func scanUser(row scanner) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (name, email, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	u := *user
	if u.Role == "" {
		u.Role = model.RoleUser
	}
	err := r.storage.pool.QueryRow(ctx, query, u.Name, u.Email, u.PasswordHash, u.Role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.storage.pool.QueryRow(ctx, selectUser+` WHERE email=$1`, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(r.storage.pool.QueryRow(ctx, selectUser+` WHERE id=$1`, id))
}

// --- OrderRepository implementation ---

const selectOrder = `SELECT id, user_id, items, shipping, payment_id, payment_status,
                     items_price, tax_price, shipping_price, total_price, status,
                     paid_at, delivered_at, created_at FROM orders`

func scanOrder(row scanner) (*model.Order, error) {
	var (
		o                   model.Order
		items, shippingJSON []byte
	)
	err := row.Scan(&o.ID, &o.UserID, &items, &shippingJSON, &o.Payment.ID, &o.Payment.Status,
		&o.ItemsPrice, &o.TaxPrice, &o.ShippingPrice, &o.TotalPrice, &o.Status,
		&o.PaidAt, &o.DeliveredAt, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order %d items: %w", o.ID, err)
	}
	if err := json.Unmarshal(shippingJSON, &o.Shipping); err != nil {
		return nil, fmt.Errorf("decode order %d shipping: %w", o.ID, err)
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (user_id, items, shipping, payment_id, payment_status,
                   items_price, tax_price, shipping_price, total_price, status, paid_at, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
                   RETURNING id`

	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	shipping, err := json.Marshal(order.Shipping)
	if err != nil {
		return nil, fmt.Errorf("encode shipping: %w", err)
	}

	o := *order
	err = r.storage.pool.QueryRow(ctx, query, o.UserID, items, shipping, o.Payment.ID, o.Payment.Status,
		o.ItemsPrice, o.TaxPrice, o.ShippingPrice, o.TotalPrice, o.Status, o.PaidAt, o.CreatedAt).Scan(&o.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, fmt.Errorf("%w: user %d", domainErrors.ErrNotFound, o.UserID)
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	return scanOrder(r.storage.pool.QueryRow(ctx, selectOrder+` WHERE id=$1`, id))
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return r.list(ctx, selectOrder+` WHERE user_id=$1 ORDER BY created_at DESC, id DESC`, userID)
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	return r.list(ctx, selectOrder+` ORDER BY created_at DESC, id DESC`)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, from, to model.OrderStatus, deliveredAt *time.Time) error {
	const query = `UPDATE orders SET status=$1, delivered_at=COALESCE($2, delivered_at) WHERE id=$3 AND status=$4`
	tag, err := r.storage.pool.Exec(ctx, query, to, deliveredAt, id, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.storage.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id=$1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domainErrors.ErrNotFound
	}
	return fmt.Errorf("%w: order %d is no longer %s", domainErrors.ErrInvalidState, id, from)
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- ProductRepository implementation ---

const selectProduct = `SELECT id, name, description, price, image, category, stock, sizes, created_at FROM products`

func scanProduct(row scanner) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.Category, &p.Stock, &p.Sizes, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (name, description, price, image, category, stock, sizes)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING id, created_at`
	p := *product
	err := r.storage.pool.QueryRow(ctx, query, p.Name, p.Description, p.Price, p.Image, p.Category, p.Stock, p.Sizes).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	return scanProduct(r.storage.pool.QueryRow(ctx, selectProduct+` WHERE id=$1`, id))
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	rows, err := r.storage.pool.Query(ctx, selectProduct+` ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	const query = `UPDATE products SET name=$1, description=$2, price=$3, image=$4, category=$5, stock=$6, sizes=$7
                   WHERE id=$8`
	p := product
	tag, err := r.storage.pool.Exec(ctx, query, p.Name, p.Description, p.Price, p.Image, p.Category, p.Stock, p.Sizes, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) AdjustStock(ctx context.Context, productID int64, sizeIndex, quantity int) (*model.Product, error) {
	var product *model.Product
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		p, err := scanProduct(tx.QueryRow(ctx, selectProduct+` WHERE id=$1 FOR UPDATE`, productID))
		if err != nil {
			return err
		}

		p.Stock, p.Sizes = model.DecrementStock(p.Stock, sizeIndex, quantity)

		const update = `UPDATE products SET stock=$1, sizes=$2 WHERE id=$3`
		if _, err := tx.Exec(ctx, update, p.Stock, p.Sizes, productID); err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.pool.Ping(ctx); err != nil {
		s.logger.Warn("postgres ping failed", slog.Any("error", err))
		return err
	}
	return nil
}
