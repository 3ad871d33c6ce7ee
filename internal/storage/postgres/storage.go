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
	"github.com/shopspring/decimal"

	domainErrors "github.com/boutiq/storefront/internal/domain/errors"
	"github.com/boutiq/storefront/internal/domain/model"
	"github.com/boutiq/storefront/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool the storage relies on. Kept as an
// interface so tests can substitute a pgxmock pool.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type productRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type adminRepository struct {
	storage *Storage
}

// Collisions on the daily order-number sequence are resolved by retrying
// the whole order transaction.
const orderNumberAttempts = 3

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
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
func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Admins() repository.AdminRepository {
	return &adminRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            slug TEXT UNIQUE NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            sku TEXT UNIQUE NOT NULL,
            category_id BIGINT,
            brand_id BIGINT,
            price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
            stock_quantity INT NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            order_number TEXT UNIQUE NOT NULL,
            customer_email TEXT NOT NULL,
            customer_name TEXT NOT NULL,
            customer_phone TEXT NOT NULL DEFAULT '',
            shipping_address TEXT NOT NULL DEFAULT '',
            shipping_city TEXT NOT NULL DEFAULT '',
            shipping_postal_code TEXT NOT NULL DEFAULT '',
            shipping_country TEXT NOT NULL DEFAULT 'France',
            total_amount NUMERIC(10,2) NOT NULL,
            payment_status TEXT NOT NULL DEFAULT 'pending',
            order_status TEXT NOT NULL DEFAULT 'pending',
            payment_ref TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            product_id BIGINT NOT NULL,
            product_name TEXT NOT NULL,
            quantity INT NOT NULL CHECK (quantity > 0),
            unit_price NUMERIC(10,2) NOT NULL,
            subtotal NUMERIC(10,2) NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS admins (
            id SERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(customer_email, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_pending ON orders(payment_status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --- ProductRepository implementation ---

const productColumns = `id, name, slug, description, sku, category_id, brand_id, price, stock_quantity, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.SKU, &p.CategoryID, &p.BrandID, &p.Price, &p.StockQuantity, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	return scanProduct(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug=$1`
	return scanProduct(r.storage.pool.QueryRow(ctx, query, slug))
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active=TRUE ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.SKU, &p.CategoryID, &p.BrandID, &p.Price, &p.StockQuantity, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (name, slug, description, sku, category_id, brand_id, price, stock_quantity, is_active)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   RETURNING id, created_at, updated_at`
	p := *product
	err := r.storage.pool.QueryRow(ctx, query, p.Name, p.Slug, p.Description, p.SKU, p.CategoryID, p.BrandID, p.Price, p.StockQuantity, p.Active).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	const query = `UPDATE products
                   SET name=$2, slug=$3, description=$4, sku=$5, category_id=$6, brand_id=$7, price=$8, is_active=$9, updated_at=NOW()
                   WHERE id=$1
                   RETURNING stock_quantity, created_at, updated_at`
	p := *product
	err := r.storage.pool.QueryRow(ctx, query, p.ID, p.Name, p.Slug, p.Description, p.SKU, p.CategoryID, p.BrandID, p.Price, p.Active).
		Scan(&p.StockQuantity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) UpdateStock(ctx context.Context, id int64, quantity int) error {
	const query = `UPDATE products SET stock_quantity=$2, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, order_number, customer_email, customer_name, customer_phone,
       shipping_address, shipping_city, shipping_postal_code, shipping_country,
       total_amount, payment_status, order_status, payment_ref, created_at, updated_at`

func scanOrderRow(row pgx.Row, o *model.Order) error {
	return row.Scan(&o.ID, &o.OrderNumber, &o.CustomerEmail, &o.CustomerName, &o.CustomerPhone,
		&o.ShippingAddress, &o.ShippingCity, &o.ShippingPostalCode, &o.ShippingCountry,
		&o.TotalAmount, &o.PaymentStatus, &o.OrderStatus, &o.PaymentRef, &o.CreatedAt, &o.UpdatedAt)
}

// Create persists an order with its items inside a single transaction.
// Every product row is locked before any write: either all stock decrements
// and inserts commit or the transaction rolls back as a whole.
func (r *orderRepository) Create(ctx context.Context, req model.NewOrder) (*model.Order, error) {
	var (
		order *model.Order
		err   error
	)
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order, err = r.createOnce(ctx, req)
		if err != nil && isUniqueViolation(err) {
			continue
		}
		break
	}
	return order, err
}

func (r *orderRepository) createOnce(ctx context.Context, req model.NewOrder) (*model.Order, error) {
	var order model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		total := decimal.Zero
		items := make([]model.OrderItem, 0, len(req.Items))

		for _, item := range req.Items {
			const lockQuery = `SELECT name, price, stock_quantity FROM products WHERE id=$1 FOR UPDATE`
			var (
				name  string
				price decimal.Decimal
				stock int
			)
			if err := tx.QueryRow(ctx, lockQuery, item.ProductID).Scan(&name, &price, &stock); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return &domainErrors.ProductNotFoundError{ProductID: item.ProductID}
				}
				return err
			}
			if stock < item.Quantity {
				return &domainErrors.InsufficientStockError{ProductName: name}
			}

			subtotal := price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(subtotal)
			items = append(items, model.OrderItem{
				ProductID:   item.ProductID,
				ProductName: name,
				Quantity:    item.Quantity,
				UnitPrice:   price,
				Subtotal:    subtotal,
			})
		}

		number, err := nextOrderNumber(ctx, tx, time.Now())
		if err != nil {
			return err
		}

		const insertOrder = `INSERT INTO orders
            (order_number, customer_email, customer_name, customer_phone,
             shipping_address, shipping_city, shipping_postal_code, shipping_country,
             total_amount, payment_status, order_status)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
            RETURNING id, created_at, updated_at`
		err = tx.QueryRow(ctx, insertOrder,
			number, req.CustomerEmail, req.CustomerName, req.CustomerPhone,
			req.ShippingAddress, req.ShippingCity, req.ShippingPostalCode, req.ShippingCountry,
			total, model.PaymentStatusPending, model.OrderStatusPending,
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
			const insertItem = `INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price, subtotal)
                                VALUES ($1, $2, $3, $4, $5, $6)
                                RETURNING id`
			if err := tx.QueryRow(ctx, insertItem, order.ID, items[i].ProductID, items[i].ProductName, items[i].Quantity, items[i].UnitPrice, items[i].Subtotal).Scan(&items[i].ID); err != nil {
				return err
			}

			// The row is already locked above, so the guard cannot fire here
			// under normal operation. It still backstops the invariant.
			const decrement = `UPDATE products SET stock_quantity = stock_quantity - $2, updated_at=NOW()
                               WHERE id=$1 AND stock_quantity >= $2`
			tag, err := tx.Exec(ctx, decrement, items[i].ProductID, items[i].Quantity)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return &domainErrors.InsufficientStockError{ProductName: items[i].ProductName}
			}
		}

		order.OrderNumber = number
		order.CustomerEmail = req.CustomerEmail
		order.CustomerName = req.CustomerName
		order.CustomerPhone = req.CustomerPhone
		order.ShippingAddress = req.ShippingAddress
		order.ShippingCity = req.ShippingCity
		order.ShippingPostalCode = req.ShippingPostalCode
		order.ShippingCountry = req.ShippingCountry
		order.TotalAmount = total
		order.PaymentStatus = model.PaymentStatusPending
		order.OrderStatus = model.OrderStatusPending
		order.Items = items
		order.ItemsCount = len(items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// nextOrderNumber assigns ORD-YYYYMMDD-NNN from the count of the day's
// orders. The unique index on order_number catches concurrent assignments
// of the same sequence; callers retry the transaction on that conflict.
func nextOrderNumber(ctx context.Context, tx pgx.Tx, now time.Time) (string, error) {
	day := now.UTC().Format("20060102")
	const query = `SELECT COUNT(*) FROM orders WHERE order_number LIKE $1`
	var count int
	if err := tx.QueryRow(ctx, query, "ORD-"+day+"-%").Scan(&count); err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%s-%03d", day, count+1), nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	var order model.Order
	if err := scanOrderRow(r.storage.pool.QueryRow(ctx, query, id), &order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadItems(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number=$1`
	var order model.Order
	if err := scanOrderRow(r.storage.pool.QueryRow(ctx, query, number), &order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadItems(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) loadItems(ctx context.Context, order *model.Order) error {
	const query = `SELECT id, order_id, product_id, product_name, quantity, unit_price, subtotal
                   FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	order.ItemsCount = len(order.Items)
	return nil
}

func (r *orderRepository) ListByEmail(ctx context.Context, email string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_email=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrderRow(rows, &o); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT o.id, o.order_number, o.customer_email, o.customer_name, o.customer_phone,
                          o.shipping_address, o.shipping_city, o.shipping_postal_code, o.shipping_country,
                          o.total_amount, o.payment_status, o.order_status, o.payment_ref, o.created_at, o.updated_at,
                          COUNT(oi.id) AS items_count
                   FROM orders o
                   LEFT JOIN order_items oi ON oi.order_id = o.id
                   GROUP BY o.id
                   ORDER BY o.created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerEmail, &o.CustomerName, &o.CustomerPhone,
			&o.ShippingAddress, &o.ShippingCity, &o.ShippingPostalCode, &o.ShippingCountry,
			&o.TotalAmount, &o.PaymentStatus, &o.OrderStatus, &o.PaymentRef, &o.CreatedAt, &o.UpdatedAt,
			&o.ItemsCount); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	const query = `UPDATE orders SET order_status=$2, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// MarkPaid applies the pending->paid transition at most once. The update is
// conditional on the current payment status, so redelivered confirmations
// and the verify/webhook race both collapse to a single applied transition.
func (r *orderRepository) MarkPaid(ctx context.Context, orderNumber, paymentRef string) (*model.Order, bool, error) {
	const query = `UPDATE orders
                   SET payment_status=$2, payment_ref=$3,
                       order_status = CASE WHEN order_status=$4 THEN $5 ELSE order_status END,
                       updated_at=NOW()
                   WHERE order_number=$1 AND payment_status=$6`
	tag, err := r.storage.pool.Exec(ctx, query, orderNumber,
		model.PaymentStatusPaid, paymentRef,
		model.OrderStatusPending, model.OrderStatusProcessing,
		model.PaymentStatusPending)
	if err != nil {
		return nil, false, err
	}

	order, err := r.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, false, err
	}
	return order, tag.RowsAffected() == 1, nil
}

// ExpirePending cancels unpaid orders older than the cutoff and returns
// their reserved stock to the catalog, one transaction per sweep.
func (r *orderRepository) ExpirePending(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	const selectQuery = `SELECT id, order_number FROM orders
                         WHERE payment_status='pending' AND order_status='pending' AND created_at < $1
                         ORDER BY created_at
                         LIMIT $2
                         FOR UPDATE SKIP LOCKED`

	var expired []model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, cutoff, limit)
		if err != nil {
			return err
		}

		var candidates []model.Order
		for rows.Next() {
			var o model.Order
			if err := rows.Scan(&o.ID, &o.OrderNumber); err != nil {
				rows.Close()
				return err
			}
			candidates = append(candidates, o)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for i := range candidates {
			const restock = `UPDATE products p
                             SET stock_quantity = p.stock_quantity + oi.quantity, updated_at=NOW()
                             FROM order_items oi
                             WHERE oi.order_id=$1 AND oi.product_id = p.id`
			if _, err := tx.Exec(ctx, restock, candidates[i].ID); err != nil {
				return err
			}

			const cancel = `UPDATE orders SET order_status=$2, payment_status=$3, updated_at=NOW() WHERE id=$1`
			if _, err := tx.Exec(ctx, cancel, candidates[i].ID, model.OrderStatusCancelled, model.PaymentStatusFailed); err != nil {
				return err
			}
			candidates[i].OrderStatus = model.OrderStatusCancelled
			candidates[i].PaymentStatus = model.PaymentStatusFailed
		}

		expired = candidates
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expired, nil
}

// --- AdminRepository implementation ---

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	const query = `SELECT id, email, password_hash, created_at FROM admins WHERE email=$1`
	var a model.Admin
	err := r.storage.pool.QueryRow(ctx, query, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
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
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
