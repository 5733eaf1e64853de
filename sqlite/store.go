// Package sqlite provides a SQLite-backed implementation of lena.Store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/lena"
	"github.com/etnz/lena/date"
	"github.com/etnz/lena/sqlite/migrations"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// Filename is the database file name inside a data folder.
const Filename = "lena.db"

// Store persists records in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ lena.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite record store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// PutProperty inserts or replaces one property.
func (s *Store) PutProperty(ctx context.Context, p lena.Property) (lena.Property, error) {
	if err := s.ready(ctx); err != nil {
		return lena.Property{}, err
	}
	if err := p.Validate(); err != nil {
		return lena.Property{}, err
	}
	p = p.Stamp(s.now())
	photos := p.Photos
	if photos == nil {
		photos = []string{}
	}
	photosJSON, err := json.Marshal(photos)
	if err != nil {
		return lena.Property{}, fmt.Errorf("encode photos: %w", err)
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO properties (id, name, address, currency, price, rent, expenses, photos, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   address = excluded.address,
		   currency = excluded.currency,
		   price = excluded.price,
		   rent = excluded.rent,
		   expenses = excluded.expenses,
		   photos = excluded.photos,
		   updated_at = excluded.updated_at`,
		p.ID,
		p.Name,
		p.Address,
		p.Currency(),
		p.Price.Amount().String(),
		p.Rent.Amount().String(),
		p.Expenses.Amount().String(),
		string(photosJSON),
		toMillis(p.UpdatedAt),
	)
	if err != nil {
		return lena.Property{}, fmt.Errorf("put property: %w", err)
	}
	return p, nil
}

// Properties returns all properties.
func (s *Store) Properties(ctx context.Context) ([]lena.Property, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, address, currency, price, rent, expenses, photos, updated_at
		   FROM properties
		  ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	var list []lena.Property
	for rows.Next() {
		var (
			p                     lena.Property
			currency, photosJSON  string
			price, rent, expenses decimal.Decimal
			updatedAt             int64
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &currency, &price, &rent, &expenses, &photosJSON, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		if err := json.Unmarshal([]byte(photosJSON), &p.Photos); err != nil {
			return nil, fmt.Errorf("decode photos of property %q: %w", p.ID, err)
		}
		if len(p.Photos) == 0 {
			p.Photos = nil
		}
		p.Price = lena.M(price, currency)
		p.Rent = lena.M(rent, currency)
		p.Expenses = lena.M(expenses, currency)
		p.UpdatedAt = fromMillis(updatedAt)
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return list, nil
}

// DeleteProperty removes one property. Purchases referencing it are kept.
func (s *Store) DeleteProperty(ctx context.Context, id string) error {
	return s.delete(ctx, "properties", id)
}

// PutInvestor inserts or replaces one investor.
func (s *Store) PutInvestor(ctx context.Context, i lena.Investor) (lena.Investor, error) {
	if err := s.ready(ctx); err != nil {
		return lena.Investor{}, err
	}
	if err := i.Validate(); err != nil {
		return lena.Investor{}, err
	}
	i = i.Stamp(s.now())
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO investors (id, name, email, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   email = excluded.email,
		   created_at = excluded.created_at`,
		i.ID,
		i.Name,
		i.Email,
		toMillis(i.CreatedAt),
	)
	if err != nil {
		return lena.Investor{}, fmt.Errorf("put investor: %w", err)
	}
	return i, nil
}

// Investors returns all investors.
func (s *Store) Investors(ctx context.Context) ([]lena.Investor, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, name, email, created_at FROM investors ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list investors: %w", err)
	}
	defer rows.Close()

	var list []lena.Investor
	for rows.Next() {
		var i lena.Investor
		var createdAt int64
		if err := rows.Scan(&i.ID, &i.Name, &i.Email, &createdAt); err != nil {
			return nil, fmt.Errorf("scan investor: %w", err)
		}
		i.CreatedAt = fromMillis(createdAt)
		list = append(list, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate investors: %w", err)
	}
	return list, nil
}

// DeleteInvestor removes one investor. Purchases referencing it are kept.
func (s *Store) DeleteInvestor(ctx context.Context, id string) error {
	return s.delete(ctx, "investors", id)
}

// PutPurchase inserts or replaces one purchase. References are not checked.
func (s *Store) PutPurchase(ctx context.Context, p lena.Purchase) (lena.Purchase, error) {
	if err := s.ready(ctx); err != nil {
		return lena.Purchase{}, err
	}
	if err := p.Validate(); err != nil {
		return lena.Purchase{}, err
	}
	p = p.Stamp(s.now())
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO purchases (id, investor_id, property_id, date, units, currency, amount, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   investor_id = excluded.investor_id,
		   property_id = excluded.property_id,
		   date = excluded.date,
		   units = excluded.units,
		   currency = excluded.currency,
		   amount = excluded.amount,
		   created_at = excluded.created_at`,
		p.ID,
		p.InvestorID,
		p.PropertyID,
		p.Date.String(),
		p.Units.String(),
		p.Amount.Currency(),
		p.Amount.Amount().String(),
		toMillis(p.CreatedAt),
	)
	if err != nil {
		return lena.Purchase{}, fmt.Errorf("put purchase: %w", err)
	}
	return p, nil
}

// Purchases returns all purchases.
func (s *Store) Purchases(ctx context.Context) ([]lena.Purchase, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, investor_id, property_id, date, units, currency, amount, created_at
		   FROM purchases
		  ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var list []lena.Purchase
	for rows.Next() {
		var (
			p             lena.Purchase
			day, currency string
			units, amount decimal.Decimal
			createdAt     int64
		)
		if err := rows.Scan(&p.ID, &p.InvestorID, &p.PropertyID, &day, &units, &currency, &amount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		on, err := date.ParseStored(day)
		if err != nil {
			return nil, fmt.Errorf("purchase %q: %w", p.ID, err)
		}
		p.Date = on
		p.Units = lena.U(units)
		p.Amount = lena.M(amount, currency)
		p.CreatedAt = fromMillis(createdAt)
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate purchases: %w", err)
	}
	return list, nil
}

// DeletePurchase removes one purchase.
func (s *Store) DeletePurchase(ctx context.Context, id string) error {
	return s.delete(ctx, "purchases", id)
}

// delete removes the row with that id from table, which is one of the
// constant table names above.
func (s *Store) delete(ctx context.Context, table, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	return nil
}
