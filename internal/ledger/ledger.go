package ledger

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/mvoronin/market_ledger/internal/models"
)

const (
	counterAccounts = "accounts"
	counterProducts = "products"
)

// Ledger dispatches every marketplace operation over the three stores
// (accounts, products, carts). Mutations are serialized by a single
// mutex and committed inside one transaction each, so a cascade is
// either fully visible or not at all and the id counters advance
// exactly once per successful creation.
type Ledger struct {
	db *gorm.DB
	mu sync.Mutex
}

func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Migrate creates the ledger tables. Test setups call it against an
// in-memory sqlite database, production wiring against postgres.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
		&models.Product{},
		&models.Cart{},
		&models.Counter{},
	)
}

// nextID advances the named counter inside the caller's transaction and
// returns the new value. Counters start at zero, so the first id handed
// out is 1.
func nextID(tx *gorm.DB, name string) (uint, error) {
	var c models.Counter
	if err := tx.Where("name = ?", name).First(&c).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		c = models.Counter{Name: name}
	}
	c.Value++
	if err := tx.Save(&c).Error; err != nil {
		return 0, err
	}
	return c.Value, nil
}

// requireAccount resolves an address to its account or reports the
// caller as unregistered.
func requireAccount(tx *gorm.DB, address string) (*models.Account, error) {
	var acc models.Account
	if err := tx.Where("address = ?", address).First(&acc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnregisteredUser
		}
		return nil, err
	}
	return &acc, nil
}

func (l *Ledger) write(ctx context.Context, fn func(tx *gorm.DB) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.db.WithContext(ctx).Transaction(fn)
}
