package ledger

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mvoronin/market_ledger/internal/models"
)

// CreateAccount registers the caller address. At most one account may
// exist per address; ids are sequential and never reused.
func (l *Ledger) CreateAccount(ctx context.Context, address, details string) (*models.Account, error) {
	var acc models.Account
	err := l.write(ctx, func(tx *gorm.DB) error {
		var existing models.Account
		err := tx.Where("address = ?", address).First(&existing).Error
		if err == nil {
			return ErrDuplicateUser
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if strings.TrimSpace(details) == "" {
			return ErrEmptyData
		}
		id, err := nextID(tx, counterAccounts)
		if err != nil {
			return err
		}
		acc = models.Account{ID: id, Address: address, Details: details}
		return tx.Create(&acc).Error
	})
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (l *Ledger) FindAccount(ctx context.Context, address string) (*models.Account, error) {
	return requireAccount(l.db.WithContext(ctx), address)
}

// UpdateAccountDetails replaces the caller's details in place; id and
// address are immutable.
func (l *Ledger) UpdateAccountDetails(ctx context.Context, address, details string) (*models.Account, error) {
	var acc *models.Account
	err := l.write(ctx, func(tx *gorm.DB) error {
		var err error
		if acc, err = requireAccount(tx, address); err != nil {
			return err
		}
		if strings.TrimSpace(details) == "" {
			return ErrEmptyData
		}
		acc.Details = details
		return tx.Save(acc).Error
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// DeleteAccount removes the caller's account and cascades to every
// product the address sells and to its cart entry. The whole cascade
// commits in one transaction, so an observer never sees a half-deleted
// account.
func (l *Ledger) DeleteAccount(ctx context.Context, address string) error {
	return l.write(ctx, func(tx *gorm.DB) error {
		acc, err := requireAccount(tx, address)
		if err != nil {
			return err
		}
		if err := tx.Where("seller = ?", address).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Where("buyer = ?", address).Delete(&models.Cart{}).Error; err != nil {
			return err
		}
		return tx.Delete(acc).Error
	})
}
