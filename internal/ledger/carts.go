package ledger

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mvoronin/market_ledger/internal/models"
)

func findCart(tx *gorm.DB, buyer string) (*models.Cart, error) {
	var cart models.Cart
	if err := tx.Where("buyer = ?", buyer).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoCartProduct
		}
		return nil, err
	}
	return &cart, nil
}

// AddToCart creates the caller's cart entry. A buyer holds at most one
// entry; a second add is rejected, never merged or overwritten.
func (l *Ledger) AddToCart(ctx context.Context, buyer, details string) (*models.Cart, error) {
	var cart models.Cart
	err := l.write(ctx, func(tx *gorm.DB) error {
		if _, err := requireAccount(tx, buyer); err != nil {
			return err
		}
		if strings.TrimSpace(details) == "" {
			return ErrEmptyData
		}
		if _, err := findCart(tx, buyer); err == nil {
			return ErrInvalidCartOverride
		} else if !errors.Is(err, ErrNoCartProduct) {
			return err
		}
		cart = models.Cart{Buyer: buyer, Details: details}
		return tx.Create(&cart).Error
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (l *Ledger) FindCart(ctx context.Context, address string) (*models.Cart, error) {
	return findCart(l.db.WithContext(ctx), address)
}

// UpdateCart replaces the details of the caller's existing entry. The
// cart is keyed by the caller address, so only the buyer can reach it.
func (l *Ledger) UpdateCart(ctx context.Context, buyer, details string) (*models.Cart, error) {
	var cart *models.Cart
	err := l.write(ctx, func(tx *gorm.DB) error {
		var err error
		if cart, err = findCart(tx, buyer); err != nil {
			return err
		}
		if strings.TrimSpace(details) == "" {
			return ErrEmptyData
		}
		cart.Details = details
		return tx.Save(cart).Error
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (l *Ledger) RemoveFromCart(ctx context.Context, buyer string) error {
	return l.write(ctx, func(tx *gorm.DB) error {
		cart, err := findCart(tx, buyer)
		if err != nil {
			return err
		}
		return tx.Delete(cart).Error
	})
}
