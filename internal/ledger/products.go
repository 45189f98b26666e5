package ledger

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mvoronin/market_ledger/internal/models"
)

func findProduct(tx *gorm.DB, id uint) (*models.Product, error) {
	var prod models.Product
	if err := tx.Where("id = ?", id).First(&prod).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnregisteredProduct
		}
		return nil, err
	}
	return &prod, nil
}

// CreateProduct lists a new product for a registered seller. Ids are
// sequential across the catalog's lifetime and survive deletions.
func (l *Ledger) CreateProduct(ctx context.Context, seller, details string, price float64) (*models.Product, error) {
	var prod models.Product
	err := l.write(ctx, func(tx *gorm.DB) error {
		if _, err := requireAccount(tx, seller); err != nil {
			return err
		}
		if strings.TrimSpace(details) == "" {
			return ErrEmptyData
		}
		if price <= 0 {
			return ErrInvalidPrice
		}
		id, err := nextID(tx, counterProducts)
		if err != nil {
			return err
		}
		prod = models.Product{ID: id, Seller: seller, Details: details, Price: price}
		return tx.Create(&prod).Error
	})
	if err != nil {
		return nil, err
	}
	return &prod, nil
}

func (l *Ledger) FindProduct(ctx context.Context, id uint) (*models.Product, error) {
	return findProduct(l.db.WithContext(ctx), id)
}

// ListProducts returns a page of the catalog ordered by id.
func (l *Ledger) ListProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	db := l.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := db.Model(&models.Product{}).Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

// ProductsBySeller returns every product listed by the address, in id
// order. An empty result is not an error.
func (l *Ledger) ProductsBySeller(ctx context.Context, seller string) ([]models.Product, error) {
	var items []models.Product
	if err := l.db.WithContext(ctx).Where("seller = ?", seller).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateProduct replaces price and details of the caller's own product;
// id, seller and the featured flag stay as created.
func (l *Ledger) UpdateProduct(ctx context.Context, caller string, id uint, details string, price float64) (*models.Product, error) {
	var prod *models.Product
	err := l.write(ctx, func(tx *gorm.DB) error {
		var err error
		if prod, err = findProduct(tx, id); err != nil {
			return err
		}
		if prod.Seller != caller {
			return ErrOnlyOwner
		}
		if strings.TrimSpace(details) == "" {
			return ErrEmptyData
		}
		if price <= 0 {
			return ErrInvalidPrice
		}
		prod.Details = details
		prod.Price = price
		return tx.Save(prod).Error
	})
	if err != nil {
		return nil, err
	}
	return prod, nil
}

// DeleteProduct removes the caller's own product permanently. Ownership
// is enforced the same way as for updates.
func (l *Ledger) DeleteProduct(ctx context.Context, caller string, id uint) error {
	return l.write(ctx, func(tx *gorm.DB) error {
		prod, err := findProduct(tx, id)
		if err != nil {
			return err
		}
		if prod.Seller != caller {
			return ErrOnlyOwner
		}
		return tx.Delete(prod).Error
	})
}
