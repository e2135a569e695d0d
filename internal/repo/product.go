package repo

import (
	"context"
	"strings"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return translate(r.DB.WithContext(ctx).Create(prod).Error)
}

// UpdateProduct overwrites every mutable column, zero values included, and reports affected rows.
func (r *GormRepo) UpdateProduct(ctx context.Context, id uint, prod models.Product) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(map[string]any{
		"name":      prod.Name,
		"quantity":  prod.Quantity,
		"mrp":       prod.MRP,
		"photo_url": prod.PhotoURL,
	})
	return res.RowsAffected, translate(res.Error)
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	return res.RowsAffected, res.Error
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&prod).Error; err != nil {
		return nil, translate(err)
	}
	return &prod, nil
}

// SearchProducts is the store-side fallback when no search engine is configured.
func (r *GormRepo) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
	where := r.DB.WithContext(ctx).Model(&models.Product{}).Where("LOWER(name) LIKE ? ESCAPE '\\'", pattern)

	var total int64
	if err := where.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, limit)
	if err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("LOWER(name) LIKE ? ESCAPE '\\'", pattern).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
