package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/util"
)

// ProductIndex mirrors the catalog into a search engine.
type ProductIndex interface {
	IndexProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

type CatalogService struct {
	Repo   *repo.GormRepo
	Search ProductIndex // optional
	Events events.Publisher
}

type SearchResult struct {
	Total    int64
	Products []models.Product
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	items, err := s.Repo.ListProducts(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list_products_failed", "error", err)
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

func (s *CatalogService) Create(ctx context.Context, prod models.Product) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create")

	prod.ID = 0
	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		l.Error("create_product_failed", "error", err)
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.index(ctx, prod)
	publish(ctx, s.Events, events.TopicProductEvents, fmt.Sprint(prod.ID), events.NewEvent(events.ProductCreated, productData(prod)))

	l.Info("product_created", "product_id", prod.ID)
	return &prod, nil
}

// Update reports whether a row was changed. A missing id is not an error.
func (s *CatalogService) Update(ctx context.Context, id uint, prod models.Product) (bool, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.update", "product_id", id)

	n, err := s.Repo.UpdateProduct(ctx, id, prod)
	if err != nil {
		l.Error("update_product_failed", "error", err)
		return false, fmt.Errorf("update product: %w", err)
	}
	if n == 0 {
		l.Info("update_product_noop")
		return false, nil
	}

	prod.ID = id
	s.index(ctx, prod)
	publish(ctx, s.Events, events.TopicProductEvents, fmt.Sprint(id), events.NewEvent(events.ProductUpdated, productData(prod)))

	l.Info("product_updated")
	return true, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uint) (bool, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.delete", "product_id", id)

	n, err := s.Repo.DeleteProduct(ctx, id)
	if err != nil {
		l.Error("delete_product_failed", "error", err)
		return false, fmt.Errorf("delete product: %w", err)
	}
	if n == 0 {
		l.Info("delete_product_noop")
		return false, nil
	}

	if s.Search != nil {
		if err := s.Search.DeleteProduct(context.WithoutCancel(ctx), id); err != nil {
			l.Error("unindex_product_failed", "error", err)
		}
	}
	publish(ctx, s.Events, events.TopicProductEvents, fmt.Sprint(id), events.NewEvent(events.ProductDeleted, map[string]any{
		"productID": id,
	}))

	l.Info("product_deleted")
	return true, nil
}

// SearchProducts prefers the search engine and falls back to the store when it is absent or failing.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, page, size int) (*SearchResult, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.search")
	q = strings.TrimSpace(q)
	from, limit := util.Calculate(page, size)

	if s.Search != nil {
		total, items, err := s.Search.Search(ctx, q, from, limit)
		if err == nil {
			return &SearchResult{Total: total, Products: nonNil(items)}, nil
		}
		l.Warn("search_engine_failed", "error", err)
	}

	total, items, err := s.Repo.SearchProducts(ctx, q, from, limit)
	if err != nil {
		l.Error("search_products_failed", "error", err)
		return nil, fmt.Errorf("search products: %w", err)
	}
	return &SearchResult{Total: total, Products: nonNil(items)}, nil
}

func (s *CatalogService) index(ctx context.Context, prod models.Product) {
	if s.Search == nil {
		return
	}
	if err := s.Search.IndexProduct(context.WithoutCancel(ctx), prod); err != nil {
		logging.FromContext(ctx).Error("index_product_failed", "product_id", prod.ID, "error", err)
	}
}

func productData(p models.Product) map[string]any {
	return map[string]any{
		"productID": p.ID,
		"name":      p.Name,
		"quantity":  p.Quantity,
		"mrp":       p.MRP,
	}
}

func nonNil(items []models.Product) []models.Product {
	if items == nil {
		return []models.Product{}
	}
	return items
}
