package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/arun-kumar2004/TastyCart/internal/cache"
	"github.com/arun-kumar2004/TastyCart/internal/domain"
	"github.com/arun-kumar2004/TastyCart/internal/repository"
)

// CatalogService reads the menu through a cache; item creation is a
// service-role operation and invalidates it.
type CatalogService struct {
	repo  repository.MenuRepository
	cache cache.MenuCache
	sfg   singleflight.Group // prevents cache stampede on the full listing
}

func NewCatalogService(repo repository.MenuRepository, menuCache cache.MenuCache) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: menuCache,
	}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.MenuItem, error) {
	v, err, _ := s.sfg.Do("menu", func() (interface{}, error) {
		items, err := s.cache.Get(ctx)
		if err == nil {
			return items, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("menu cache get error: %v", err)
		}

		items, errList := s.repo.ListItems(ctx)
		if errList != nil {
			return nil, fmt.Errorf("list menu items: %w", errList)
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := s.cache.Set(ctx, items); errSet != nil {
				log.Printf("menu cache set error: %v", errSet)
			}
		}()

		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.MenuItem), nil
}

func (s *CatalogService) Popular(ctx context.Context) ([]domain.MenuItem, error) {
	items, err := s.repo.ListPopularItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list popular items: %w", err)
	}
	return items, nil
}

func (s *CatalogService) Get(ctx context.Context, itemID int64) (*domain.MenuItem, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load menu item: %w", err)
	}
	return item, nil
}

func (s *CatalogService) Create(ctx context.Context, actor *domain.User, item *domain.MenuItem) error {
	if !actor.IsService() {
		return ErrForbidden
	}
	if item.Name == "" || !item.Price.IsPositive() || !item.Category.Valid() {
		return ErrInvalidItem
	}

	item.CreatedBy = actor.ID
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return fmt.Errorf("create menu item: %w", err)
	}

	s.invalidateCache()
	return nil
}

func (s *CatalogService) invalidateCache() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx); err != nil {
		log.Printf("menu cache invalidate error: %v", err)
	}
}
