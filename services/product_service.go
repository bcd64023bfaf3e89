package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"backend/entity"
	"backend/pkg/cache"
	"backend/repository"
)

// PageSize is the listing page size; a response with fewer rows marks
// the last page.
const PageSize = 20

const listingCacheTTL = 60 * time.Second

type ProductService struct {
	Repo  *repository.ProductRepository
	Cache cache.Cache
}

func NewProductService(repo *repository.ProductRepository, c cache.Cache) *ProductService {
	if c == nil {
		c = cache.NewNoop()
	}
	return &ProductService{Repo: repo, Cache: c}
}

// ListFoodItems serves one page, read-through cached per
// (hotel, category, search, page). Cache failures fall back to the DB
// and never fail the request. Admin edits show up after the TTL.
func (s *ProductService) ListFoodItems(ctx context.Context, hotelID uint, category, search string, page int) ([]repository.ProductRow, error) {
	key := cache.Key("food", hotelID, category, search, page)
	if v, err := s.Cache.Get(ctx, key); err != nil {
		log.Printf("listing cache get: %v", err)
	} else if v != "" {
		var rows []repository.ProductRow
		if json.Unmarshal([]byte(v), &rows) == nil {
			return rows, nil
		}
	}

	rows, err := s.Repo.Search(hotelID, category, search, page, PageSize)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(rows); err == nil {
		if err := s.Cache.Set(ctx, key, string(b), listingCacheTTL); err != nil {
			log.Printf("listing cache set: %v", err)
		}
	}
	return rows, nil
}

func (s *ProductService) Categories(hotelID uint) ([]string, error) {
	return s.Repo.CategoryNames(hotelID)
}

func (s *ProductService) Get(id uint) (*entity.Product, error) {
	return s.Repo.FindByID(id)
}

func (s *ProductService) Create(p *entity.Product) error { return s.Repo.Create(p) }
func (s *ProductService) Update(p *entity.Product) error { return s.Repo.Update(p) }
func (s *ProductService) Delete(id uint) error           { return s.Repo.Delete(id) }
