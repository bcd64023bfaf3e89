package services

import (
	"backend/entity"
	"backend/repository"
)

type TableService struct {
	Repo *repository.TableRepository
}

func NewTableService(repo *repository.TableRepository) *TableService {
	return &TableService{Repo: repo}
}

func (s *TableService) List(hotelID uint) ([]entity.DiningTable, error) {
	return s.Repo.List(hotelID)
}

func (s *TableService) Create(t *entity.DiningTable) error {
	return s.Repo.Create(t)
}

func (s *TableService) Update(t *entity.DiningTable) error {
	return s.Repo.Update(t)
}

func (s *TableService) Delete(id uint) error {
	return s.Repo.Delete(id)
}
