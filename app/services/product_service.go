package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"HotelPos/app/errs"
	"HotelPos/app/models"
)

// ProductService provides read access to the product catalog.
type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// GetProduct returns the product with the given ID, or errs.ErrNotFound
// when no such product exists.
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Storage("get product", err)
	}
	return &product, nil
}

// GetAllProducts returns every active product ordered by name.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Order("name ASC").Find(&products).Error; err != nil {
		return nil, errs.Storage("list products", err)
	}
	return products, nil
}

// GetProductsByCategory returns the active products in one category.
func (s *ProductService) GetProductsByCategory(categoryID uint) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("category_id = ?", categoryID).Order("name ASC").Find(&products).Error; err != nil {
		return nil, errs.Storage(fmt.Sprintf("list products for category %d", categoryID), err)
	}
	return products, nil
}

// GetCategories returns all product categories ordered by name.
func (s *ProductService) GetCategories() ([]models.ProductCategory, error) {
	var categories []models.ProductCategory
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, errs.Storage("list categories", err)
	}
	return categories, nil
}
