package services

import (
	"sort"
	"strings"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ProductService handles business logic related to the product catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetProducts retrieves the catalog, optionally narrowed by a
// case-insensitive substring match on name/description and an exact
// category match. Filters are applied in memory over the full fetch.
func (s *ProductService) GetProducts(query, category string) ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	if query == "" && category == "" {
		if products == nil {
			// An empty catalog serializes as [], not null.
			products = make([]models.Product, 0)
		}
		return products, nil
	}

	query = strings.ToLower(strings.TrimSpace(query))
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// GetCategories returns the distinct non-empty categories present in
// the catalog, sorted alphabetically.
func (s *ProductService) GetCategories() ([]string, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, p := range products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new catalog entry after checking the business
// rules the transport-level validator cannot express.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	return s.repo.Create(product)
}

// UpdateProduct updates an existing catalog entry.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

func validateProduct(product *models.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	product.Description = strings.TrimSpace(product.Description)

	if len(product.Name) < 3 {
		return apperrors.New(apperrors.KindValidation, "Name should be at least 3 characters long")
	}
	if len(product.Description) < 5 {
		return apperrors.New(apperrors.KindValidation, "Description should be at least 5 characters long")
	}
	if !product.Price.IsPositive() {
		return apperrors.New(apperrors.KindValidation, "Price should be positive")
	}
	if product.Available < 0 {
		return apperrors.New(apperrors.KindValidation, "Only non-negative values are valid for available parameter")
	}
	// Monetary values carry exactly 2 fractional digits.
	product.Price = product.Price.Round(2)
	return nil
}
