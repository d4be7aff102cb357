package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rahulnair-dev/vastra-backend/pkg/db/models"
)

// CategoryDTO is the transport shape for an age-group category.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	AgeGroup    string    `json:"age_group"`
	Description string    `json:"description"`
}

// ProductDTO is the transport shape for a catalog product.
type ProductDTO struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	CategoryID    uuid.UUID        `json:"category_id"`
	Category      *CategoryDTO     `json:"category,omitempty"`
	Stock         int              `json:"stock"`
	Sizes         []string         `json:"sizes"`
	Color         string           `json:"color"`
	Material      string           `json:"material"`
	Brand         string           `json:"brand"`
	ImageURL      string           `json:"image_url"`
	IsFeatured    bool             `json:"is_featured"`
	Rating        float64          `json:"rating"`
	CreatedAt     time.Time        `json:"created_at"`
}

// CategoryDetail pairs a category with the products filed under it.
type CategoryDetail struct {
	Category CategoryDTO  `json:"category"`
	Products []ProductDTO `json:"products"`
}

func FromCategoryModel(c *models.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		AgeGroup:    c.AgeGroup,
		Description: c.Description,
	}
}

func FromProductModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	dto := &ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		CategoryID:    p.CategoryID,
		Stock:         p.Stock,
		Sizes:         append([]string(nil), p.Sizes...),
		Color:         p.Color,
		Material:      p.Material,
		Brand:         p.Brand,
		ImageURL:      p.ImageURL,
		IsFeatured:    p.IsFeatured,
		Rating:        p.Rating,
		CreatedAt:     p.CreatedAt,
	}
	if dto.Sizes == nil {
		dto.Sizes = []string{}
	}
	return dto
}

func fromProductModels(products []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, *FromProductModel(&products[i]))
	}
	return out
}

func fromCategoryModels(categories []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		out = append(out, *FromCategoryModel(&categories[i]))
	}
	return out
}
