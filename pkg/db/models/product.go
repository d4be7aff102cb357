package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog listing. Stock is the only field this service mutates,
// and only inside the checkout transaction.
type Product struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	Name          string           `gorm:"column:name;not null"`
	Description   string           `gorm:"column:description"`
	Price         decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null"`
	OriginalPrice *decimal.Decimal `gorm:"column:original_price;type:numeric(10,2)"`
	CategoryID    uuid.UUID        `gorm:"column:category_id;type:uuid;not null"`
	Stock         int              `gorm:"column:stock;not null;default:0"`
	Sizes         pq.StringArray   `gorm:"column:sizes;type:text[]"`
	Color         string           `gorm:"column:color"`
	Material      string           `gorm:"column:material"`
	Brand         string           `gorm:"column:brand"`
	ImageURL      string           `gorm:"column:image_url"`
	IsFeatured    bool             `gorm:"column:is_featured;not null;default:false"`
	Rating        float64          `gorm:"column:rating;type:numeric(3,1);not null;default:0"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
