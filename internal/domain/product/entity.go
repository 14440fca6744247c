package product

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("product name must not be empty")
	ErrNegativePrice   = errors.New("product price cannot be negative")
	ErrNameTooLong     = errors.New("product name too long")
	ErrInvalidCategory = errors.New("invalid product category")
)

const MaxNameLength = 120

type Category string

const (
	CategoryStarter Category = "starter"
	CategoryMain    Category = "main"
	CategoryDessert Category = "dessert"
	CategoryDrink   Category = "drink"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryStarter, CategoryMain, CategoryDessert, CategoryDrink:
		return true
	default:
		return false
	}
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

type Product struct {
	id          uuid.UUID
	name        string
	description string
	priceCents  int64
	category    Category
	available   bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewProduct(name, description string, priceCents int64, category Category, available bool, now time.Time) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return nil, ErrNameTooLong
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}

	return &Product{
		id:          uuid.New(),
		name:        name,
		description: description,
		priceCents:  priceCents,
		category:    category,
		available:   available,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructProduct(id uuid.UUID, name, description string, priceCents int64, category Category, available bool, createdAt, updatedAt time.Time) *Product {
	return &Product{
		id:          id,
		name:        name,
		description: description,
		priceCents:  priceCents,
		category:    category,
		available:   available,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (p *Product) ID() uuid.UUID       { return p.id }
func (p *Product) Name() string        { return p.name }
func (p *Product) Description() string { return p.description }
func (p *Product) PriceCents() int64   { return p.priceCents }
func (p *Product) Category() Category  { return p.category }
func (p *Product) Available() bool     { return p.available }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }
