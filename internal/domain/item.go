package domain

import (
	"time"

	"github.com/m04kA/RMT-BookingService/pkg/types"
)

// Category represents a clothing category of a listed item
type Category string

const (
	CategoryDress       Category = "dress"
	CategoryTop         Category = "top"
	CategoryBottom      Category = "bottom"
	CategoryOuterwear   Category = "outerwear"
	CategoryShoes       Category = "shoes"
	CategoryAccessories Category = "accessories"
	CategoryJewelry     Category = "jewelry"
	CategoryBags        Category = "bags"
)

// IsValid returns true if the category is one of the known categories
func (c Category) IsValid() bool {
	switch c {
	case CategoryDress, CategoryTop, CategoryBottom, CategoryOuterwear,
		CategoryShoes, CategoryAccessories, CategoryJewelry, CategoryBags:
		return true
	}
	return false
}

// Condition represents the wear condition of an item
type Condition string

const (
	ConditionNew       Condition = "new"
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
)

// IsValid returns true if the condition is one of the known conditions
func (c Condition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionExcellent, ConditionGood, ConditionFair:
		return true
	}
	return false
}

// Item represents a clothing item listed for rent
type Item struct {
	ID            int64
	OwnerID       int64
	Title         string
	Category      Category
	Size          string
	Condition     Condition
	PricePerDay   types.Money // > 0
	DepositAmount types.Money // >= 0
	IsAvailable   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasValidPricing returns true if the price is positive and the deposit is not negative
func (i *Item) HasValidPricing() bool {
	return i.PricePerDay.IsPositive() && !i.DepositAmount.IsNegative()
}
