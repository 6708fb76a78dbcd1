package memory

import (
	"time"

	"github.com/m04kA/RMT-BookingService/internal/domain"
	"github.com/m04kA/RMT-BookingService/pkg/types"
)

// DemoItems каталог вещей для локального запуска с storage.driver = "memory"
func DemoItems() []domain.Item {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	return []domain.Item{
		{
			ID: 1, OwnerID: 100, Title: "Emerald silk evening gown",
			Category: domain.CategoryDress, Size: "M", Condition: domain.ConditionExcellent,
			PricePerDay: types.Cents(4500), DepositAmount: types.Cents(20000),
			IsAvailable: true, CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: 2, OwnerID: 100, Title: "Vintage leather biker jacket",
			Category: domain.CategoryOuterwear, Size: "L", Condition: domain.ConditionGood,
			PricePerDay: types.Cents(2500), DepositAmount: types.Cents(10000),
			IsAvailable: true, CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: 3, OwnerID: 101, Title: "Pearl drop earrings",
			Category: domain.CategoryJewelry, Size: "one size", Condition: domain.ConditionNew,
			PricePerDay: types.Cents(1999), DepositAmount: types.Cents(0),
			IsAvailable: true, CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: 4, OwnerID: 101, Title: "Designer clutch bag",
			Category: domain.CategoryBags, Size: "one size", Condition: domain.ConditionFair,
			PricePerDay: types.Cents(1500), DepositAmount: types.Cents(5000),
			IsAvailable: false, CreatedAt: created, UpdatedAt: created,
		},
	}
}
