package domain

import "time"

// Product представляет товар каталога вместе с текущим остатком.
type Product struct {
	ID string
	// Name уникально в пределах каталога.
	Name string
	// PriceMinor — цена за единицу в минимальных денежных единицах (например, копейки).
	PriceMinor int64
	// Quantity — доступный остаток на складе.
	Quantity  int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateInvariants проверяет базовые инварианты товара и возвращает список замечаний.
func (p *Product) ValidateInvariants() []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.PriceMinor < 0 {
		errs = append(errs, ErrProductPriceInvalid)
	}
	if p.Quantity < 0 {
		errs = append(errs, ErrProductQuantityInvalid)
	}

	return errs
}

// StockUpdate — новое значение остатка для товара в батч-обновлении.
// Остаток перетирается целиком, а не декрементируется.
type StockUpdate struct {
	ProductID string
	Quantity  int32
}
