package entity

type Refreshment struct {
	Base
	Name     string  `db:"name"`
	Price    float64 `db:"price"`
	IsActive bool    `db:"is_active"`
}
