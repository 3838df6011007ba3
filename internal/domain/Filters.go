package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/saniyaC164/BIPA/pkg/utils"
)

// DateRange é o período selecionado no dashboard
type DateRange string

const (
	Range7Days  DateRange = "7d"
	Range30Days DateRange = "30d"
	Range90Days DateRange = "90d"
	RangeCustom DateRange = "custom"
)

// Categorias do cardápio aceitas pelo filtro
const (
	CategoryAll       = "all"
	CategoryCoffee    = "coffee"
	CategoryFood      = "food"
	CategoryDesserts  = "desserts"
	CategoryBeverages = "beverages"
)

// ErrInvalidDateInterval indica um intervalo personalizado com início depois do fim
var ErrInvalidDateInterval = errors.New("start_date deve ser anterior ou igual a end_date")

// FilterState é o conjunto de filtros do dashboard.
// StartDate e EndDate só têm efeito quando DateRange é custom.
type FilterState struct {
	DateRange DateRange `json:"date_range" validate:"required,oneof=7d 30d 90d custom"`
	StartDate string    `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string    `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Category  string    `json:"category" validate:"omitempty,oneof=all coffee food desserts beverages"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultFilters devolve os filtros iniciais do dashboard
func DefaultFilters() FilterState {
	return FilterState{DateRange: Range7Days, Category: CategoryAll}
}

// Validate verifica os valores aceitos e a ordem das datas do intervalo personalizado
func (f FilterState) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("filtros inválidos: %w", err)
	}

	if f.DateRange != RangeCustom {
		return nil
	}

	start, err := utils.ParseDate(f.StartDate)
	if err != nil {
		return fmt.Errorf("start_date inválida: %w", err)
	}
	end, err := utils.ParseDate(f.EndDate)
	if err != nil {
		return fmt.Errorf("end_date inválida: %w", err)
	}

	if start != nil && end != nil && start.After(*end) {
		return ErrInvalidDateInterval
	}

	return nil
}

// HasCustomInterval indica se o intervalo personalizado está completo
func (f FilterState) HasCustomInterval() bool {
	return f.DateRange == RangeCustom && f.StartDate != "" && f.EndDate != ""
}
