package utils

import "time"

// DateLayout é o formato de data trocado com a API analítica
const DateLayout = time.DateOnly

// ParseDate interpreta uma data no formato yyyy-mm-dd; string vazia resulta em nil
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}
