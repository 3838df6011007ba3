package domain

import "strings"

// Weekday é o dia da semana abreviado usado pelo heatmap
type Weekday string

const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
	Saturday  Weekday = "Sat"
	Sunday    Weekday = "Sun"
)

// Weekdays lista os dias na ordem de exibição do heatmap
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// HeatmapCell é a intensidade de vendas em um dia da semana e hora
type HeatmapCell struct {
	Day     Weekday `json:"day"`
	Hour    int     `json:"hour"`
	Value   float64 `json:"value"`
	Revenue float64 `json:"revenue"`
}

// ParseWeekday aceita nomes completos ou abreviados, sem diferenciar maiúsculas
func ParseWeekday(name string) (Weekday, bool) {
	key := strings.ToLower(strings.TrimSpace(name))

	for _, day := range Weekdays {
		if key == strings.ToLower(string(day)) || key == fullWeekdayNames[day] {
			return day, true
		}
	}

	return "", false
}

var fullWeekdayNames = map[Weekday]string{
	Monday:    "monday",
	Tuesday:   "tuesday",
	Wednesday: "wednesday",
	Thursday:  "thursday",
	Friday:    "friday",
	Saturday:  "saturday",
	Sunday:    "sunday",
}

// Index devolve a posição do dia em Weekdays, ou -1
func (d Weekday) Index() int {
	for i, day := range Weekdays {
		if day == d {
			return i
		}
	}
	return -1
}
