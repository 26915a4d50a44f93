package models

import "strings"

// Category groups the subcategory rows a user can pick for one life stage.
type Category struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

// Categories mirrors the row labels of the requirement workbook.
var Categories = []Category{
	{Name: "Dorosły koń", Subcategories: []string{"Minimalne wymagania", "Średnie", "Podwyższone wymagania"}},
	{Name: "Koń pracujący", Subcategories: []string{"Lekkie ćwiczenia", "Umiarkowane ćwiczenia", "Ciężkie ćwiczenia", "Bardzo ciężkie ćwiczenia"}},
	{Name: "Ogier", Subcategories: []string{"Niekryjące", "kryjące"}},
	{Name: "Klacz źrebna", Subcategories: []string{"< 5 miesięcy", "5 miesiąc", "6 miesiąc", "7 miesiąc", "8 miesiąc", "9 miesiąc", "10 miesiąc", "11 miesiąc"}},
	{Name: "Klacz w laktacji", Subcategories: []string{"1 miesiąc", "2 miesiąc", "3 miesiąc", "4 miesiąc"}},
	{Name: "Koń rosnący", Subcategories: []string{
		"4 miesiące", "6 miesięcy", "12 miesięcy", "18 miesięcy",
		"18 miesięcy - lekkie ćwiczenia", "18 miesięcy -umiarkowane ćwiczenia",
		"24 miesięcy", "24 miesięcy - lekkie ćwiczenia",
		"24  miesięcy -umiarkowane ćwiczenia", "24  miesięcy -ciężkie ćwiczenia",
		"24  miesięcy - bardzo ciężkie ćwiczenia",
	}},
}

// FindCategory looks a category up by name.
func FindCategory(name string) (Category, bool) {
	for _, c := range Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// HasSubcategory reports whether the category lists the subcategory.
func (c Category) HasSubcategory(sub string) bool {
	sub = strings.TrimSpace(sub)
	for _, s := range c.Subcategories {
		if strings.TrimSpace(s) == sub {
			return true
		}
	}
	return false
}
