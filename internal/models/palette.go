// internal/models/palette.go
package models

import "strings"

// Palette is the fixed set of colors a product may be offered in.
var Palette = []Color{
	{Name: "Black", Hex: "#000000"},
	{Name: "White", Hex: "#FFFFFF"},
	{Name: "Off White", Hex: "#FAF9F6"},
	{Name: "Ivory", Hex: "#FFFFF0"},
	{Name: "Cream", Hex: "#FFFDD0"},
	{Name: "Beige", Hex: "#F5F5DC"},
	{Name: "Sand", Hex: "#C2B280"},
	{Name: "Camel", Hex: "#C19A6B"},
	{Name: "Tan", Hex: "#D2B48C"},
	{Name: "Brown", Hex: "#8B4513"},
	{Name: "Chocolate", Hex: "#7B3F00"},
	{Name: "Charcoal", Hex: "#36454F"},
	{Name: "Dark Grey", Hex: "#555555"},
	{Name: "Grey", Hex: "#808080"},
	{Name: "Light Grey", Hex: "#D3D3D3"},
	{Name: "Silver", Hex: "#C0C0C0"},
	{Name: "Navy", Hex: "#000080"},
	{Name: "Royal Blue", Hex: "#4169E1"},
	{Name: "Sky Blue", Hex: "#87CEEB"},
	{Name: "Denim", Hex: "#1560BD"},
	{Name: "Teal", Hex: "#008080"},
	{Name: "Turquoise", Hex: "#40E0D0"},
	{Name: "Olive", Hex: "#808000"},
	{Name: "Khaki", Hex: "#C3B091"},
	{Name: "Forest Green", Hex: "#228B22"},
	{Name: "Mint", Hex: "#98FF98"},
	{Name: "Mustard", Hex: "#FFDB58"},
	{Name: "Yellow", Hex: "#FFFF00"},
	{Name: "Orange", Hex: "#FFA500"},
	{Name: "Coral", Hex: "#FF7F50"},
	{Name: "Red", Hex: "#FF0000"},
	{Name: "Burgundy", Hex: "#800020"},
	{Name: "Pink", Hex: "#FFC0CB"},
	{Name: "Blush", Hex: "#DE5D83"},
	{Name: "Lavender", Hex: "#E6E6FA"},
	{Name: "Purple", Hex: "#800080"},
}

// InPalette reports whether c matches a palette entry. Hex comparison ignores
// case.
func InPalette(c Color) bool {
	for _, p := range Palette {
		if p.Name == c.Name && strings.EqualFold(p.Hex, c.Hex) {
			return true
		}
	}
	return false
}
