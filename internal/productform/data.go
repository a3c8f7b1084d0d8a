package productform

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/javajoker/catalog-admin/internal/models"
)

// Number accepts a JSON number or a numeric string. Text that does not parse
// becomes NaN, which fails the gte=0 rule on its own field instead of
// rejecting the whole payload.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}

	s := string(b)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	if s == "" {
		*n = 0
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		f = math.NaN()
	}
	*n = Number(f)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// FormData is the editable state of the product dialog.
type FormData struct {
	Name          string         `json:"name" validate:"required"`
	Slug          string         `json:"slug" validate:"required"`
	Description   string         `json:"description" validate:"required"`
	Category      string         `json:"category" validate:"required"`
	Style         string         `json:"style"`
	Price         Number         `json:"price" validate:"gte=0"`
	OriginalPrice Number         `json:"original_price" validate:"gte=0"`
	ImageURL1     string         `json:"image_url_1" validate:"omitempty,url"`
	ImageURL2     string         `json:"image_url_2" validate:"omitempty,url"`
	ImageURL3     string         `json:"image_url_3" validate:"omitempty,url"`
	ImageURL4     string         `json:"image_url_4" validate:"omitempty,url"`
	Sizes         []string       `json:"sizes" validate:"omitempty,dive,size_label"`
	Colors        []models.Color `json:"available_colors" validate:"omitempty,dive"`
	IsFeatured    bool           `json:"is_featured"`
}

// ImageURLs returns the four URL fields in slot order.
func (d *FormData) ImageURLs() [models.MaxProductImages]string {
	return [models.MaxProductImages]string{d.ImageURL1, d.ImageURL2, d.ImageURL3, d.ImageURL4}
}

func (d *FormData) imageURL(slot int) *string {
	switch slot {
	case 1:
		return &d.ImageURL1
	case 2:
		return &d.ImageURL2
	case 3:
		return &d.ImageURL3
	case 4:
		return &d.ImageURL4
	}
	return nil
}

func (d FormData) normalized() FormData {
	d.Name = strings.TrimSpace(d.Name)
	d.Slug = strings.TrimSpace(d.Slug)
	d.Description = strings.TrimSpace(d.Description)
	d.Category = strings.TrimSpace(d.Category)
	d.Style = strings.TrimSpace(d.Style)
	d.ImageURL1 = strings.TrimSpace(d.ImageURL1)
	d.ImageURL2 = strings.TrimSpace(d.ImageURL2)
	d.ImageURL3 = strings.TrimSpace(d.ImageURL3)
	d.ImageURL4 = strings.TrimSpace(d.ImageURL4)

	seenSize := make(map[string]bool)
	sizes := []string{}
	for _, s := range d.Sizes {
		if !seenSize[s] {
			seenSize[s] = true
			sizes = append(sizes, s)
		}
	}
	d.Sizes = sizes

	seenColor := make(map[string]bool)
	colors := []models.Color{}
	for _, c := range d.Colors {
		if !seenColor[c.Name] {
			seenColor[c.Name] = true
			colors = append(colors, c)
		}
	}
	d.Colors = colors
	return d
}

// AssembleImages keeps the non-empty URLs in slot order. Each image takes the
// product name as alt text and keeps the hint of a previous image with the
// same URL.
func AssembleImages(urls [models.MaxProductImages]string, alt string, previous []models.ProductImage) []models.ProductImage {
	hints := make(map[string]string, len(previous))
	for _, img := range previous {
		hints[img.URL] = img.Hint
	}

	images := []models.ProductImage{}
	for _, url := range urls {
		if url == "" {
			continue
		}
		images = append(images, models.ProductImage{URL: url, Alt: alt, Hint: hints[url]})
	}
	return images
}

// FromProduct hydrates form data from a stored product.
func FromProduct(p *models.Product) FormData {
	d := FormData{
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Category:    p.Category,
		Price:       Number(p.Price),
		Sizes:       []string{},
		Colors:      []models.Color{},
		IsFeatured:  p.IsFeatured,
	}
	if p.Style != nil {
		d.Style = *p.Style
	}
	if p.OriginalPrice != nil {
		d.OriginalPrice = Number(*p.OriginalPrice)
	}
	for i, img := range p.Images {
		if i >= models.MaxProductImages {
			break
		}
		*d.imageURL(i + 1) = img.URL
	}
	d.Sizes = append(d.Sizes, p.Sizes...)
	d.Colors = append(d.Colors, p.AvailableColors...)
	return d
}

// applyTo copies validated data onto p. Empty style and original price are
// stored as null.
func (d FormData) applyTo(p *models.Product) {
	previous := p.Images

	p.Name = d.Name
	p.Slug = d.Slug
	p.Description = d.Description
	p.Category = d.Category
	p.Style = nil
	if d.Style != "" {
		style := d.Style
		p.Style = &style
	}
	p.Price = float64(d.Price)
	p.OriginalPrice = nil
	if d.OriginalPrice > 0 {
		original := float64(d.OriginalPrice)
		p.OriginalPrice = &original
	}
	p.Images = AssembleImages(d.ImageURLs(), d.Name, previous)
	p.Sizes = append([]string{}, d.Sizes...)
	p.AvailableColors = append([]models.Color{}, d.Colors...)
	p.IsFeatured = d.IsFeatured
}
