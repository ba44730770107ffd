package models

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/example/ecommerce-catalog-api/internal/errors"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Value objects validate on construction; an instance that exists is valid.
// Constructors return an errors.ValidationError on rejected input.

const (
	MaxPrice    = 999999.99
	MaxQuantity = 999999
)

var (
	slugPattern       = regexp.MustCompile(`^[a-z0-9-]+$`)
	nonSlugChars      = regexp.MustCompile(`[^a-z0-9\s-]`)
	nonSKUChars       = regexp.MustCompile(`[^A-Z0-9\s-]`)
	whitespaceRun     = regexp.MustCompile(`\s+`)
	hyphenRun         = regexp.MustCompile(`-+`)
	accentTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

func stripAccents(s string) string {
	out, _, err := transform.String(accentTransformer, s)
	if err != nil {
		return s
	}

	return out
}

type CategoryName struct {
	value string
}

func NewCategoryName(name string) (CategoryName, error) {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return CategoryName{}, errors.ValidationError("Category name is required")
	}

	if len(trimmed) < 3 {
		return CategoryName{}, errors.ValidationError("Category name must be at least 3 characters long")
	}

	if len(trimmed) > 100 {
		return CategoryName{}, errors.ValidationError("Category name must be less than 100 characters")
	}

	return CategoryName{value: trimmed}, nil
}

func (n CategoryName) Value() string {
	return n.value
}

func (n CategoryName) String() string {
	return n.value
}

type ProductName struct {
	value string
}

func NewProductName(name string) (ProductName, error) {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return ProductName{}, errors.ValidationError("Product name is required")
	}

	if len(trimmed) < 3 {
		return ProductName{}, errors.ValidationError("Product name must be at least 3 characters long")
	}

	if len(trimmed) > 200 {
		return ProductName{}, errors.ValidationError("Product name must be less than 200 characters")
	}

	return ProductName{value: trimmed}, nil
}

func (n ProductName) Value() string {
	return n.value
}

func (n ProductName) String() string {
	return n.value
}

type Slug struct {
	value string
}

func NewSlug(slug string) (Slug, error) {
	normalized := strings.ToLower(strings.TrimSpace(slug))

	if normalized == "" {
		return Slug{}, errors.ValidationError("Slug is required")
	}

	if !slugPattern.MatchString(normalized) {
		return Slug{}, errors.ValidationError("Slug can only contain lowercase letters, numbers and hyphens")
	}

	if len(normalized) < 3 {
		return Slug{}, errors.ValidationError("Slug must be at least 3 characters long")
	}

	if len(normalized) > 100 {
		return Slug{}, errors.ValidationError("Slug must be less than 100 characters")
	}

	return Slug{value: normalized}, nil
}

// SlugFromName derives a URL-safe slug candidate: accents stripped,
// special characters removed, whitespace collapsed to single hyphens.
// Idempotent on input that is already a valid slug.
func SlugFromName(name string) (Slug, error) {
	s := stripAccents(strings.ToLower(strings.TrimSpace(name)))
	s = nonSlugChars.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	return NewSlug(s)
}

func (s Slug) Value() string {
	return s.value
}

func (s Slug) String() string {
	return s.value
}

type SKU struct {
	value string
}

func NewSKU(sku string) (SKU, error) {
	normalized := strings.ToUpper(strings.TrimSpace(sku))

	if normalized == "" {
		return SKU{}, errors.ValidationError("Product SKU is required")
	}

	if len(normalized) < 3 {
		return SKU{}, errors.ValidationError("Product SKU must be at least 3 characters long")
	}

	if len(normalized) > 50 {
		return SKU{}, errors.ValidationError("Product SKU must be less than 50 characters")
	}

	return SKU{value: normalized}, nil
}

// SKUFromName derives a deterministic SKU from a product name: uppercase,
// accents and special characters stripped, spaces hyphenated, truncated to
// the 50-character limit.
func SKUFromName(name string) (SKU, error) {
	s := stripAccents(strings.ToUpper(name))
	s = nonSKUChars.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = whitespaceRun.ReplaceAllString(s, "-")

	if len(s) > 50 {
		s = s[:50]
	}

	return NewSKU(s)
}

func (s SKU) Value() string {
	return s.value
}

func (s SKU) String() string {
	return s.value
}

type Price struct {
	value float64
}

func NewPrice(price float64) (Price, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return Price{}, errors.ValidationError("Product price must be a valid number")
	}

	if price < 0 {
		return Price{}, errors.ValidationError("Product price cannot be negative")
	}

	if price > MaxPrice {
		return Price{}, errors.ValidationError("Product price cannot exceed 999,999.99")
	}

	// Round half-up to 2 decimal places.
	return Price{value: math.Round(price*100) / 100}, nil
}

func (p Price) Value() float64 {
	return p.value
}

func (p Price) String() string {
	return fmt.Sprintf("%.2f", p.value)
}

type Quantity struct {
	value         int64
	trackQuantity bool
}

func NewQuantity(quantity int64, trackQuantity bool) (Quantity, error) {
	if quantity < 0 {
		return Quantity{}, errors.ValidationError("Product quantity cannot be negative")
	}

	if quantity > MaxQuantity {
		return Quantity{}, errors.ValidationError("Product quantity cannot exceed 999,999")
	}

	return Quantity{value: quantity, trackQuantity: trackQuantity}, nil
}

func (q Quantity) Value() int64 {
	return q.value
}

func (q Quantity) IsTrackingEnabled() bool {
	return q.trackQuantity
}

func (q Quantity) IsInStock() bool {
	return !q.trackQuantity || q.value > 0
}

func (q Quantity) IsLowStock(threshold int64) bool {
	return q.trackQuantity && q.value <= threshold && q.value > 0
}

// Increase returns a new validated Quantity; the receiver is never mutated.
func (q Quantity) Increase(amount int64) (Quantity, error) {
	if amount <= 0 {
		return Quantity{}, errors.ValidationError("Increase amount must be positive")
	}

	return NewQuantity(q.value+amount, q.trackQuantity)
}

// Decrease fails when the result would go negative.
func (q Quantity) Decrease(amount int64) (Quantity, error) {
	if amount <= 0 {
		return Quantity{}, errors.ValidationError("Decrease amount must be positive")
	}

	return NewQuantity(q.value-amount, q.trackQuantity)
}

func (q Quantity) String() string {
	return fmt.Sprintf("%d", q.value)
}
