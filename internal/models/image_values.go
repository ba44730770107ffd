package models

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/example/ecommerce-catalog-api/internal/errors"
)

const MaxImageFileSize = 10 * 1024 * 1024 // 10MB

const MaxImageDimension = 10000 // pixels

var SupportedImageMimeTypes = map[string]bool{
	"image/jpeg":    true,
	"image/jpg":     true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

var (
	base64Pattern   = regexp.MustCompile(`^[A-Za-z0-9+/]+={0,2}$`)
	dataURIPrefix   = regexp.MustCompile(`^data:image/\w+;base64,`)
	imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"}
)

type ImageURL struct {
	value string
}

func NewImageURL(rawURL string) (ImageURL, error) {
	trimmed := strings.TrimSpace(rawURL)

	if trimmed == "" {
		return ImageURL{}, errors.ValidationError("Image URL is required when using external URL")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ImageURL{}, errors.ValidationError("Invalid image URL format")
	}

	if !looksLikeImageURL(trimmed) {
		return ImageURL{}, errors.ValidationError("URL must point to a valid image file")
	}

	return ImageURL{value: trimmed}, nil
}

func looksLikeImageURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)

	for _, ext := range imageExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}

	return strings.Contains(lower, "image/") ||
		strings.Contains(lower, "imgur.com") ||
		strings.Contains(lower, "cloudinary.com")
}

func (u ImageURL) Value() string {
	return u.value
}

func (u ImageURL) String() string {
	return u.value
}

type ImageData struct {
	data     string
	mimeType string
}

func NewImageData(data, mimeType string) (ImageData, error) {
	trimmed := strings.TrimSpace(data)

	if trimmed == "" {
		return ImageData{}, errors.ValidationError("Image data is required when using binary storage")
	}

	if !isValidBase64(trimmed) {
		return ImageData{}, errors.ValidationError("Invalid base64 image data format")
	}

	if !SupportedImageMimeTypes[mimeType] {
		return ImageData{}, errors.ValidationError(fmt.Sprintf("Unsupported image MIME type: %s", mimeType))
	}

	return ImageData{data: trimmed, mimeType: mimeType}, nil
}

func isValidBase64(data string) bool {
	// Accept payloads with or without a data URI prefix.
	payload := dataURIPrefix.ReplaceAllString(data, "")

	return base64Pattern.MatchString(payload)
}

func (d ImageData) Value() string {
	return d.data
}

func (d ImageData) MimeType() string {
	return d.mimeType
}

func (d ImageData) String() string {
	return fmt.Sprintf("data:%s;base64,%s", d.mimeType, d.data)
}

type ImageFileSize struct {
	size int64
}

func NewImageFileSize(size int64) (ImageFileSize, error) {
	if size < 0 {
		return ImageFileSize{}, errors.ValidationError("File size must be a positive number")
	}

	if size > MaxImageFileSize {
		return ImageFileSize{}, errors.ValidationError("Image file size cannot exceed 10MB")
	}

	return ImageFileSize{size: size}, nil
}

func (s ImageFileSize) Value() int64 {
	return s.size
}

func (s ImageFileSize) Formatted() string {
	return FormatFileSize(s.size)
}

func (s ImageFileSize) String() string {
	return s.Formatted()
}

// FormatFileSize renders a byte count in human-readable units.
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}

	sizes := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))

	if i >= len(sizes) {
		i = len(sizes) - 1
	}

	value := math.Round(float64(bytes)/math.Pow(1024, float64(i))*100) / 100

	return fmt.Sprintf("%g %s", value, sizes[i])
}

type ImageDimensions struct {
	width  int
	height int
}

func NewImageDimensions(width, height int) (ImageDimensions, error) {
	if width <= 0 {
		return ImageDimensions{}, errors.ValidationError("Image width must be a positive number")
	}

	if height <= 0 {
		return ImageDimensions{}, errors.ValidationError("Image height must be a positive number")
	}

	if width > MaxImageDimension || height > MaxImageDimension {
		return ImageDimensions{}, errors.ValidationError("Image dimensions cannot exceed 10,000 pixels")
	}

	return ImageDimensions{width: width, height: height}, nil
}

func (d ImageDimensions) Width() int {
	return d.width
}

func (d ImageDimensions) Height() int {
	return d.height
}

func (d ImageDimensions) AspectRatio() float64 {
	return float64(d.width) / float64(d.height)
}

func (d ImageDimensions) String() string {
	return fmt.Sprintf("%dx%d", d.width, d.height)
}
