package catalogue

import (
	"time"

	"github.com/google/uuid"
)

// ContentDate is the acquisition time range of a product.
type ContentDate struct {
	Start time.Time `json:"Start"`
	End   time.Time `json:"End"`
}

// Checksum is a product payload checksum entry.
type Checksum struct {
	Value     string `json:"Value"`
	Algorithm string `json:"Algorithm"`
}

// ProductAttribute is one entry of a product's expanded Attributes array.
type ProductAttribute struct {
	Name      string `json:"Name"`
	Value     any    `json:"Value"`
	ValueType string `json:"ValueType"`
}

// Product is a catalogue product as returned by the Products endpoint.
type Product struct {
	ID              uuid.UUID          `json:"Id"`
	Name            string             `json:"Name"`
	ContentType     string             `json:"ContentType"`
	ContentLength   int64              `json:"ContentLength"`
	Online          bool               `json:"Online"`
	OriginDate      time.Time          `json:"OriginDate"`
	PublicationDate time.Time          `json:"PublicationDate"`
	ContentDate     ContentDate        `json:"ContentDate"`
	S3Path          string             `json:"S3Path"`
	Checksums       []Checksum         `json:"Checksum"`
	Attributes      []ProductAttribute `json:"Attributes"`

	// Collection is attached client-side so downstream consumers know which
	// collection a product came from.
	Collection string `json:"Collection,omitempty"`
}

// Attribute returns the value of the named entry in the product's expanded
// Attributes array, or false when the attribute is absent.
func (p Product) Attribute(name string) (any, bool) {
	for _, attr := range p.Attributes {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return nil, false
}

// StringAttribute returns the named attribute as a string, or def when the
// attribute is absent or not a string.
func (p Product) StringAttribute(name, def string) string {
	if v, ok := p.Attribute(name); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}
