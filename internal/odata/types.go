// Package odata builds query expressions for the Copernicus Data Space
// Ecosystem OData catalogue.
//
// https://documentation.dataspace.copernicus.eu/APIs/OData.html
package odata

import (
	"fmt"
	"time"
)

// ComparisonOp is an OData comparison operator.
type ComparisonOp string

const (
	OpEq ComparisonOp = "eq"
	OpLt ComparisonOp = "lt"
	OpLe ComparisonOp = "le"
	OpGt ComparisonOp = "gt"
	OpGe ComparisonOp = "ge"
)

// AttributeType is the value type of a product attribute.
type AttributeType string

const (
	TypeString         AttributeType = "String"
	TypeInteger        AttributeType = "Integer"
	TypeDouble         AttributeType = "Double"
	TypeDateTimeOffset AttributeType = "DateTimeOffset"
	TypeBoolean        AttributeType = "Boolean"
)

// ODataName returns the OData.CSC entity name for the attribute type, e.g.
// "StringAttribute" for strings.
func (t AttributeType) ODataName() string {
	return string(t) + "Attribute"
}

// MaxBatchSize is the largest $top value the catalogue accepts per page.
const MaxBatchSize = 1000

// SearchTerms maps search term names to their values. Values may be string,
// int, float64, bool, time.Time or anything with a reasonable fmt
// representation; time values are formatted per the catalogue's conventions.
type SearchTerms map[string]any

func formatTermValue(value any) string {
	switch v := value.(type) {
	case time.Time:
		return formatDate(v)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatDate renders a timestamp the way the catalogue expects in filter
// expressions. Sub-second precision is dropped.
func formatDate(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format("2006-01-02T15:04:05.000Z")
}
