package odata

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeClause(t *testing.T) {
	tests := []struct {
		name     string
		attr     string
		value    string
		attrType AttributeType
		op       ComparisonOp
		want     []string
	}{
		{
			name: "string equality", attr: "productType", value: "S2MSI2A", attrType: TypeString, op: OpEq,
			want: []string{
				"Attributes/OData.CSC.StringAttribute/any(",
				"att/Name eq 'productType'",
				"att/OData.CSC.StringAttribute/Value eq 'S2MSI2A'",
			},
		},
		{
			name: "double le", attr: "cloudCover", value: "40.5", attrType: TypeDouble, op: OpLe,
			want: []string{
				"Attributes/OData.CSC.DoubleAttribute/any(",
				"att/Name eq 'cloudCover'",
				"att/OData.CSC.DoubleAttribute/Value le 40.5",
			},
		},
		{
			name: "integer eq", attr: "relativeOrbitNumber", value: "123", attrType: TypeInteger, op: OpEq,
			want: []string{
				"Attributes/OData.CSC.IntegerAttribute/any(",
				"att/Name eq 'relativeOrbitNumber'",
				"att/OData.CSC.IntegerAttribute/Value eq 123",
			},
		},
		{
			name: "datetime eq", attr: "processingDate", value: "2024-01-15T10:30:00Z", attrType: TypeDateTimeOffset, op: OpEq,
			want: []string{
				"Attributes/OData.CSC.DateTimeOffsetAttribute/any(",
				"att/Name eq 'processingDate'",
				"att/OData.CSC.DateTimeOffsetAttribute/Value eq 2024-01-15T10:30:00Z",
			},
		},
		{
			name: "boolean eq", attr: "sliceProductFlag", value: "true", attrType: TypeBoolean, op: OpEq,
			want: []string{
				"Attributes/OData.CSC.BooleanAttribute/any(",
				"att/Name eq 'sliceProductFlag'",
				"att/OData.CSC.BooleanAttribute/Value eq true",
			},
		},
		{
			name: "boolean value lowercased", attr: "sliceProductFlag", value: "False", attrType: TypeBoolean, op: OpEq,
			want: []string{"att/OData.CSC.BooleanAttribute/Value eq false"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := attributeClause(tt.attr, tt.value, tt.attrType, tt.op)
			require.NoError(t, err)
			for _, frag := range tt.want {
				assert.Contains(t, got, frag)
			}
		})
	}
}

func TestBuildFilterDateRanges(t *testing.T) {
	got, err := BuildFilter("SENTINEL-2", SearchTerms{
		"contentDateStartGt": "2020-01-01",
		"contentDateEndLt":   "2020-01-10",
	})
	require.NoError(t, err)

	assert.Contains(t, got, "Collection/Name eq 'SENTINEL-2'")
	assert.Contains(t, got, "ContentDate/Start gt 2020-01-01")
	assert.Contains(t, got, "ContentDate/End lt 2020-01-10")
	assert.True(t, strings.HasPrefix(got, "Collection/Name eq 'SENTINEL-2'"), "collection clause must come first")
}

func TestBuildFilterBoundedStartDate(t *testing.T) {
	got, err := BuildFilter("SENTINEL-1", SearchTerms{
		"productType":        "IW_SLC__1S",
		"contentDateStartGe": "2024-01-01",
		"contentDateStartLt": "2024-02-01",
	})
	require.NoError(t, err)

	assert.Contains(t, got, "ContentDate/Start ge 2024-01-01")
	assert.Contains(t, got, "ContentDate/Start lt 2024-02-01")
}

func TestBuildFilterAttributes(t *testing.T) {
	got, err := BuildFilter("SENTINEL-2", SearchTerms{"cloudCoverEq": 40, "productType": "S2MSI2A"})
	require.NoError(t, err)
	assert.Contains(t, got, "Collection/Name eq 'SENTINEL-2'")
	assert.Contains(t, got, "cloudCover")
	assert.Contains(t, got, "Value eq 40.0")
	assert.Contains(t, got, "productType")

	got, err = BuildFilter("SENTINEL-2", SearchTerms{"cloudCoverLe": 30})
	require.NoError(t, err)
	assert.Contains(t, got, "Value le 30.0")
}

func TestBuildFilterIntervals(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{"[10,22]", []string{"Value ge 10.0", "Value le 22.0"}},
		{"(10,22)", []string{"Value gt 10.0", "Value lt 22.0"}},
		{"[10,22)", []string{"Value ge 10.0", "Value lt 22.0"}},
		{"(10,22]", []string{"Value gt 10.0", "Value le 22.0"}},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := BuildFilter("SENTINEL-2", SearchTerms{"cloudCover": tt.value})
			require.NoError(t, err)
			assert.Equal(t, 2, strings.Count(got, "DoubleAttribute/any("))
			assert.Contains(t, got, "att/Name eq 'cloudCover'")
			for _, frag := range tt.want {
				assert.Contains(t, got, frag)
			}
		})
	}
}

func TestBuildFilterAttributeTypes(t *testing.T) {
	got, err := BuildFilter("SENTINEL-3", SearchTerms{"brightCoverEq": 50.5})
	require.NoError(t, err)
	assert.Contains(t, got, "Attributes/OData.CSC.DoubleAttribute/any(")
	assert.Contains(t, got, "att/Name eq 'brightCover'")
	assert.Contains(t, got, "att/OData.CSC.DoubleAttribute/Value eq 50.5")

	got, err = BuildFilter("SENTINEL-1", SearchTerms{"processingDateEq": "2024-06-15T12:00:00Z"})
	require.NoError(t, err)
	assert.Contains(t, got, "Attributes/OData.CSC.DateTimeOffsetAttribute/any(")
	assert.Contains(t, got, "2024-06-15T12:00:00Z")

	got, err = BuildFilter("SENTINEL-1", SearchTerms{"sliceProductFlag": "true"})
	require.NoError(t, err)
	assert.Contains(t, got, "att/OData.CSC.BooleanAttribute/Value eq true")

	got, err = BuildFilter("SENTINEL-1", SearchTerms{"cycleNumberEq": 42})
	require.NoError(t, err)
	assert.Contains(t, got, "att/OData.CSC.IntegerAttribute/Value eq 42")

	got, err = BuildFilter("SENTINEL-1", SearchTerms{"timeliness": "NRT"})
	require.NoError(t, err)
	assert.Contains(t, got, "att/OData.CSC.StringAttribute/Value eq 'NRT'")
}

func TestBuildFilterOperatorSuffixes(t *testing.T) {
	got, err := BuildFilter("SENTINEL-1", SearchTerms{"orbitNumberLt": 100})
	require.NoError(t, err)
	assert.Contains(t, got, "att/Name eq 'orbitNumber'")
	assert.Contains(t, got, "att/OData.CSC.IntegerAttribute/Value lt 100")

	got, err = BuildFilter("SENTINEL-1", SearchTerms{"orbitNumberGe": 50})
	require.NoError(t, err)
	assert.Contains(t, got, "att/OData.CSC.IntegerAttribute/Value ge 50")

	got, err = BuildFilter("SENTINEL-2", SearchTerms{"cloudCoverLe": 25.5})
	require.NoError(t, err)
	assert.Contains(t, got, "att/OData.CSC.DoubleAttribute/Value le 25.5")

	got, err = BuildFilter("SENTINEL-1", SearchTerms{"processingDateGt": "2024-01-01T00:00:00Z"})
	require.NoError(t, err)
	assert.Contains(t, got, "att/OData.CSC.DateTimeOffsetAttribute/Value gt 2024-01-01T00:00:00Z")
}

func TestBuildFilterDateIntervals(t *testing.T) {
	got, err := BuildFilter("SENTINEL-2", SearchTerms{"contentDateStart": "[2024-01-01,2024-01-31]"})
	require.NoError(t, err)
	assert.Contains(t, got, "ContentDate/Start ge 2024-01-01")
	assert.Contains(t, got, "ContentDate/Start le 2024-01-31")

	got, err = BuildFilter("SENTINEL-2", SearchTerms{"contentDateEnd": "(2024-01-01,2024-01-31)"})
	require.NoError(t, err)
	assert.Contains(t, got, "ContentDate/End gt 2024-01-01")
	assert.Contains(t, got, "ContentDate/End lt 2024-01-31")

	got, err = BuildFilter("SENTINEL-1", SearchTerms{"processingDate": "[2024-01-01T00:00:00Z,2024-01-31T23:59:59Z]"})
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(got, "DateTimeOffsetAttribute/any("))
	assert.Contains(t, got, "Value ge 2024-01-01T00:00:00Z")
	assert.Contains(t, got, "Value le 2024-01-31T23:59:59Z")
}

func TestBuildFilterNameAndGeometry(t *testing.T) {
	got, err := BuildFilter("SENTINEL-2", SearchTerms{"name": "S2A_MSIL2A_20240110"})
	require.NoError(t, err)
	assert.Contains(t, got, "contains(Name,'S2A_MSIL2A_20240110')")

	wkt := "POLYGON((1 2, 3 4, 5 6, 1 2))"
	got, err = BuildFilter("SENTINEL-2", SearchTerms{"geometry": wkt})
	require.NoError(t, err)
	assert.Contains(t, got, "OData.CSC.Intersects(area=geography'SRID=4326;"+wkt+"')")
}

func TestBuildFilterTimeValues(t *testing.T) {
	ts := time.Date(2024, 6, 15, 12, 30, 45, 123456789, time.UTC)
	got, err := BuildFilter("SENTINEL-2", SearchTerms{"contentDateStartGt": ts})
	require.NoError(t, err)
	assert.Contains(t, got, "ContentDate/Start gt 2024-06-15T12:30:45.000Z")
}

func TestBuildFilterErrors(t *testing.T) {
	tests := []struct {
		name  string
		terms SearchTerms
		want  string
	}{
		{"deprecated box", SearchTerms{"box": "1,2,3,4"}, "geometry"},
		{"deprecated startDate", SearchTerms{"startDate": "2024-01-01"}, "contentDateStartGt"},
		{"deprecated maxRecords", SearchTerms{"maxRecords": 100}, "top"},
		{"unknown attribute", SearchTerms{"noSuchThing": 1}, "not supported"},
		{"operator on string", SearchTerms{"productTypeLt": "X"}, "not supported on string"},
		{"operator on boolean", SearchTerms{"sliceProductFlagGt": "true"}, "not supported on boolean"},
		{"bare numeric needs interval", SearchTerms{"cloudCover": "30"}, "requires interval syntax"},
		{"interval on suffixed key", SearchTerms{"cloudCoverLt": "[10,20]"}, "not allowed"},
		{"bare date needs interval", SearchTerms{"contentDateStart": "2024-01-01"}, "requires interval syntax"},
		{"interval on suffixed date", SearchTerms{"contentDateStartGt": "[2024-01-01,2024-01-31]"}, "not allowed"},
		{"bad boolean", SearchTerms{"sliceProductFlag": "maybe"}, "invalid boolean"},
		{"bad integer", SearchTerms{"orbitNumberLt": "ten"}, "invalid integer"},
		{"bad double", SearchTerms{"cloudCoverLt": "wet"}, "invalid numeric"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildFilter("SENTINEL-2", tt.terms)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBuildFilterSkipsInternalParams(t *testing.T) {
	got, err := BuildFilter("SENTINEL-1", SearchTerms{"top": 10, "skip": 20})
	require.NoError(t, err)
	assert.Equal(t, "Collection/Name eq 'SENTINEL-1'", got)
}

func TestDescribeSearchTerms(t *testing.T) {
	terms := DescribeSearchTerms()

	assert.Contains(t, terms, "name")
	assert.Contains(t, terms, "geometry")
	assert.Contains(t, terms, "contentDateStartGt")
	assert.Contains(t, terms, "publicationDateLe")
	// Interval-only base names are excluded from the flat listing.
	assert.NotContains(t, terms, "contentDateStart")
}

func TestBaseSearchTerms(t *testing.T) {
	terms := BaseSearchTerms()

	assert.Contains(t, terms, "contentDateStart")
	assert.Contains(t, terms, "contentDateEnd")
	assert.Contains(t, terms, "publicationDate")
	assert.Contains(t, terms, "geometry")
	assert.NotContains(t, terms, "contentDateStartGt")
}
