package catalogue

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/cdsetool/cdsego/internal/odata"
)

// ServerAttribute is one attribute definition from the Attributes endpoint.
type ServerAttribute struct {
	Name      string `json:"Name"`
	ValueType string `json:"ValueType"`
}

// CollectionAttributes fetches the attribute definitions the catalogue
// publishes for a collection.
func (c *Client) CollectionAttributes(ctx context.Context, collection string) ([]ServerAttribute, error) {
	url := fmt.Sprintf("%s/Attributes(%s)", c.baseURL, collection)

	var attrs []ServerAttribute
	_, err := c.getJSON(ctx, "attributes", url, &attrs)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, &APIError{Sentinel: ErrCollectionNotFound, Operation: "describe " + collection, Status: 404}
		}
		return nil, err
	}
	return attrs, nil
}

// DescribeCollection returns the search terms usable with a collection:
// builtin terms (date ranges, name, geometry) merged with the attributes the
// server publishes for it. When the Attributes endpoint is unreachable the
// local registry, filtered by collection, serves as fallback. An unknown
// collection is an error.
func (c *Client) DescribeCollection(ctx context.Context, collection string) (map[string]odata.TermInfo, error) {
	terms := odata.BaseSearchTerms()

	attrs, err := c.CollectionAttributes(ctx, collection)
	if err != nil {
		if errors.Is(err, ErrCollectionNotFound) {
			return nil, err
		}
		c.logger.Warn().
			Err(err).
			Str("collection", collection).
			Msg("attributes endpoint unreachable, using local registry")
		for name, info := range odata.Attributes {
			if slices.Contains(info.Collections, collection) {
				terms[name] = odata.TermInfo{Type: string(info.Type), Title: info.Title}
			}
		}
		return terms, nil
	}

	for _, attr := range attrs {
		if attr.Name == "" {
			continue
		}
		valueType := attr.ValueType
		if valueType == "" {
			valueType = string(odata.TypeString)
		}
		entry := odata.TermInfo{Type: valueType}
		if info, ok := odata.Attributes[attr.Name]; ok {
			entry.Title = info.Title
		}
		terms[attr.Name] = entry
	}
	return terms, nil
}
