package config

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Yamashou/gqlir/client"
	"github.com/Yamashou/gqlir/introspection"
	"github.com/Yamashou/gqlir/schemaparser"
)

// introspectionSchema builds the schema document from a running server.
// Introspection does not report applied directives, so the result carries none.
func introspectionSchema(ctx context.Context, httpClient *http.Client, endpoint string, header http.Header) (*schemaparser.Document, error) {
	gqlirClient := client.NewClient(endpoint, client.WithHTTPClient(httpClient), client.WithHTTPHeader(header))

	var res introspection.Query
	if err := gqlirClient.Post(ctx, "Introspection", introspection.Introspection, nil, &res); err != nil {
		return nil, fmt.Errorf("introspection query failed: %w", err)
	}

	doc, err := schemaparser.LoadDocument(endpoint, introspection.SchemaFromIntrospection(endpoint, res))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	return doc, nil
}
