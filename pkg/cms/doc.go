// Package cms provides types, interfaces, and helpers for working with the
// microCMS content API.
//
// # Overview
//
// The cms package defines the content model (Content, ListResponse,
// DeleteResult), the ContentClient interface, the QueryParams builder, the
// error taxonomy and the BatchExecutor. A concrete client is provided by the
// microcms package, which validates configuration and wires the transport.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/Riti0208/microcms-fullstack-mcp-server/pkg/cms"
//	  "github.com/Riti0208/microcms-fullstack-mcp-server/pkg/microcms"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := microcms.New(&cms.Config{ServiceDomain: "example", APIKey: "..."})
//	  if err != nil { log.Fatal(err) }
//
//	  limit := 5
//	  list, err := cli.List(ctx, "blog", cms.NewQueryParams().SetInt("limit", &limit).SetString("q", "hello"))
//	  if err != nil { log.Fatal(err) }
//	  _ = list
//	}
//
// # Queries
//
// QueryParams keeps parameters in insertion order and only encodes values
// that were provided. SetString skips empty strings and SetInt skips nil
// pointers, so optional tool parameters map directly onto it.
//
// # Errors
//
// Non-2xx responses are returned as *APIError carrying the status code, the
// status text and the raw response body. IsNotFound, IsUnauthorized and
// StatusCode make it easy to branch on them. Configuration problems are
// reported as *ConfigurationError and batch item failures as *ItemError.
//
// # Batches
//
// BatchExecutor creates a list of items with POST or PUT. Items run in input
// order, one at a time by default, and a failing item is recorded in the
// report without stopping the rest.
package cms
