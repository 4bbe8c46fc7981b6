// Package waybill provides types, interfaces, and helpers for working with
// the FreightFlow waybill tracking API.
//
// # Overview
//
// The waybill package defines the domain types (e.g., Waybill, TrackNode,
// Company, Notice) and the interfaces for resource-oriented clients (e.g.,
// WaybillsClient, CompaniesClient). A concrete implementation of these clients
// is provided by the waybillclient package, which wires configuration,
// transport, credential storage, caching, and token refresh. Most consumers
// should import waybillclient to construct a client and then interact with the
// resource client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/freightflow/waybill-client/pkg/waybill"
//	  "github.com/freightflow/waybill-client/pkg/waybillclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := waybillclient.New(ctx, &waybill.Config{BaseURL: "https://api.example.com/app-api"})
//	  if err != nil { log.Fatal(err) }
//
//	  track, err := cli.Waybills().GetTrackInfo(ctx, "SF1234567890", 1)
//	  if err != nil { log.Fatal(err) }
//	  _ = track
//	}
//
// # Errors
//
// All failures cross the API boundary as *APIError carrying a Kind (transport
// classification or HTTP/business failure), a code, and a user-presentable
// message. Helpers such as IsUnauthorized, IsNotFound, and IsSessionExpired
// make it easy to branch on common cases.
//
// # Caching
//
// Read-mostly endpoints are cached through a two-tier CacheManager (bounded
// memory plus a persistent tier). Cache keys are derived from the request path
// and query, so the same query with reordered parameters hits the same entry.
// TTLs are resolved per endpoint; see EndpointTTL.
//
// # Sessions
//
// Authenticated requests carry a bearer token from the credential store. On a
// 401 the client refreshes the token once, transparently replaying the failed
// request and any requests that arrived while the refresh was in flight. When
// the refresh itself fails, stored credentials are cleared and callers receive
// an error matching IsSessionExpired.
package waybill
