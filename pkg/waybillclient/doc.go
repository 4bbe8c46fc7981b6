// Package waybillclient provides the primary entry point for constructing a
// FreightFlow waybill client that implements the waybill.Client interface.
//
// It layers configuration, HTTP transport, credential storage, caching, and
// session refresh on top of the resource interfaces and types defined in the
// waybill package. Most applications should import waybillclient to build a
// client, then use the returned waybill.Client to access resource-specific
// clients, for example Waybills(), Companies(), Notices().
//
// Quick start
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
//
//	  // Minimal: anonymous tracking queries only.
//	  cli, err := waybillclient.NewWithBaseURL(ctx, "https://api.example.com/app-api")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with persistence so sessions and cached payloads survive restarts:
//	  cli, err = waybillclient.New(ctx, &waybill.Config{
//	    BaseURL:   "https://api.example.com/app-api",
//	    TenantID:  "1",
//	    StorePath: "/home/user/.waybillctl/store.yml",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  companies, err := cli.Companies().InnerList(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = companies
//	}
//
// Anonymous endpoints work without a session. Authenticated endpoints need a
// login first; see the waybill.AuthClient interface returned by Auth().
package waybillclient
