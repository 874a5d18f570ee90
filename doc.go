// The [xatadb] package is a Go client for the Xata serverless database
// HTTP API.
//
// # Connecting
//
// Credentials are resolved once, at construction time, from explicit
// values, a secrets provider, or the environment (XATA_API_KEY,
// XATA_DB_URL or DATABASE_URL, XATA_BRANCH). Construction never touches
// the network:
//
//	client, err := xatadb.Connect(nil)
//
// or, with explicit credentials:
//
//	client, err := xatadb.New(credentials.Credentials{
//		APIKey: "xau_...",
//		DBURL:  "https://ws-1234.us-east-1.xata.sh/db/app",
//		Branch: "main",
//	})
//
// # Requests
//
// The client exposes one method per remote endpoint family: CRUD
// ([Client.Query], [Client.Get], [Client.Insert], [Client.Update],
// [Client.Upsert], [Client.Delete]), search and aggregation, transactions
// and SQL, file attachments, schema administration, cursor pagination and
// the ask endpoints. Each method performs a single authenticated round
// trip and returns the raw JSON envelope wrapped in a [Response]; nothing
// is reshaped, cached or retried. Remote failures surface as
// [ServerError] values carrying the original status code and body.
//
// [Client.Do] is the low-level escape hatch for endpoints not yet covered
// by a wrapper method.
//
// # Hosting
//
// A host application constructs one client and reuses it; the client is
// immutable after construction and safe for concurrent use. Named
// instances can be shared through [RegisterConnection] and [Connection].
package xatadb
