// Package serve exposes the merged vehicle catalog over a small JSON API.
//
// The server builds the catalog once at startup and serves it from memory;
// there is no per-request database access. Responses carry the run id of
// the pipeline invocation that produced the data.
//
// # Endpoints
//
//   - GET /api/vehicles            List vehicles (filters: country, rank, premium)
//   - GET /api/vehicles/:id        One vehicle plus its unlock prerequisites
//   - GET /api/dependencies        Unlock edges (filters: from, to)
//   - GET /api/ranks               Rank gates (filter: country)
package serve
