// Package mart resolves identifier sets against an Ensembl BioMart
// martservice endpoint.
//
// Design:
//   - Client carries the whole connection identity (host, dataset, HTTP
//     client, pacing) so tests can point it at a double.
//   - Resolver owns batching and returns partial results plus a per-batch
//     error list; the caller picks all-or-nothing vs best-effort.
//   - Table is schema-on-response: column names come back from the service
//     as display names and are normalized downstream.
package mart
