/*
Package tableclient defines the boundary to the remote table service.

The typed table layer never talks to a store SDK directly; it goes through
the Client and Handle interfaces defined here. A Client is obtained from a
connection string and hands out per-table operation Handles. Handles work on
raw attribute maps and surface the store's HTTP-style status codes; the
typed layer turns non-success codes into operation-kind failures.

Implementations:
  - ddb: Amazon DynamoDB client
  - memory: in-memory client for tests

Items are addressed by a two-part key stored under the reserved attributes
PK (partition key) and SK (row key). The reserved ETag attribute carries the
opaque concurrency token rewritten on every successful write.
*/
package tableclient
