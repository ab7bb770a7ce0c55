/*
Package ddb provides the Amazon DynamoDB implementation of the table client.

A Client is created from a connection string:

	client, err := ddb.New(ctx, "Region=us-east-1;AccessKey=AKIA...;SecretKey=...")

Tables are provisioned with a string PK/SK key schema and on-demand billing,
and CreateTable waits for the table to reach ACTIVE before returning.
Create-if-absent is idempotent: a ResourceInUseException from a racing
creator is not an error.

Status Codes:
DynamoDB's API is not REST-shaped, so the handle synthesizes the table
service's HTTP-style codes from SDK outcomes:

  - Insert: 204 on success, 409 when the key already exists
  - Retrieve: 200 on success, 404 when no item matches
  - Replace/Remove: 204 on success, 412 when the ETag condition fails

Every successful write stamps a fresh ETag attribute (a random UUID), which
is the concurrency token the typed layer echoes back on update and delete.

Transport and credential errors are returned unmodified and carry no status.
*/
package ddb
