/*
Package errors defines the failure taxonomy for table operations.

Every non-success status code from the remote store becomes a StatusError
tagged with the operation kind that produced it:

	err := players.Get(ctx, "league1", "p42")
	if errors.IsNotFound(err) {
	    // 404 from the store
	}
	if errors.IsRetrieveFailure(err) {
	    code, _ := errors.StatusCode(err)
	    log.Printf("retrieve rejected with %d", code)
	}

Update and delete failures are distinct kinds. Stale concurrency tokens
surface as a 412 on either:

	if errors.IsPreconditionFailed(err) {
	    // re-read the entity and retry at a higher layer
	}

Errors returned by the store client itself (connectivity, credentials,
table provisioning) pass through this layer unmodified.
*/
package errors
