/*
Package errors provides semantic error types for drivelog.

Every failure of a store call reaches the caller as a *StoreError, every failure writing
retrieved data to disk as an *IOError. Both unwrap to their cause, so the standard
errors.Is and errors.As work through them:

	rows, err := runner.FetchAll(ctx, spec)
	if err != nil {
	    if errors.IsStoreError(err) {
	        // the query failed; no partial rows were returned
	    }
	    return err
	}

	err = blobs.SaveToLocal(body, "video.m4v")
	if errors.IsIOError(err) {
	    // the local write failed
	}

Missing objects are reported as a StoreError wrapping a *NotFoundError:

	if errors.IsNotFound(err) {
	    fmt.Println("The object does not exist.")
	}
*/
package errors
