package service

import "errors"

var (
	// ErrSyncInProgress is returned when a sync run is triggered while
	// another one is still in progress. The trigger is rejected, never
	// queued, and the running run is untouched.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrConnectivity is returned when the pre-flight bridge probe fails.
	// Nothing has been read or written at that point.
	ErrConnectivity = errors.New("connectivity check failed")

	// ErrFetchFailed wraps a failure of either snapshot fetch. The run
	// aborts; no partial apply happens from incomplete inputs.
	ErrFetchFailed = errors.New("snapshot fetch failed")

	// ErrApplyFailed wraps a fatal failure of a batched apply call. The
	// run's report still carries whatever counts were accumulated.
	ErrApplyFailed = errors.New("apply failed")
)
