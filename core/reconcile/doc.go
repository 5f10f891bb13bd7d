// Package reconcile cross-checks the release tags known to the three places
// that record them: the lifecycle history database, the release archive
// bucket and the installed version manifest.
//
// Indices are built concurrently and cached per server with a TTL. Concurrent
// callers share one build.
//
//	spec := &reconcile.Spec{
//	    ServerID: "1",
//	    History:  historyStore,
//	    Archive:  archive,
//	    Local:    versions,
//	    CacheTTL: 30 * time.Second,
//	}
//
//	plan, err := reconcile.ReconcileWithPlan(ctx, spec)
//	executed, err := reconcile.ApplyPlan(ctx, spec, archive, exePath, plan, reconcile.Options{Confirmed: true})
//
// The only mutation is archiving the installed executable under its tag when
// the archive does not have it yet.
package reconcile
