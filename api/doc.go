// Package api provides a client for querying a Folio content repository.
//
// Client fetches the repository description, builds searches against the
// repository's forms, and returns pages of parsed documents. Responses are
// cached in memory so that repeated searches within one content version do
// not touch the network.
//
// ## Refs
//
// Every search addresses a ref, which identifies one version of the
// repository content. The master ref is the latest published version and is
// what searches use unless told otherwise. Release refs address content
// scheduled for future publication, and experiment variations have refs of
// their own. NewClient fails if the repository exposes no master ref.
//
// ## Response Caching
//
// Search responses are cached in a ResponseCache keyed by the full request
// URL. Query parameters are encoded in sorted order, so two submissions of
// the same search produce the same URL and share one cache entry. Clients
// not configured with a cache share a single process-wide cache, so separate
// clients for the same repository also share responses. Concurrent requests
// for the same URL are collapsed into a single fetch.
//
// Cached responses carry no time-to-live. A response is valid for as long as
// the content version it was fetched from, so the entire cache is discarded
// when a refresh observes that the master ref advanced, and entries are
// otherwise evicted only by the cache's capacity bound.
//
// ## Refreshing
//
// Refresh re-fetches the repository description. If the refresh interval is
// non-zero, a timer sets a flag once the interval elapses, and the next
// query checks the flag and launches a refresh in the background. This way
// there is no background goroutine to stop when done with the client, and
// there is no refresh activity while the client is idle. OnRefChange
// delivers a notification each time a refresh finds that the master ref
// moved.
//
// ## Forms and Predicates
//
// Searches are built from the forms the repository declares. The everything
// form matches all documents; Query restricts it with predicates:
//
//	form, err := client.Form(api.EverythingForm)
//	if err != nil {
//		...
//	}
//	resp, err := form.Query(api.At("document.type", "product")).Submit(ctx)
//
// GetByID, GetByUID, GetByIDs, and GetBookmark wrap the common lookups.
package api
