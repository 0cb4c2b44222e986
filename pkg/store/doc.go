// Package store provides an observable list store with derived values and
// remote-backed async operations.
//
// A Store holds an ordered list of items, a status and an opaque query. The
// item count is derived from the list on every read. Observers registered
// with Subscribe are notified once per committed mutation, after every field
// the mutation touches has been written.
//
// Usage:
//
//	bugs := store.New("bugs", "Centipede")
//	unsubscribe := bugs.Subscribe(func(s store.Snapshot[string]) {
//	    fmt.Println("Total Number of Bugs:", s.Count)
//	})
//	defer unsubscribe()
//
//	bugs.AddItem("Locust") // prints "Total Number of Bugs: 2"
//
// Remote operations:
//
//	countries := store.New[Country]("country").
//	    WithRemote(remote.New("http://country.local/api/Country"))
//
//	countries.Load(ctx, url.Values{"name": {"per"}})
//	if countries.Status() == store.Error { ... }
//
// Load, Create, Update and Delete never return an error. Every failure
// (transport, unexpected status code, malformed JSON) ends in the Error
// status; the detail goes to the logger and to the OnError hook.
//
// Overlapping operations are not serialised: whichever finishes last decides
// the final status.
package store
