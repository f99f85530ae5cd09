// Package resource provides a typed handle table for owned resources.
//
// Handles are small integers that stand in for values the table owns. A
// font library uses one to track the faces it has loaded so that closing the
// library releases every face still open.
//
// # Handle Table
//
// Table maps integer handles to values:
//
//	table := resource.NewTable[*Face]()
//
//	// Insert a value, get a handle
//	handle, err := table.Insert(face)
//
//	// Retrieve value by handle
//	face, ok := table.Get(handle)
//
//	// Remove and drop the value
//	face, ok = table.Remove(handle)
//
// Handle 0 is reserved and always invalid. Slots of removed values are reused.
//
// # Observers
//
// Register observers to track resource lifecycle events:
//
//	table.Subscribe(resource.ObserverFunc[*Face](func(e resource.Event[*Face]) {
//	    if e.Type == resource.EventDropped {
//	        log.Printf("face %d dropped", e.Handle)
//	    }
//	}))
//
// # Cleanup
//
// Values implementing Dropper are dropped when removed and when the table is
// closed. Drop is called with no table locks held, so it may call back into
// the table.
package resource
