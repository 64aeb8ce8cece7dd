// Package mem implements an in-memory diagram store, used for testing and development purposes.
/*
mem provides a full implementation of the [store.Store] interface.
Diagrams are kept as encoded JSON documents, so that modifications of a saved or loaded diagram do not affect the store.

Create a Store

	s, err := mem.New(func(o *mem.Options) {
		o.Common.RejectInvalid = true
	})
	if err != nil {
		log.Fatalf("failed to create mem store: %v", err)
	}

	defer s.Shutdown()
*/
package mem
