// Package pdt holds the particle data table and the staging builder that
// fills it.
//
// A Table is built once through a Builder: dialect adapters accumulate
// TempParticle staging records, aliases and definitions, and Close
// publishes every valid staging record into the table exactly once.
//
//	table := pdt.NewTable("my-table", pdt.WithResolver(pdt.NucleusResolver{}))
//	err := pdt.Build(table, func(b *pdt.Builder) error {
//		if err := evtgen.New().Add(pdlFile, b); err != nil {
//			return err
//		}
//		return evtgen.New().Add(decayFile, b)
//	})
//
// After publish the table serves concurrent lookups. A lookup miss calls
// the table's Resolver, which may synthesize the missing record; resolution
// is refused for lookups made while a resolution for the same table is in
// progress in the same call context, which caps the depth at one.
//
// Concurrent misses for the same identifier on different goroutines each
// run the resolver and each insert the result; the last insert wins. There
// is no deduplication. Callers that need exactly-once synthesis must
// serialize lookups themselves.
package pdt
