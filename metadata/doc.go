// Package metadata holds the schema metadata model read by the validator:
// entity types arranged in single-inheritance hierarchies, their properties,
// keys, foreign keys, indexes, check constraints and triggers, and the store
// objects (tables, views, functions, SQL queries, stored procedures and JSON
// columns) they are mapped to.
//
// Models are assembled with a Builder, which also applies the conventions the
// validator relies on (ownership keys, ordinal keys of owned JSON collections,
// default discriminator values). A built model is treated as read-only.
//
// The resolver methods on EntityType and Property answer the mapping
// questions the validator asks, for example:
//
//	so, ok := order.StoreObject(metadata.Table)
//	column := total.GetColumnName(so)
//	fks := address.FindRowInternalForeignKeys(so)
package metadata
