/*
Package orm provides a typed storage layer over a KVStore.

A ModelBucket stores models of a single type under a prefixed subspace of
the database. Every model is validated before it is written and can be
exposed to ABCI queries by registering the bucket in a QueryRouter.
*/
package orm
