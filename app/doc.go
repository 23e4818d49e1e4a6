/*
Package app contains standard implementations of a number of components.

It is a good place to start when building an application, and
provides the router, the decorator chain and the ABCI application
that glue the extensions together.

StoreApp handles the storage, queries and the genesis file, BaseApp
adds transaction processing on top of it.
*/
package app
