/*
Package community defines the common interfaces that tie together the
subpackages of this repository: storage, transactions, handlers and the
context passed between them.

An application is a stack of decorators finished by a router. Every
transaction is decoded, authenticated by the decorators, and dispatched
to the handler registered for the path of its message. Handlers read and
write state through a KVStore that is cache wrapped per transaction, so a
failed transaction never leaves a partial write behind.

We pass context through context.Context between app, middleware, and
handlers. There exist two functions for every XYZ of type T that is kept in
the context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)
*/
package community
