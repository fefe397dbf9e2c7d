/*
Package app contains the ABCI application glue: the committed store with its
check and deliver caches, message routing, decorator chains, genesis
initialization and query result encoding.

Application specific wiring (which extensions, which decorators, which
transaction type) lives with the binary, see cmd/splitd/app.
*/
package app
