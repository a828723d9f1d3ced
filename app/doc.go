/*
Package app contains the host that runs every top level invocation.

The host serializes invocations, resolves the handler of a message by its
path and runs it inside a cache wrap of the application store. Writes are
flushed only when the handler succeeds, any error or panic discards every
write made during the invocation, nested calls included.
*/
package app
