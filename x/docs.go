/*
Package x contains the governance extensions of rainbow.

Every sub-package is a component that owns its slice of the key value
store: models, a controller implementing the operations and handlers
exposing those operations as messages routed by the host.

Components never authenticate callers on their own. The host resolves
the calling identity and handlers read it through an Authenticator, while
nested calls between components pass the caller address explicitly to the
controller they invoke.
*/
package x
