/*
Package rainbow defines the interfaces shared by the governance components:
storage, messages, handlers, addresses and the request context.

Components live in the x/ subpackages. Every component instance (a multisig
wallet, a role registry, ...) is identified by an Address and owns the part of
the key value store prefixed with that address. The app package hosts the
components and turns every external call into a single unit of work that is
either fully written or fully discarded.
*/
package rainbow
