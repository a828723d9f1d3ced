/*
Package factory spawns multisig instances on request.

Every spawn increments the factory counter, which salts the derived child
address, creates the instance with the caller as owner and records the new
address both by spawn index and under every initial manager. Identities
can look up every instance they were made a manager of.
*/
package factory
