/*
Package multisig implements the threshold multisig transaction engine.

An instance holds an owner, a fixed threshold and a registry of managers.
Any active manager or the owner may propose a transfer from the instance
balance. Managers then sign it one by one and the signature that first
reaches the threshold marks the transaction executed and moves the funds,
within the same invocation.

Managers are never removed from the registry, revoking one only flips its
status. Listing managers therefore returns revoked ones too.
*/
package multisig
