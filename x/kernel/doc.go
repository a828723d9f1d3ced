/*
Package kernel bootstraps the capability layer.

A single guarded Init spawns the role, privilege and route registries and
makes the kernel their core. From then on the kernel is the only identity
able to mutate them, and it exposes their mutating operations as its own
messages.
*/
package kernel
