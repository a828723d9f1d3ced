/*
Package roles implements the role registry.

A registry instance holds an append only list of uniquely named roles, the
privileges attached to each role and the roles attached to each user. All
lists keep duplicates and nothing is ever removed. Only the core, the
identity that created the instance, may mutate it.
*/
package roles
