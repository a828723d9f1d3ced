/*
Package spawn instantiates component instances from registered templates.

A template is identified by a reference derived from its name. Spawning
derives the child address from the template reference, the parent address
and a parent controlled sequence, so the same inputs always produce the
same child, and records who created which child.
*/
package spawn
