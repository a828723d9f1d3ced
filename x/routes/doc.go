/*
Package routes implements the route registry, a table of named pointers
from a logical service name to the address currently serving it.

Routes can be overwritten but never deleted. Querying an unknown name
returns the empty address instead of failing.
*/
package routes
