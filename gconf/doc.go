/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Every package owns a single configuration entity stored under the
"_c:<package name>" key. It is loaded from the "conf" section of the
genesis file and can later be patched by its owner with a message that
carries the new values in a Patch field.
*/
package gconf
