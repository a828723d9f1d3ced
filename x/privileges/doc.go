/*
Package privileges implements the privilege registry, an append only list
of privilege names addressed by index. Names are not required to be unique.
*/
package privileges
