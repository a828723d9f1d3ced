/*
Package rainbowtest provides helpers for testing rainbow components:
deterministic identities, authenticator mocks and an in memory store.
*/
package rainbowtest
