/*
Package cash keeps the native balances of identities and component
instances.

Balances are plain unsigned amounts. A multisig instance spends from its
own wallet when a transaction executes, anyone may fund an instance with a
SendMsg.
*/
package cash
