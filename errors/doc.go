/*
Package errors implements the error taxonomy shared by all rainbow components.

Every failure is categorized by a root error declared with Register. Root
errors carry a unique code that is exposed to the caller through ABCIInfo, so
clients can tell an unauthorized call from a duplicate signature without
parsing messages.

Wrap a root error at the point of failure to attach a description and a stack
trace:

	return errors.Wrapf(errors.ErrNotFound, "transaction %d", id)

and test the kind of a returned error with Is:

	if errors.ErrNotFound.Is(err) { ... }

The innermost wrap records a stack trace (github.com/pkg/errors), available
through the StackTrace method of the wrapped cause.
*/
package errors
