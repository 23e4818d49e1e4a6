/*
Package errors implements the error model shared by all community extensions.

Every error returned by a handler should wrap one of the root errors registered
with Register. The root error carries the ABCI code that is returned to the
client, so callers can tell "candidate not found" apart from "invalid
signature" without parsing messages.

Reuse the root errors declared in this package whenever they fit and register a
custom one in the extension otherwise:

	var ErrAlreadyMember = errors.Register(1101, "already a member")

Wrap an error at the point it is created to attach a stack trace only once:

	return errors.Wrapf(ErrAlreadyMember, "address %s", addr)

Use `fmt.Printf("%+v", err)` to print the full stack trace, and the Is method of
a root error to test the kind of an error:

	if ErrNotFound.Is(err) {
		...
	}
*/
package errors
