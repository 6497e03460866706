/*
Package req provides ergonomics for handling query parameters in an HTTP request.

The dashboard's API takes its input from query parameters only,
e.g., /api/resolve?url=/public/#/objects.
Package req parses those into a pointer to a struct.
That struct ought to leverage the appropriate struct tags for performing two tasks.
First, matching keys in the query to fields on the struct ("schema").
Second, validating the query's data meets requirements ("validate").

The parade of errors that may propagate from such a task
are translated to nightshift sentinel errors, so handlers can respond
with 400 whenever errors.Is(err, nightshift.ErrNotValid).
*/
package req
