/*
Package nav resolves dashboard URL fragments to view modules.

A [Table] is declared once at startup from an ordered list of [Route].
Each Route maps a path, e.g., "/objects", to a [Target]:
either a [Redirect] to another path or a [View] holding a view module.
[New] validates the whole declaration up front
(unique paths and names, a redirecting root, no dangling or cyclic redirects),
so a Table that constructs without error resolves every path it registers.

# Addressing

The dashboard uses fragment-based addressing.
Everything after the "#" in a URL is the routable path and everything before it is ignored:

	/public/?tab=1#/objects?ns=dev  =>  /objects (query ns=dev)

Links are built with [*Table.Href], which prefixes the configured base:

	href, _ := tbl.Href("objects", nil) // /public/#/objects

# Loading

Views are [Eager] or [Lazy].
An eager view's [Module] is available before the first navigation.
A lazy view carries a [Loader] called on the first navigation to it.
Concurrent navigations to a still-loading view wait on the same fetch,
and the result is cached for the life of the Table.
A failed fetch is not cached; the next navigation tries again.
*/
package nav
