// Package include resolves <include> locations and walks the include graph of a server
// configuration document.
//
// # Location classification
//
// [Classify] is a pure function that maps a raw location attribute to a [Location].
// Prefixes are checked in a fixed order:
//
//  1. http: or https: with a valid URL → [KindRemote]
//  2. file: with a valid URL → [KindLocalAbsolute]
//  3. ftp: → [KindUnsupported], never fetched
//  4. anything else is a filesystem path, [KindLocalAbsolute] or [KindLocalRelative]
//
// A location with an http, https, or file prefix that does not parse as a URL is
// [KindInvalid].
//
// # Resolution
//
// [Resolver] turns a location into a parsed document. Relative paths are tried against
// ConfigDir first (when it exists) and then against ServerDir. Documents are cached for the
// lifetime of the Resolver, so one Resolver should be used for exactly one resolution run.
//
// # Walking
//
// [Walker] visits every document reachable from a root through includes, depth first and
// pre-order. Failed includes are recorded as warnings and skipped. Each call to Walk keeps a
// visited set of canonical locations, so cyclic include graphs terminate.
package include
