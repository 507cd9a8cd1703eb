// Package resolver resolves a server configuration: it discovers every application
// declared by a root server.xml, its includes, and its configDropins overlays, and it
// builds the final variable table used to substitute ${name} placeholders.
//
// # Quick Start
//
//	result, err := resolver.ResolveWithOptions(
//	    resolver.WithServerXML("server.xml"),
//	    resolver.WithConfigDir("src/main/liberty/config"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, loc := range result.Locations {
//	    fmt.Println(loc)
//	}
//
// Or create a reusable Resolver:
//
//	r := resolver.New()
//	r.ConfigDir = "src/main/liberty/config"
//	result, err := r.Resolve("server.xml")
//
// # Variable precedence
//
// Variables are folded from six tiers, lowest precedence first:
//
//  1. server.env from the config directory, else the fallback file
//  2. bootstrap.properties from the config directory, else the caller's map, else the
//     fallback file
//  3. <variable> elements of every included document
//  4. configDropins/defaults overlays and their includes
//  5. <variable> elements of the root document
//  6. configDropins/overrides overlays and their includes
//
// Applications are collected only after the table is final, from the root document, its
// includes, and then the overrides and defaults overlays.
//
// # Errors
//
// Only the root document and property files that exist in the config directory, or that
// were named explicitly, can fail a run. Everything else (missing or malformed includes,
// non-XML overlay files, unsupported schemes) is skipped and reported in Result.Warnings.
package resolver
