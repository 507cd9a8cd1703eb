// Package serverconf resolves application-server configuration documents.
//
// Given a root server.xml, serverconf discovers every deployed application declared
// directly, through <include> elements, or through configDropins overlay directories,
// and builds the resolved variable table used to expand ${name} placeholders.
//
// # Overview
//
// The library is split into small packages, one per concern:
//
//   - document: load a server configuration XML document
//   - variables: property files, precedence tiers, and ${name} substitution
//   - include: classify and load <include> locations, walk the include graph
//   - dropins: locate and scan configDropins/overrides and configDropins/defaults
//   - application: collect application locations and names
//   - resolver: run the whole resolution and return a Result
//   - scerrors: structured error types
//   - logging: pluggable structured logging
//
// # Quick Start
//
//	import "github.com/erraggy/serverconf/resolver"
//
//	result, err := resolver.ResolveWithOptions(
//		resolver.WithServerXML("wlp/usr/servers/defaultServer/server.xml"),
//		resolver.WithConfigDir("src/main/liberty/config"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, loc := range result.Locations {
//		fmt.Println(loc)
//	}
//
// # Variable Precedence
//
// Variables are merged from lowest to highest precedence:
//
//  1. server.env
//  2. bootstrap.properties (or caller-supplied bootstrap properties)
//  3. <variable> elements in included documents
//  4. configDropins/defaults
//  5. <variable> elements in server.xml
//  6. configDropins/overrides
//
// Only after the table is final are application locations and names substituted.
//
// # Command Line
//
// cmd/serverconf wraps the resolver:
//
//	serverconf resolve --config-dir src/main/liberty/config server.xml
//	serverconf vars --explain server.xml http.port
//	serverconf mcp
package serverconf
