// Package variables builds the resolved variable table for a server configuration and
// substitutes ${name} placeholders.
//
// # Tiers
//
// Variables come from several sources, each captured as a [Tier]. [Fold] merges tiers
// left to right, so a later tier overwrites a whole value written by an earlier one.
// The resolver folds the tiers in this order, lowest precedence first:
//
//  1. server.env
//  2. bootstrap.properties
//  3. variables from included documents
//  4. configDropins/defaults
//  5. <variable> elements in the root server.xml
//  6. configDropins/overrides
//
// # Substitution
//
// [Substitute] replaces each ${name} occurrence whose value is present and non-empty.
// Unresolved placeholders are left verbatim, and replacement text is never rescanned:
//
//	t := variables.Fold(variables.Tier{Name: "test", Values: map[string]string{"dir": "apps"}})
//	variables.Substitute("${dir}/a.war", t)    // "apps/a.war"
//	variables.Substitute("${missing}/a.war", t) // "${missing}/a.war"
//
// Property files (server.env and bootstrap.properties) use the Java .properties format
// and are read with [LoadPropertiesFile].
package variables
