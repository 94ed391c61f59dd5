// Rulefind finds and replaces text across the leaves of pattern rule
// projects: topic filters, rule inputs, conditions, outputs, invalid
// responses, and do patterns.
//
// The engine lives in package finder; the command line program is
// cmd/rulefind. This package holds build metadata.
package rulefind
