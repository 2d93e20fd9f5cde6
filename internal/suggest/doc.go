// Package suggest finds the closest known identifier to a misspelled one.
//
// Names are compared after folding case and separators, so "json_name",
// "JSONName" and "jsonname" are the same word. Diagnostics use it to append
// a "did you mean" hint to unknown directive verbs and parameter names.
package suggest
