// Package manifest reads value-type declarations from YAML and writes
// reconciled property reports back out.
//
// A manifest stands in for Go source when the declarations come from
// elsewhere, or when a reconciliation case should be pinned in a file.
//
// # Schema Overview
//
//	version: "1"
//	package: example.com/shapes
//	name: shapes
//	types:
//	  - name: Point
//	    fields:
//	      - name: x
//	        type: int
//	        visibility: package   # public (default), package, private
//	      - name: Label
//	        type: string
//	        json: label
//	        tokens: omitempty     # single token or a list
//	    methods:
//	      - name: GetX
//	        result: int
//	    constructor:
//	      name: NewPoint
//	      pointer: true
//	      params:
//	        - name: x
//	          type: int
//
// Builders use a builder: entry with type, factory, methods and build.
package manifest
