// Package manifest defines the template descriptor read from template.json:
// the ordered questions asked before generation and the files whose
// placeholder tokens are rewritten with the answers. Descriptors are validated
// against an embedded JSON Schema before they are decoded.
package manifest
