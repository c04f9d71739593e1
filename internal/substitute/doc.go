// Package substitute rewrites placeholder tokens in template files with the
// operator's answers.
package substitute
