// Package prompt collects typed answers to template questions from an
// operator, either through an interactive terminal prompt or line by line
// from any reader.
package prompt
