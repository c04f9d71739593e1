// Package generate runs one template generation: resolve and fetch the
// template, copy it to a scratch workspace, ask the manifest's questions,
// rewrite placeholders, and publish the result to the output directory.
package generate
