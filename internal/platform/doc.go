// Package platform hides the permission differences between Unix and
// Windows hosts.
package platform
