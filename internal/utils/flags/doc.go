// Package flags binds the flags shared by several projctl commands.
package flags
