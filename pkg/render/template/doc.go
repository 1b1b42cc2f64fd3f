// Package template defines the rendering seam used by template packs to turn
// file contents and file paths into generated project output.
package template
