// Package project defines the immutable value types shared by template
// suppliers, the registry and generators: Spec describes one offerable
// template, Parameter one of its typed inputs, and Config binds concrete
// values to a Spec right before generation. Supplier and Generator are the
// extension contracts implemented outside this module.
package project
