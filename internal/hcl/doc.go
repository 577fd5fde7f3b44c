// Package hcl is the concrete HCL implementation of circuit-file loading.
// It parses .hcl files, decodes them against the schema package's block
// structures, and translates the result into the format-agnostic model
// defined in the circuit package.
package hcl
