// Package app wires the circuitgo application together: configuration,
// logging, circuit loading, graph construction, evaluation, and the final
// constraint verdict.
package app
