// Steepest descent minimizes scalar expressions built from symbolic
// expression trees. Partial derivatives are computed and reduced
// symbolically, then evaluated at every cycle of a fixed-step gradient
// descent.
//
// Usage:
//
//	# Minimize the default objective
//	descent run
//
//	# Minimize a named objective, printing every cycle
//	descent run --objective bowl --verbose
//
//	# Run from a YAML configuration file and dump metrics
//	descent run --config descent.yaml --metrics-out descent.prom
//
//	# Show the symbolic partial derivatives of an objective
//	descent diff --objective wave
//
//	# List built-in objectives
//	descent list
package main

func main() {
	Execute()
}
