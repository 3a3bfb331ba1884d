// Package core holds the booking wizard's interaction logic.
//
// Allowed here:
// - dial and radial selector geometry and drag state
// - the pointer dispatcher that scopes drag releases to the whole program
// - the wizard state machine, its draft and its message contracts
// - key binding registries shared by presentation layers
//
// Not allowed here:
// - rendering, styling or terminal concerns
// - configuration loading or log sink setup
package core
