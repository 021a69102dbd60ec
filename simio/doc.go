// Package simio provides scripted key pins for running the recognizer off
// target, in tests and in the keysim tool.
package simio
