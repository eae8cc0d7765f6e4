// Package util holds small parsing helpers shared by config and the CLI.
package util
