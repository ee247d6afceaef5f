// Package types defines the shared data model and collaborator interfaces
// for the composition build pipeline.
package types
