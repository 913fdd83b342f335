// Package services defines the shared error taxonomy for components that
// talk to external tools or validate user-supplied inputs.
package services
