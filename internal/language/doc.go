// Package language normalizes ISO-639 language tags found in container
// stream metadata and answers the French/Japanese membership questions the
// track selector depends on.
package language
