// Package runner orchestrates a batch: discover episode pairs, probe and
// plan each one, then execute the plans on a bounded worker pool. One
// episode failing never aborts the batch; every pair ends the run with an
// explicit result.
package runner
