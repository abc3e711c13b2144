// Package versionservice implements the versioned artifact store inside the
// campaign-approval context.
//
// Each campaign accumulates immutable PDF version records with monotonically
// increasing numbers. The rendered content reference is fixed at creation;
// only the review status moves, and never backwards. At most one version per
// campaign is awaiting the customer at a time.
package versionservice
