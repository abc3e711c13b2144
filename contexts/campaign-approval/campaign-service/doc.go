// Package campaignservice owns the outward-visible campaign lifecycle inside
// the campaign-approval context.
//
// A campaign moves from draft through review and approval into the send
// pipeline. Every transition is checked against a closed table before any
// write is issued, so a rejected move leaves the record untouched. Status
// changes append to an append-only history log and emit outbox events for
// external notification collaborators.
package campaignservice
