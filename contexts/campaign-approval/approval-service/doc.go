// Package approvalservice orchestrates the multi-stage approval process for
// campaigns inside the campaign-approval context.
//
// A workflow runs one cycle of up to two stages, team then customer. Team
// approvals are commutative and idempotent per approver. A customer decision
// is exclusive: once the workflow completes, further decisions are refused
// rather than overwritten. Every decision lands in an append-only log, and a
// customer changes-requested decision closes the cycle so a resubmission
// always opens a brand-new workflow instance.
//
// The orchestrator drives the version store and the campaign status machine
// through gate ports. Notification events go through a transactional outbox
// relayed by a worker.
package approvalservice
