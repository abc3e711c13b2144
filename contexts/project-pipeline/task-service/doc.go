// Package taskservice implements the task dependency engine inside the
// project-pipeline context.
//
// The module owns task lifecycle (create/complete/reschedule), dependency
// edge edits with cycle rejection, and deadline cascade propagation. Pure
// graph computation lives in domain/taskgraph; infrastructure concerns stay
// behind ports and adapters.
package taskservice
