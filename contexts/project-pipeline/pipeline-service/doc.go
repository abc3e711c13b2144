// Package pipelineservice implements the project stage engine inside the
// project-pipeline context.
//
// The module advances projects through the ordered stage pipeline, gated by
// the task dependency rules, and owns the append-only stage history. Stage
// entry instantiates templated tasks; stage exit auto-completes tasks that
// opted in.
package pipelineservice
