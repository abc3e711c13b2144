// Package sharegateway is the only surface reachable without internal
// authentication. A customer holding a share token can resolve the campaign
// summary with its current version, mark the review as viewed and submit one
// decision.
//
// The gateway resolves tokens to workflow references and forwards decisions
// to the approval orchestrator. It never exposes internal identifiers or
// error detail to the unauthenticated caller; once the campaign has been
// sent, or the link revoked or expired, every call answers gone.
package sharegateway
