// Package order implements the service ticket aggregate and its lifecycle.
//
// The package includes:
//   - Order: the aggregate root (creation, single assignment, agent-guarded
//     status transitions, single requester-guarded rating)
//   - Status: new, in_progress, done
//   - Details: the descriptive fields captured by the order form
//   - Rating: the 1..5 score given by the requester
//   - Action: the follow-up operations currently valid for an order
//
// Key business rules:
//   - An order is claimed at most once; a second claim reports the existing
//     assignee instead of overwriting it
//   - Only the assignee may change the status, and only after the claim
//   - Status has no terminal value: the assignee may move done back to new
//   - Only the requester may rate, only once, and only when the order is done
//
// The aggregate only checks the rules; making claim and rating atomic across
// concurrent callers is the job of the repository's conditional updates.
package order
