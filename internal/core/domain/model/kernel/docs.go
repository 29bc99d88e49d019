// Package kernel provides the value objects shared by the quiz and service
// domains.
//
// The package includes:
//   - UUID: identifier of orders and quiz submissions
//   - UserID: chat identity of requesters, agents and participants
//   - Location: a latitude/longitude point shared from the chat client
//   - Clock: the source of creation timestamps
//
// Zero values are invalid; every type exposes Validate so that aggregates can
// reject values that bypassed the constructors.
package kernel
