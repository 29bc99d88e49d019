// Package conversation keeps the per-chat dialogue state of both bots.
//
// A Session belongs to one chat and is in exactly one Step. Input from the
// chat is applied to the session, validated for the current step, and either
// advances the step or leaves it unchanged with a validation error. The
// service order form collects its fields step by step; the quiz flow only
// waits for one message of answers.
//
//	idle ──/test──> awaiting_quiz_answers ──answers──> idle
//	idle ──/order─> awaiting_service_type ─> awaiting_name ─> awaiting_phone
//	     ─> awaiting_problem ─> awaiting_address ─> awaiting_confirmation ─> idle
package conversation
