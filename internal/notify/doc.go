// Package notify delivers audit outcomes as ntfy pushes.
//
// The real implementation posts to the topic configured under
// [notifications] and degrades to a no-op when no topic is set, so callers
// never branch on whether notifications are enabled. Delivery failures are
// for the caller to log; they must never fail an audit that already ran.
package notify
