// Package notification contains the Notification aggregate: a persistent,
// pull-based message addressed to one actor. Notifications are created by
// the dispatcher as a side effect of order transitions, mutated only to
// flip their read flag, and deleted either by their recipient or by
// age-based expiry.
package notification
