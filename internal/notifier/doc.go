// Package notifier delivers rendered change reports. The Telegram
// implementation sends the time-range header followed by one message per
// department block; the dry-run implementation prints instead of sending.
package notifier
