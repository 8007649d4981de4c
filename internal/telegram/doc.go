// Package telegram renders course change reports and delivers them via the
// Telegram Bot API.
//
// The formatter produces one block per affected department; the client
// sends blocks in HTML mode and splits anything over the length ceiling at
// line boundaries. Only the standard library is used for the Bot API
// itself — two JSON POST endpoints do not warrant a client dependency.
package telegram
