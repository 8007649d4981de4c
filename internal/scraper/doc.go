// Package scraper maintains an authenticated session against the
// university registration system and extracts course records from its
// department course-list pages.
//
// The session flow (login POST, menu warm-up, department queries) mirrors
// what the web UI does; every response is checked for the login-redirect
// marker since the system silently serves the login page once a session
// expires. Extraction itself never fails on page shape: malformed cells
// degrade to field defaults and only transport problems are errors.
package scraper
