// Package web serves the browser pages.
//
// The callback page is the whole client session: it copies the user and
// token from the redirect into localStorage and the dashboard reads them
// back. Logout clears both keys.
package web
