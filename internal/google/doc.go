// Package google loads Google service-account credentials and turns them into
// authorized HTTP clients for the Sheets and Drive APIs.
//
// A service-account key file is parsed with golang.org/x/oauth2/google into a
// JWT configuration. Tokens are minted lazily by the first API request, so a
// key that parses but cannot be exchanged only fails once a call is made.
package google
