// Package http implements the HTTP transport layer of the application.
//
// Every request runs through one ordered pipeline built at startup: access
// logging, JSON and urlencoded body parsing, cookie parsing, authentication
// strategy initialization, CORS outside production, CSRF protection, then
// dispatch by path prefix to the users, tweets and csrf routers. Requests no
// router claims end in the not-found envelope.
//
// Stages and route handlers report failures by returning an error. The
// pipeline renders every error exactly once as
//
//	{"message": "...", "statusCode": 400, "errors": {...}}
//
// with the HTTP status taken from statusCode.
package http
