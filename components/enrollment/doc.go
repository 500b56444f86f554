// Package enrollment serves the registration form over net/http.
//
// The component mounts three routes under a base path:
//
//	GET  {base}/register           the server-rendered form
//	POST {base}/register           submit or reset (form-encoded or JSON)
//	GET  {base}/register/options   departments and programs for a level
//	GET  {base}/register/contract  the OpenAPI document of these routes
//
// Every request mounts a fresh registration form, so the handlers keep no
// state between requests. Clients asking for application/json receive a
// submit result instead of the re-rendered page.
package enrollment
