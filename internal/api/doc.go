// Package api handles incoming HTTP requests, request binding and
// validation, and response formatting. It adapts HTTP to the user service:
// GET /users lists the directory and POST /users appends to it.
package api
