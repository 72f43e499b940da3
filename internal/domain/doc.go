// Package domain contains the core business entities of the users API.
// It has no dependencies on storage or transport and is shared by every
// other layer of the application.
package domain
