// Package events provides a small in-process event bus.
//
// Services emit events without knowing which handlers consume them. The
// only event today is user.created, emitted after a user is stored and
// consumed by the audit log handler.
package events
