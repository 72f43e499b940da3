// Package service contains the application use cases. It sits between the
// HTTP layer and the store: handlers call the service, the service calls
// the store and publishes events about what happened.
//
// Services receive their dependencies through constructor injection and
// never depend on a concrete store implementation.
package service
