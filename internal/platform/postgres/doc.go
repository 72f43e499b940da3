// Package postgres provides the PostgreSQL implementation of
// store.UserStore. It maps between domain users and rows of the users
// table and translates driver errors into store errors.
package postgres
