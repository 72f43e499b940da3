// Package testdb provides helpers for tests that need a real PostgreSQL
// database.
//
// Tests call GetTestDBWithT, which skips the test unless DATABASE_URL (or
// USERS_TEST_DB_URL) is set, migrates the schema, and closes the connection
// when the test ends. ResetUsers empties the users table so each test starts
// from identifier 1, and WithTx runs read-only checks in a transaction that
// is always rolled back.
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.ResetUsers(t, db)
//	    ...
//	}
package testdb
