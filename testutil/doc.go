// Package testutil provides a scripted HTTP service for tests.
//
// Server is a gin engine behind httptest. Tests script replies per method and
// path, drive the code under test against Server.URL, then assert on the
// recorded requests:
//
//	srv := testutil.StartServer(t, "ops")
//
//	srv.Handle(http.MethodGet, "/ops/1",
//	    testutil.JSON(200, `{"status":"Running"}`),
//	    testutil.JSON(200, `{"status":"Succeeded"}`),
//	)
//
//	if n := srv.Count(http.MethodGet, "/ops/1"); n != 2 { ... }
//
// The placeholder {base} in reply bodies and headers expands to the server's
// URL, so scripted next links and operation locations point back at it.
//
// Server implements TestComponent: T(t).Reset clears scripts and recorded
// requests between cases, and T(t).Checkpoint rolls recorded requests back.
package testutil
