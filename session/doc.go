// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session tracks who is signed in on the client side.

	sess := session.New(session.NewFileStore(path))
	client := apiclient.New(url, apiclient.WithTokenSource(sess))
	if err := sess.Init(ctx, client); err != nil { ... }

A Session is an ordinary value passed to whoever needs it; there is no
package-level state.

# Lifecycle

Init restores a stored token and fetches the profile. Login, Refresh and
Init all drop the token when the profile cannot be loaded, so a stale
token never lingers. Logout clears the store as well. Close only releases
memory and leaves the stored token for the next run.
*/
package session
