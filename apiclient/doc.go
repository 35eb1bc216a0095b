// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apiclient is a typed Go client for the onewave REST API.

	c := apiclient.New("http://localhost:3318", apiclient.WithTokenSource(sess))
	items, err := c.ListFeeds(ctx, apiclient.ListFeedsOptions{Sort: "popular"})

Every method maps to one endpoint and takes a context for cancellation.

# Errors

Non-2xx responses come back as *APIError carrying the status code and the
server's message. Use IsStatus to branch on a code:

	if apiclient.IsStatus(err, http.StatusConflict) { ... }

Network failures are wrapped with the method and path and keep the
underlying error for errors.Is.

# Authentication

A TokenSource is consulted on every request, so a session that logs in
or out later is picked up without rebuilding the client. StaticToken
covers scripts that already hold a token.
*/
package apiclient
