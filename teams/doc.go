// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package teams manages a feed owner's incoming applications.

	board := teams.NewBoard(feedID, client)
	if err := board.Load(ctx); err != nil { ... }
	app, err := board.Approve(ctx, appID)

Applications move PENDING to APPROVED or PENDING to REJECTED and never
leave a decided state. The board checks this locally with
models.ApplicationStatus.CanTransitionTo before calling the server, which
enforces the same rule and answers 409 otherwise. A failed call leaves
the application PENDING.
*/
package teams
