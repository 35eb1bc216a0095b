// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package reconcile applies client mutations optimistically and rolls them
back when the server disagrees.

# Cell

Cell[S] is the shared strategy: capture the state, apply the change,
notify listeners, run the remote commit, then keep the new state or
restore the captured one. One commit runs at a time; a second Update
while one is running returns ErrInFlight without touching anything.
Sync brings in server data between commits.

# Votes

Vote wraps a Cell[State] for one feed item's like button. Upvote toggles
the viewer's like; downvote only removes it. Counts never drop below
zero. A Vote built from a non-numeric id ignores every call.

# Feed lists

FeedList keeps the fetched feed and hands out one Vote per item. Each
vote writes its state back into the list, and View recomputes filtering
and ordering from the latest snapshot.
*/
package reconcile
