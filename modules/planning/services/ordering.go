package services

import (
	"context"
	"fmt"

	"github.com/mapwise/storymap/pkg/serrors"
)

// denseCollection abstracts one densely ordered sibling scope: journeys in a
// workspace, steps in a journey, releases in a workspace. Sort orders within
// a scope always form {0..n-1}; every mutation below preserves that.
type denseCollection struct {
	count  func(ctx context.Context) (int, error)
	shift  func(ctx context.Context, from, to, delta int) error
	setPos func(ctx context.Context, pos int) error
}

// reorderDense moves an item from oldPos to newPos, shifting the siblings in
// between by one. Reordering to the current position is a no-op that still
// succeeds. Must run inside the caller's transaction.
func reorderDense(ctx context.Context, coll denseCollection, oldPos, newPos int) error {
	n, err := coll.count(ctx)
	if err != nil {
		return err
	}
	if newPos < 0 || newPos >= n {
		return serrors.NewValidation(
			"ORDER_POSITION_OUT_OF_RANGE",
			fmt.Sprintf("position %d is out of range [0, %d)", newPos, n),
		)
	}
	if newPos == oldPos {
		return nil
	}

	if newPos > oldPos {
		err = coll.shift(ctx, oldPos+1, newPos, -1)
	} else {
		err = coll.shift(ctx, newPos, oldPos-1, +1)
	}
	if err != nil {
		return err
	}
	return coll.setPos(ctx, newPos)
}

// compactAfterRemoval closes the gap a deleted sibling leaves behind. Call
// after the row is gone, in the same transaction: the survivors hold orders
// {0..n} minus removedPos, and [removedPos+1, n] shift down by one.
func compactAfterRemoval(ctx context.Context, coll denseCollection, removedPos int) error {
	n, err := coll.count(ctx)
	if err != nil {
		return err
	}
	if removedPos >= n {
		return nil
	}
	return coll.shift(ctx, removedPos+1, n, -1)
}
