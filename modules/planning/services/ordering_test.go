package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mapwise/storymap/pkg/serrors"
)

// sliceCollection models one ordered scope as a position slice. Index i
// holds the sort order of item i, so the fixture survives shifts without
// caring about identity.
type sliceCollection struct {
	orders []int
	moved  int // index whose position setPos writes
}

func (c *sliceCollection) collection() denseCollection {
	return denseCollection{
		count: func(ctx context.Context) (int, error) {
			return len(c.orders), nil
		},
		shift: func(ctx context.Context, from, to, delta int) error {
			for i, pos := range c.orders {
				if pos >= from && pos <= to {
					c.orders[i] = pos + delta
				}
			}
			return nil
		},
		setPos: func(ctx context.Context, pos int) error {
			c.orders[c.moved] = pos
			return nil
		},
	}
}

func TestReorderDense_MoveForward(t *testing.T) {
	c := &sliceCollection{orders: []int{0, 1, 2, 3}, moved: 0}
	require.NoError(t, reorderDense(context.Background(), c.collection(), 0, 2))
	require.Equal(t, []int{2, 0, 1, 3}, c.orders)
}

func TestReorderDense_MoveBackward(t *testing.T) {
	c := &sliceCollection{orders: []int{0, 1, 2, 3}, moved: 3}
	require.NoError(t, reorderDense(context.Background(), c.collection(), 3, 1))
	require.Equal(t, []int{0, 2, 3, 1}, c.orders)
}

func TestReorderDense_SamePositionIsNoop(t *testing.T) {
	c := &sliceCollection{orders: []int{0, 1, 2}, moved: 1}
	require.NoError(t, reorderDense(context.Background(), c.collection(), 1, 1))
	require.Equal(t, []int{0, 1, 2}, c.orders)
}

func TestReorderDense_OutOfRange(t *testing.T) {
	c := &sliceCollection{orders: []int{0, 1, 2}, moved: 0}

	err := reorderDense(context.Background(), c.collection(), 0, 3)
	require.Error(t, err)
	require.True(t, serrors.IsValidation(err))

	err = reorderDense(context.Background(), c.collection(), 0, -1)
	require.Error(t, err)
	require.True(t, serrors.IsValidation(err))
	require.Equal(t, []int{0, 1, 2}, c.orders)
}

func TestCompactAfterRemoval(t *testing.T) {
	// Item at position 1 was already deleted; survivors hold 0, 2, 3.
	c := &sliceCollection{orders: []int{0, 2, 3}}
	require.NoError(t, compactAfterRemoval(context.Background(), c.collection(), 1))
	require.Equal(t, []int{0, 1, 2}, c.orders)
}

func TestCompactAfterRemoval_LastPosition(t *testing.T) {
	c := &sliceCollection{orders: []int{0, 1}}
	require.NoError(t, compactAfterRemoval(context.Background(), c.collection(), 2))
	require.Equal(t, []int{0, 1}, c.orders)
}

func TestCompactAfterRemoval_EmptyScope(t *testing.T) {
	c := &sliceCollection{orders: nil}
	require.NoError(t, compactAfterRemoval(context.Background(), c.collection(), 0))
	require.Empty(t, c.orders)
}
