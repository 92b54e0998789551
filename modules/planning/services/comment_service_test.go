package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mapwise/storymap/pkg/serrors"
)

func TestCommentService_ForeignStory(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()
	g := newGrid(t, f, ctx)
	other := f.newWorkspace(t, ctx, "Rival")

	st, err := f.stories.Create(ctx, g.ws, g.stepA, g.mvp, "Checkout", "", f.actor)
	require.NoError(t, err)

	_, err = f.comments.CreateForStory(ctx, other, st.ID(), "peek", f.actor)
	require.True(t, serrors.IsNotFound(err))

	_, err = f.comments.ListByStory(ctx, other, st.ID())
	require.True(t, serrors.IsNotFound(err))

	_, err = f.comments.CreateForStory(ctx, g.ws, st.ID(), "", f.actor)
	require.True(t, serrors.IsValidation(err))
}

func TestPersonaService_DuplicateAndMissingAssociation(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()
	g := newGrid(t, f, ctx)

	st, err := f.stories.Create(ctx, g.ws, g.stepA, g.mvp, "Checkout", "", f.actor)
	require.NoError(t, err)
	p, err := f.personas.Create(ctx, g.ws, "Shopper", f.actor)
	require.NoError(t, err)

	require.NoError(t, f.personas.Attach(ctx, g.ws, st.ID(), p.ID()))

	err = f.personas.Attach(ctx, g.ws, st.ID(), p.ID())
	require.True(t, serrors.IsConflict(err))

	require.NoError(t, f.personas.Detach(ctx, g.ws, st.ID(), p.ID()))

	err = f.personas.Detach(ctx, g.ws, st.ID(), p.ID())
	require.True(t, serrors.IsNotFound(err))
}

func TestPersonaService_ForeignPersona(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()
	g := newGrid(t, f, ctx)
	other := f.newWorkspace(t, ctx, "Rival")

	st, err := f.stories.Create(ctx, g.ws, g.stepA, g.mvp, "Checkout", "", f.actor)
	require.NoError(t, err)
	p, err := f.personas.Create(ctx, other, "Outsider", f.actor)
	require.NoError(t, err)

	err = f.personas.Attach(ctx, g.ws, st.ID(), p.ID())
	require.True(t, serrors.IsNotFound(err))

	_, err = f.personas.Create(ctx, g.ws, "", f.actor)
	require.True(t, serrors.IsValidation(err))
}
