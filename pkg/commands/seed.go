package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/mapwise/storymap/modules/planning"
	"github.com/mapwise/storymap/modules/planning/domain/entities/story"
	"github.com/mapwise/storymap/modules/planning/domain/entities/storylink"
	"github.com/mapwise/storymap/pkg/composables"
	"github.com/mapwise/storymap/pkg/configuration"
	"github.com/mapwise/storymap/pkg/eventbus"
)

// SeedDatabase creates a demo workspace with a small but fully connected map:
// two journeys, steps under each, a planned release next to the sentinel,
// stories across the grid, and a couple of tags, personas and dependencies.
func SeedDatabase(ctx context.Context) error {
	conf := configuration.Use()
	log := conf.Logger()

	pool, err := pgxpool.New(ctx, conf.Database.ConnectionString())
	if err != nil {
		return errors.Wrap(err, "failed to connect to database")
	}
	defer pool.Close()

	ctx = composables.WithPool(ctx, pool)
	svc := planning.NewServices(eventbus.NewEventPublisher(log), log)
	actor := uuid.New()

	ws, err := svc.Workspaces.Create(ctx, "Demo Workspace", actor)
	if err != nil {
		return errors.Wrap(err, "failed to create workspace")
	}
	tenantID := ws.ID()

	shopping, err := svc.Journeys.Create(ctx, tenantID, "Shopping", actor)
	if err != nil {
		return err
	}
	checkout, err := svc.Journeys.Create(ctx, tenantID, "Checkout", actor)
	if err != nil {
		return err
	}

	browse, err := svc.Steps.Create(ctx, tenantID, shopping.ID(), "Browse catalog", actor)
	if err != nil {
		return err
	}
	search, err := svc.Steps.Create(ctx, tenantID, shopping.ID(), "Search", actor)
	if err != nil {
		return err
	}
	pay, err := svc.Steps.Create(ctx, tenantID, checkout.ID(), "Pay", actor)
	if err != nil {
		return err
	}

	mvp, err := svc.Releases.Create(ctx, tenantID, "MVP", actor)
	if err != nil {
		return err
	}

	var stories []story.Story
	for _, spec := range []struct {
		stepID    uuid.UUID
		releaseID uuid.UUID
		title     string
	}{
		{browse.ID(), mvp.ID(), "List products by category"},
		{browse.ID(), mvp.ID(), "Show product details"},
		{search.ID(), mvp.ID(), "Full text search"},
		{pay.ID(), mvp.ID(), "Pay by card"},
	} {
		st, err := svc.Stories.Create(ctx, tenantID, spec.stepID, spec.releaseID, spec.title, story.StatusTodo, actor)
		if err != nil {
			return err
		}
		stories = append(stories, st)
	}

	frontend, err := svc.Tags.Create(ctx, tenantID, "frontend", actor)
	if err != nil {
		return err
	}
	if err := svc.Tags.Attach(ctx, tenantID, stories[0].ID(), frontend.ID()); err != nil {
		return err
	}

	shopper, err := svc.Personas.Create(ctx, tenantID, "Shopper", actor)
	if err != nil {
		return err
	}
	if err := svc.Personas.Attach(ctx, tenantID, stories[0].ID(), shopper.ID()); err != nil {
		return err
	}

	if _, err := svc.Links.Create(ctx, stories[0].ID(), stories[3].ID(), storylink.TypeBlocks); err != nil {
		return err
	}

	log.WithField("workspace_id", tenantID).Info("seeded demo workspace")
	return nil
}
