// Package planning wires the story mapping domain: ordered journeys, steps
// and releases, stories positioned on the step/release grid, dependency
// links, and the deletion policies that keep all of it consistent.
package planning

import (
	"github.com/sirupsen/logrus"

	"github.com/mapwise/storymap/modules/planning/infrastructure/persistence"
	"github.com/mapwise/storymap/modules/planning/services"
	"github.com/mapwise/storymap/pkg/eventbus"
)

// Services is the assembled service registry for the module. Repositories
// are stateless; they pick up the transaction or pool from the context.
type Services struct {
	Workspaces *services.WorkspaceService
	Journeys   *services.JourneyService
	Steps      *services.StepService
	Releases   *services.ReleaseService
	Stories    *services.StoryService
	Links      *services.LinkService
	Tags       *services.TagService
	Personas   *services.PersonaService
	Comments   *services.CommentService
	Deletion   *services.DeletionService
	Facade     *services.PlanningFacade
}

func NewServices(bus eventbus.EventBus, log *logrus.Logger) *Services {
	workspaceRepo := persistence.NewWorkspaceRepository()
	journeyRepo := persistence.NewJourneyRepository()
	stepRepo := persistence.NewStepRepository()
	releaseRepo := persistence.NewReleaseRepository()
	storyRepo := persistence.NewStoryRepository()
	linkRepo := persistence.NewStoryLinkRepository()
	tagRepo := persistence.NewTagRepository()
	personaRepo := persistence.NewPersonaRepository()
	commentRepo := persistence.NewCommentRepository()

	guard := services.NewTenantGuard(persistence.NewTenantResolver())

	workspaces := services.NewWorkspaceService(workspaceRepo, releaseRepo, bus)
	journeys := services.NewJourneyService(journeyRepo, guard, bus)
	steps := services.NewStepService(stepRepo, guard, bus)
	releases := services.NewReleaseService(releaseRepo, guard, bus)
	stories := services.NewStoryService(storyRepo, guard, bus)
	links := services.NewLinkService(linkRepo, guard, bus)
	tags := services.NewTagService(tagRepo, guard, bus)
	personas := services.NewPersonaService(personaRepo, guard, bus)
	comments := services.NewCommentService(commentRepo, guard, bus)

	deletion := services.NewDeletionService(services.DeletionServiceParams{
		Workspaces: workspaceRepo,
		Journeys:   journeyRepo,
		Steps:      stepRepo,
		Releases:   releaseRepo,
		Stories:    storyRepo,
		Links:      linkRepo,
		Tags:       tagRepo,
		Personas:   personaRepo,
		Comments:   commentRepo,
		Guard:      guard,
		Publisher:  bus,
		Log:        log,
	})

	return &Services{
		Workspaces: workspaces,
		Journeys:   journeys,
		Steps:      steps,
		Releases:   releases,
		Stories:    stories,
		Links:      links,
		Tags:       tags,
		Personas:   personas,
		Comments:   comments,
		Deletion:   deletion,
		Facade:     services.NewPlanningFacade(journeys, steps, releases, stories, links, deletion),
	}
}
