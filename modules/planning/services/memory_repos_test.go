package services

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/mapwise/storymap/modules/planning/domain/entities/comment"
	"github.com/mapwise/storymap/modules/planning/domain/entities/journey"
	"github.com/mapwise/storymap/modules/planning/domain/entities/persona"
	"github.com/mapwise/storymap/modules/planning/domain/entities/release"
	"github.com/mapwise/storymap/modules/planning/domain/entities/step"
	"github.com/mapwise/storymap/modules/planning/domain/entities/story"
	"github.com/mapwise/storymap/modules/planning/domain/entities/storylink"
	"github.com/mapwise/storymap/modules/planning/domain/entities/tag"
	"github.com/mapwise/storymap/modules/planning/domain/entities/workspace"
	"github.com/mapwise/storymap/pkg/composables"
	"github.com/mapwise/storymap/pkg/serrors"
	"github.com/sirupsen/logrus"
)

// stubTx satisfies pgx.Tx without a database; the in-memory repositories
// never touch it, it only lets the transaction composables run.
type stubTx struct {
	pgx.Tx
}

func testContext() context.Context {
	return composables.WithTx(context.Background(), stubTx{})
}

type stubPublisher struct {
	events []string
}

func (p *stubPublisher) Publish(args ...interface{}) {
	if len(args) > 0 {
		if name, ok := args[0].(string); ok {
			p.events = append(p.events, name)
		}
	}
}
func (p *stubPublisher) Subscribe(handler interface{})   {}
func (p *stubPublisher) Unsubscribe(handler interface{}) {}
func (p *stubPublisher) Clear()                          {}
func (p *stubPublisher) SubscribersCount() int           { return 0 }

type assoc struct {
	storyID uuid.UUID
	otherID uuid.UUID
}

// memStore backs every in-memory repository so cascades observe one state.
type memStore struct {
	workspaces map[uuid.UUID]workspace.Workspace
	journeys   map[uuid.UUID]journey.Journey
	steps      map[uuid.UUID]step.Step
	releases   map[uuid.UUID]release.Release
	stories    map[uuid.UUID]story.Story
	links      map[uuid.UUID]storylink.Link
	linkOrder  []uuid.UUID
	tags       map[uuid.UUID]tag.Tag
	personas   map[uuid.UUID]persona.Persona
	comments   map[uuid.UUID]comment.Comment
	storyTags  []assoc
	storyPers  []assoc
}

func newMemStore() *memStore {
	return &memStore{
		workspaces: map[uuid.UUID]workspace.Workspace{},
		journeys:   map[uuid.UUID]journey.Journey{},
		steps:      map[uuid.UUID]step.Step{},
		releases:   map[uuid.UUID]release.Release{},
		stories:    map[uuid.UUID]story.Story{},
		links:      map[uuid.UUID]storylink.Link{},
		tags:       map[uuid.UUID]tag.Tag{},
		personas:   map[uuid.UUID]persona.Persona{},
		comments:   map[uuid.UUID]comment.Comment{},
	}
}

func notFound(code, entity string) error {
	return serrors.NewNotFound(code, entity+" not found")
}

type memWorkspaceRepo struct{ s *memStore }

func (r *memWorkspaceRepo) Create(ctx context.Context, w workspace.Workspace) (workspace.Workspace, error) {
	r.s.workspaces[w.ID()] = w
	return w, nil
}

func (r *memWorkspaceRepo) GetByID(ctx context.Context, id uuid.UUID) (workspace.Workspace, error) {
	w, ok := r.s.workspaces[id]
	if !ok {
		return workspace.Workspace{}, notFound("WORKSPACE_NOT_FOUND", "workspace")
	}
	return w, nil
}

func (r *memWorkspaceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.s.workspaces[id]; !ok {
		return notFound("WORKSPACE_NOT_FOUND", "workspace")
	}
	delete(r.s.workspaces, id)
	return nil
}

type memJourneyRepo struct{ s *memStore }

func (r *memJourneyRepo) Create(ctx context.Context, j journey.Journey) (journey.Journey, error) {
	r.s.journeys[j.ID()] = j
	return j, nil
}

func (r *memJourneyRepo) GetByID(ctx context.Context, id uuid.UUID) (journey.Journey, error) {
	j, ok := r.s.journeys[id]
	if !ok {
		return journey.Journey{}, notFound("JOURNEY_NOT_FOUND", "journey")
	}
	return j, nil
}

func (r *memJourneyRepo) ListByWorkspace(ctx context.Context, tenantID uuid.UUID) ([]journey.Journey, error) {
	var out []journey.Journey
	for _, j := range r.s.journeys {
		if j.TenantID() == tenantID {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].SortOrder() < out[b].SortOrder() })
	return out, nil
}

func (r *memJourneyRepo) CountByWorkspace(ctx context.Context, tenantID uuid.UUID) (int, error) {
	n := 0
	for _, j := range r.s.journeys {
		if j.TenantID() == tenantID {
			n++
		}
	}
	return n, nil
}

func (r *memJourneyRepo) ShiftRange(ctx context.Context, tenantID uuid.UUID, from, to, delta int) error {
	for id, j := range r.s.journeys {
		if j.TenantID() == tenantID && j.SortOrder() >= from && j.SortOrder() <= to {
			r.s.journeys[id] = journey.Hydrate(j.ID(), j.TenantID(), j.Name(), j.SortOrder()+delta, j.CreatedBy(), j.UpdatedBy(), j.CreatedAt(), j.UpdatedAt())
		}
	}
	return nil
}

func (r *memJourneyRepo) UpdateSortOrder(ctx context.Context, id uuid.UUID, sortOrder int, updatedBy uuid.UUID) error {
	j, ok := r.s.journeys[id]
	if !ok {
		return notFound("JOURNEY_NOT_FOUND", "journey")
	}
	r.s.journeys[id] = journey.Hydrate(j.ID(), j.TenantID(), j.Name(), sortOrder, j.CreatedBy(), updatedBy, j.CreatedAt(), j.UpdatedAt())
	return nil
}

func (r *memJourneyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.s.journeys[id]; !ok {
		return notFound("JOURNEY_NOT_FOUND", "journey")
	}
	delete(r.s.journeys, id)
	return nil
}

func (r *memJourneyRepo) DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error {
	for id, j := range r.s.journeys {
		if j.TenantID() == tenantID {
			delete(r.s.journeys, id)
		}
	}
	return nil
}

type memStepRepo struct{ s *memStore }

func (r *memStepRepo) Create(ctx context.Context, st step.Step) (step.Step, error) {
	r.s.steps[st.ID()] = st
	return st, nil
}

func (r *memStepRepo) GetByID(ctx context.Context, id uuid.UUID) (step.Step, error) {
	st, ok := r.s.steps[id]
	if !ok {
		return step.Step{}, notFound("STEP_NOT_FOUND", "step")
	}
	return st, nil
}

func (r *memStepRepo) ListByJourney(ctx context.Context, journeyID uuid.UUID) ([]step.Step, error) {
	var out []step.Step
	for _, st := range r.s.steps {
		if st.JourneyID() == journeyID {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].SortOrder() < out[b].SortOrder() })
	return out, nil
}

func (r *memStepRepo) CountByJourney(ctx context.Context, journeyID uuid.UUID) (int, error) {
	n := 0
	for _, st := range r.s.steps {
		if st.JourneyID() == journeyID {
			n++
		}
	}
	return n, nil
}

func (r *memStepRepo) ShiftRange(ctx context.Context, journeyID uuid.UUID, from, to, delta int) error {
	for id, st := range r.s.steps {
		if st.JourneyID() == journeyID && st.SortOrder() >= from && st.SortOrder() <= to {
			r.s.steps[id] = step.Hydrate(st.ID(), st.JourneyID(), st.Name(), st.SortOrder()+delta, st.CreatedBy(), st.UpdatedBy(), st.CreatedAt(), st.UpdatedAt())
		}
	}
	return nil
}

func (r *memStepRepo) UpdateSortOrder(ctx context.Context, id uuid.UUID, sortOrder int, updatedBy uuid.UUID) error {
	st, ok := r.s.steps[id]
	if !ok {
		return notFound("STEP_NOT_FOUND", "step")
	}
	r.s.steps[id] = step.Hydrate(st.ID(), st.JourneyID(), st.Name(), sortOrder, st.CreatedBy(), updatedBy, st.CreatedAt(), st.UpdatedAt())
	return nil
}

func (r *memStepRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.s.steps[id]; !ok {
		return notFound("STEP_NOT_FOUND", "step")
	}
	delete(r.s.steps, id)
	return nil
}

func (r *memStepRepo) DeleteByJourney(ctx context.Context, journeyID uuid.UUID) (int, error) {
	n := 0
	for id, st := range r.s.steps {
		if st.JourneyID() == journeyID {
			delete(r.s.steps, id)
			n++
		}
	}
	return n, nil
}

func (r *memStepRepo) DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error {
	for id, st := range r.s.steps {
		if j, ok := r.s.journeys[st.JourneyID()]; ok && j.TenantID() == tenantID {
			delete(r.s.steps, id)
		}
	}
	return nil
}

type memReleaseRepo struct{ s *memStore }

func (r *memReleaseRepo) Create(ctx context.Context, rel release.Release) (release.Release, error) {
	r.s.releases[rel.ID()] = rel
	return rel, nil
}

func (r *memReleaseRepo) GetByID(ctx context.Context, id uuid.UUID) (release.Release, error) {
	rel, ok := r.s.releases[id]
	if !ok {
		return release.Release{}, notFound("RELEASE_NOT_FOUND", "release")
	}
	return rel, nil
}

func (r *memReleaseRepo) GetSentinel(ctx context.Context, tenantID uuid.UUID) (release.Release, error) {
	for _, rel := range r.s.releases {
		if rel.TenantID() == tenantID && rel.IsSentinel() {
			return rel, nil
		}
	}
	return release.Release{}, notFound("RELEASE_NOT_FOUND", "release")
}

func (r *memReleaseRepo) ListByWorkspace(ctx context.Context, tenantID uuid.UUID) ([]release.Release, error) {
	var out []release.Release
	for _, rel := range r.s.releases {
		if rel.TenantID() == tenantID {
			out = append(out, rel)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].SortOrder() < out[b].SortOrder() })
	return out, nil
}

func (r *memReleaseRepo) CountByWorkspace(ctx context.Context, tenantID uuid.UUID) (int, error) {
	n := 0
	for _, rel := range r.s.releases {
		if rel.TenantID() == tenantID {
			n++
		}
	}
	return n, nil
}

func (r *memReleaseRepo) ShiftRange(ctx context.Context, tenantID uuid.UUID, from, to, delta int) error {
	for id, rel := range r.s.releases {
		if rel.TenantID() == tenantID && rel.SortOrder() >= from && rel.SortOrder() <= to {
			r.s.releases[id] = release.Hydrate(rel.ID(), rel.TenantID(), rel.Name(), rel.SortOrder()+delta, rel.IsSentinel(), rel.CreatedBy(), rel.UpdatedBy(), rel.CreatedAt(), rel.UpdatedAt())
		}
	}
	return nil
}

func (r *memReleaseRepo) UpdateSortOrder(ctx context.Context, id uuid.UUID, sortOrder int, updatedBy uuid.UUID) error {
	rel, ok := r.s.releases[id]
	if !ok {
		return notFound("RELEASE_NOT_FOUND", "release")
	}
	r.s.releases[id] = release.Hydrate(rel.ID(), rel.TenantID(), rel.Name(), sortOrder, rel.IsSentinel(), rel.CreatedBy(), updatedBy, rel.CreatedAt(), rel.UpdatedAt())
	return nil
}

func (r *memReleaseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.s.releases[id]; !ok {
		return notFound("RELEASE_NOT_FOUND", "release")
	}
	delete(r.s.releases, id)
	return nil
}

func (r *memReleaseRepo) DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error {
	for id, rel := range r.s.releases {
		if rel.TenantID() == tenantID {
			delete(r.s.releases, id)
		}
	}
	return nil
}

type memStoryRepo struct{ s *memStore }

func (r *memStoryRepo) Create(ctx context.Context, st story.Story) (story.Story, error) {
	r.s.stories[st.ID()] = st
	return st, nil
}

func (r *memStoryRepo) GetByID(ctx context.Context, id uuid.UUID) (story.Story, error) {
	st, ok := r.s.stories[id]
	if !ok {
		return story.Story{}, notFound("STORY_NOT_FOUND", "story")
	}
	return st, nil
}

func (r *memStoryRepo) CountInCell(ctx context.Context, cell story.Cell) (int, error) {
	n := 0
	for _, st := range r.s.stories {
		if st.Cell() == cell {
			n++
		}
	}
	return n, nil
}

func (r *memStoryRepo) MaxSortOrderInCell(ctx context.Context, cell story.Cell) (int, error) {
	max := 0
	for _, st := range r.s.stories {
		if st.Cell() == cell && st.SortOrder() > max {
			max = st.SortOrder()
		}
	}
	return max, nil
}

func (r *memStoryRepo) ListByCell(ctx context.Context, cell story.Cell) ([]story.Story, error) {
	var out []story.Story
	for _, st := range r.s.stories {
		if st.Cell() == cell {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].SortOrder() < out[b].SortOrder() })
	return out, nil
}

func (r *memStoryRepo) ListByStep(ctx context.Context, stepID uuid.UUID) ([]story.Story, error) {
	var out []story.Story
	for _, st := range r.s.stories {
		if st.StepID() == stepID {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].ReleaseID() != out[b].ReleaseID() {
			return out[a].ReleaseID().String() < out[b].ReleaseID().String()
		}
		return out[a].SortOrder() < out[b].SortOrder()
	})
	return out, nil
}

func (r *memStoryRepo) ListByRelease(ctx context.Context, releaseID uuid.UUID) ([]story.Story, error) {
	var out []story.Story
	for _, st := range r.s.stories {
		if st.ReleaseID() == releaseID {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].StepID() != out[b].StepID() {
			return out[a].StepID().String() < out[b].StepID().String()
		}
		return out[a].SortOrder() < out[b].SortOrder()
	})
	return out, nil
}

func (r *memStoryRepo) UpdateCell(ctx context.Context, id uuid.UUID, cell story.Cell, sortOrder int, updatedBy uuid.UUID) error {
	st, ok := r.s.stories[id]
	if !ok {
		return notFound("STORY_NOT_FOUND", "story")
	}
	r.s.stories[id] = story.Hydrate(st.ID(), cell.StepID, cell.ReleaseID, st.Title(), st.Status(), sortOrder, st.CreatedBy(), updatedBy, st.CreatedAt(), st.UpdatedAt())
	return nil
}

func (r *memStoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.s.stories[id]; !ok {
		return notFound("STORY_NOT_FOUND", "story")
	}
	delete(r.s.stories, id)
	return nil
}

func (r *memStoryRepo) DeleteByStep(ctx context.Context, stepID uuid.UUID) (int, error) {
	n := 0
	for id, st := range r.s.stories {
		if st.StepID() == stepID {
			delete(r.s.stories, id)
			n++
		}
	}
	return n, nil
}

func (r *memStoryRepo) DeleteByJourney(ctx context.Context, journeyID uuid.UUID) (int, error) {
	n := 0
	for id, st := range r.s.stories {
		if s, ok := r.s.steps[st.StepID()]; ok && s.JourneyID() == journeyID {
			delete(r.s.stories, id)
			n++
		}
	}
	return n, nil
}

func (r *memStoryRepo) DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error {
	for id, st := range r.s.stories {
		if rel, ok := r.s.releases[st.ReleaseID()]; ok && rel.TenantID() == tenantID {
			delete(r.s.stories, id)
		}
	}
	return nil
}

type memLinkRepo struct{ s *memStore }

func (r *memLinkRepo) Create(ctx context.Context, l storylink.Link) (storylink.Link, error) {
	r.s.links[l.ID()] = l
	r.s.linkOrder = append(r.s.linkOrder, l.ID())
	return l, nil
}

func (r *memLinkRepo) Exists(ctx context.Context, sourceStoryID, targetStoryID uuid.UUID, linkType storylink.Type) (bool, error) {
	for _, l := range r.s.links {
		if l.SourceStoryID() == sourceStoryID && l.TargetStoryID() == targetStoryID && l.LinkType() == linkType {
			return true, nil
		}
	}
	return false, nil
}

func (r *memLinkRepo) ListBySource(ctx context.Context, storyID uuid.UUID) ([]storylink.Link, error) {
	var out []storylink.Link
	for _, id := range r.s.linkOrder {
		if l, ok := r.s.links[id]; ok && l.SourceStoryID() == storyID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memLinkRepo) ListByTarget(ctx context.Context, storyID uuid.UUID) ([]storylink.Link, error) {
	var out []storylink.Link
	for _, id := range r.s.linkOrder {
		if l, ok := r.s.links[id]; ok && l.TargetStoryID() == storyID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memLinkRepo) DeleteByPair(ctx context.Context, sourceStoryID, targetStoryID uuid.UUID) (int, error) {
	n := 0
	for id, l := range r.s.links {
		if l.SourceStoryID() == sourceStoryID && l.TargetStoryID() == targetStoryID {
			delete(r.s.links, id)
			n++
		}
	}
	return n, nil
}

func (r *memLinkRepo) DeleteIncident(ctx context.Context, storyID uuid.UUID) (int, error) {
	n := 0
	for id, l := range r.s.links {
		if l.SourceStoryID() == storyID || l.TargetStoryID() == storyID {
			delete(r.s.links, id)
			n++
		}
	}
	return n, nil
}

func (r *memLinkRepo) DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error {
	for id, l := range r.s.links {
		st, ok := r.s.stories[l.SourceStoryID()]
		if !ok {
			continue
		}
		if rel, ok := r.s.releases[st.ReleaseID()]; ok && rel.TenantID() == tenantID {
			delete(r.s.links, id)
		}
	}
	return nil
}

type memTagRepo struct{ s *memStore }

func (r *memTagRepo) Create(ctx context.Context, t tag.Tag) (tag.Tag, error) {
	for _, existing := range r.s.tags {
		if existing.TenantID() == t.TenantID() && existing.Name() == t.Name() {
			return tag.Tag{}, serrors.NewBusinessRule("DUPLICATE_NAME", "name already taken in this workspace")
		}
	}
	r.s.tags[t.ID()] = t
	return t, nil
}

func (r *memTagRepo) GetByID(ctx context.Context, id uuid.UUID) (tag.Tag, error) {
	t, ok := r.s.tags[id]
	if !ok {
		return tag.Tag{}, notFound("TAG_NOT_FOUND", "tag")
	}
	return t, nil
}

func (r *memTagRepo) ListByStory(ctx context.Context, storyID uuid.UUID) ([]tag.Tag, error) {
	var out []tag.Tag
	for _, a := range r.s.storyTags {
		if a.storyID == storyID {
			out = append(out, r.s.tags[a.otherID])
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name() < out[b].Name() })
	return out, nil
}

func (r *memTagRepo) Attach(ctx context.Context, storyID, tagID uuid.UUID) error {
	for _, a := range r.s.storyTags {
		if a.storyID == storyID && a.otherID == tagID {
			return serrors.NewConflict("DUPLICATE_ASSOCIATION", "association already exists")
		}
	}
	r.s.storyTags = append(r.s.storyTags, assoc{storyID, tagID})
	return nil
}

func (r *memTagRepo) Detach(ctx context.Context, storyID, tagID uuid.UUID) (int, error) {
	return r.detach(func(a assoc) bool { return a.storyID == storyID && a.otherID == tagID })
}

func (r *memTagRepo) DetachAll(ctx context.Context, tagID uuid.UUID) (int, error) {
	return r.detach(func(a assoc) bool { return a.otherID == tagID })
}

func (r *memTagRepo) DetachByStory(ctx context.Context, storyID uuid.UUID) (int, error) {
	return r.detach(func(a assoc) bool { return a.storyID == storyID })
}

func (r *memTagRepo) detach(match func(assoc) bool) (int, error) {
	var kept []assoc
	n := 0
	for _, a := range r.s.storyTags {
		if match(a) {
			n++
		} else {
			kept = append(kept, a)
		}
	}
	r.s.storyTags = kept
	return n, nil
}

func (r *memTagRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.s.tags[id]; !ok {
		return notFound("TAG_NOT_FOUND", "tag")
	}
	delete(r.s.tags, id)
	return nil
}

func (r *memTagRepo) DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error {
	for id, t := range r.s.tags {
		if t.TenantID() == tenantID {
			_, _ = r.DetachAll(ctx, id)
			delete(r.s.tags, id)
		}
	}
	return nil
}

type memPersonaRepo struct{ s *memStore }

func (r *memPersonaRepo) Create(ctx context.Context, p persona.Persona) (persona.Persona, error) {
	for _, existing := range r.s.personas {
		if existing.TenantID() == p.TenantID() && existing.Name() == p.Name() {
			return persona.Persona{}, serrors.NewBusinessRule("DUPLICATE_NAME", "name already taken in this workspace")
		}
	}
	r.s.personas[p.ID()] = p
	return p, nil
}

func (r *memPersonaRepo) GetByID(ctx context.Context, id uuid.UUID) (persona.Persona, error) {
	p, ok := r.s.personas[id]
	if !ok {
		return persona.Persona{}, notFound("PERSONA_NOT_FOUND", "persona")
	}
	return p, nil
}

func (r *memPersonaRepo) ListByStory(ctx context.Context, storyID uuid.UUID) ([]persona.Persona, error) {
	var out []persona.Persona
	for _, a := range r.s.storyPers {
		if a.storyID == storyID {
			out = append(out, r.s.personas[a.otherID])
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name() < out[b].Name() })
	return out, nil
}

func (r *memPersonaRepo) Attach(ctx context.Context, storyID, personaID uuid.UUID) error {
	for _, a := range r.s.storyPers {
		if a.storyID == storyID && a.otherID == personaID {
			return serrors.NewConflict("DUPLICATE_ASSOCIATION", "association already exists")
		}
	}
	r.s.storyPers = append(r.s.storyPers, assoc{storyID, personaID})
	return nil
}

func (r *memPersonaRepo) Detach(ctx context.Context, storyID, personaID uuid.UUID) (int, error) {
	return r.detach(func(a assoc) bool { return a.storyID == storyID && a.otherID == personaID })
}

func (r *memPersonaRepo) DetachAll(ctx context.Context, personaID uuid.UUID) (int, error) {
	return r.detach(func(a assoc) bool { return a.otherID == personaID })
}

func (r *memPersonaRepo) DetachByStory(ctx context.Context, storyID uuid.UUID) (int, error) {
	return r.detach(func(a assoc) bool { return a.storyID == storyID })
}

func (r *memPersonaRepo) detach(match func(assoc) bool) (int, error) {
	var kept []assoc
	n := 0
	for _, a := range r.s.storyPers {
		if match(a) {
			n++
		} else {
			kept = append(kept, a)
		}
	}
	r.s.storyPers = kept
	return n, nil
}

func (r *memPersonaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.s.personas[id]; !ok {
		return notFound("PERSONA_NOT_FOUND", "persona")
	}
	delete(r.s.personas, id)
	return nil
}

func (r *memPersonaRepo) DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error {
	for id, p := range r.s.personas {
		if p.TenantID() == tenantID {
			_, _ = r.DetachAll(ctx, id)
			delete(r.s.personas, id)
		}
	}
	return nil
}

type memCommentRepo struct{ s *memStore }

func (r *memCommentRepo) Create(ctx context.Context, c comment.Comment) (comment.Comment, error) {
	r.s.comments[c.ID()] = c
	return c, nil
}

func (r *memCommentRepo) ListByStory(ctx context.Context, storyID uuid.UUID) ([]comment.Comment, error) {
	var out []comment.Comment
	for _, c := range r.s.comments {
		if c.StoryID() != nil && *c.StoryID() == storyID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt().Before(out[b].CreatedAt()) })
	return out, nil
}

func (r *memCommentRepo) ListByRelease(ctx context.Context, releaseID uuid.UUID) ([]comment.Comment, error) {
	var out []comment.Comment
	for _, c := range r.s.comments {
		if c.ReleaseID() != nil && *c.ReleaseID() == releaseID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt().Before(out[b].CreatedAt()) })
	return out, nil
}

func (r *memCommentRepo) DeleteByStory(ctx context.Context, storyID uuid.UUID) (int, error) {
	n := 0
	for id, c := range r.s.comments {
		if c.StoryID() != nil && *c.StoryID() == storyID {
			delete(r.s.comments, id)
			n++
		}
	}
	return n, nil
}

func (r *memCommentRepo) DeleteByRelease(ctx context.Context, releaseID uuid.UUID) (int, error) {
	n := 0
	for id, c := range r.s.comments {
		if c.ReleaseID() != nil && *c.ReleaseID() == releaseID {
			delete(r.s.comments, id)
			n++
		}
	}
	return n, nil
}

func (r *memCommentRepo) DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error {
	for id, c := range r.s.comments {
		switch {
		case c.ReleaseID() != nil:
			if rel, ok := r.s.releases[*c.ReleaseID()]; ok && rel.TenantID() == tenantID {
				delete(r.s.comments, id)
			}
		case c.StoryID() != nil:
			st, ok := r.s.stories[*c.StoryID()]
			if !ok {
				continue
			}
			if rel, ok := r.s.releases[st.ReleaseID()]; ok && rel.TenantID() == tenantID {
				delete(r.s.comments, id)
			}
		}
	}
	return nil
}

// memResolver resolves ownership the way the SQL resolver does, through the
// release or journey the entity hangs off.
type memResolver struct{ s *memStore }

func (r *memResolver) WorkspaceOfJourney(ctx context.Context, journeyID uuid.UUID) (uuid.UUID, error) {
	j, ok := r.s.journeys[journeyID]
	if !ok {
		return uuid.Nil, notFound("JOURNEY_NOT_FOUND", "journey")
	}
	return j.TenantID(), nil
}

func (r *memResolver) WorkspaceOfStep(ctx context.Context, stepID uuid.UUID) (uuid.UUID, error) {
	st, ok := r.s.steps[stepID]
	if !ok {
		return uuid.Nil, notFound("STEP_NOT_FOUND", "step")
	}
	return r.WorkspaceOfJourney(ctx, st.JourneyID())
}

func (r *memResolver) WorkspaceOfRelease(ctx context.Context, releaseID uuid.UUID) (uuid.UUID, error) {
	rel, ok := r.s.releases[releaseID]
	if !ok {
		return uuid.Nil, notFound("RELEASE_NOT_FOUND", "release")
	}
	return rel.TenantID(), nil
}

func (r *memResolver) WorkspaceOfStory(ctx context.Context, storyID uuid.UUID) (uuid.UUID, error) {
	st, ok := r.s.stories[storyID]
	if !ok {
		return uuid.Nil, notFound("STORY_NOT_FOUND", "story")
	}
	return r.WorkspaceOfRelease(ctx, st.ReleaseID())
}

func (r *memResolver) WorkspaceOfTag(ctx context.Context, tagID uuid.UUID) (uuid.UUID, error) {
	t, ok := r.s.tags[tagID]
	if !ok {
		return uuid.Nil, notFound("TAG_NOT_FOUND", "tag")
	}
	return t.TenantID(), nil
}

func (r *memResolver) WorkspaceOfPersona(ctx context.Context, personaID uuid.UUID) (uuid.UUID, error) {
	p, ok := r.s.personas[personaID]
	if !ok {
		return uuid.Nil, notFound("PERSONA_NOT_FOUND", "persona")
	}
	return p.TenantID(), nil
}

// fixture wires every service over one shared in-memory store.
type fixture struct {
	store     *memStore
	publisher *stubPublisher
	actor     uuid.UUID

	workspaces *WorkspaceService
	journeys   *JourneyService
	steps      *StepService
	releases   *ReleaseService
	stories    *StoryService
	links      *LinkService
	tags       *TagService
	personas   *PersonaService
	comments   *CommentService
	deletion   *DeletionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemStore()
	pub := &stubPublisher{}
	guard := NewTenantGuard(&memResolver{s: store})

	workspaceRepo := &memWorkspaceRepo{s: store}
	journeyRepo := &memJourneyRepo{s: store}
	stepRepo := &memStepRepo{s: store}
	releaseRepo := &memReleaseRepo{s: store}
	storyRepo := &memStoryRepo{s: store}
	linkRepo := &memLinkRepo{s: store}
	tagRepo := &memTagRepo{s: store}
	personaRepo := &memPersonaRepo{s: store}
	commentRepo := &memCommentRepo{s: store}

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return &fixture{
		store:      store,
		publisher:  pub,
		actor:      uuid.New(),
		workspaces: NewWorkspaceService(workspaceRepo, releaseRepo, pub),
		journeys:   NewJourneyService(journeyRepo, guard, pub),
		steps:      NewStepService(stepRepo, guard, pub),
		releases:   NewReleaseService(releaseRepo, guard, pub),
		stories:    NewStoryService(storyRepo, guard, pub),
		links:      NewLinkService(linkRepo, guard, pub),
		tags:       NewTagService(tagRepo, guard, pub),
		personas:   NewPersonaService(personaRepo, guard, pub),
		comments:   NewCommentService(commentRepo, guard, pub),
		deletion: NewDeletionService(DeletionServiceParams{
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
			Publisher:  pub,
			Log:        log,
		}),
	}
}

// newWorkspace creates a workspace and returns its id.
func (f *fixture) newWorkspace(t *testing.T, ctx context.Context, name string) uuid.UUID {
	t.Helper()
	ws, err := f.workspaces.Create(ctx, name, f.actor)
	require.NoError(t, err)
	return ws.ID()
}

func (f *fixture) journeyOrders(tenantID uuid.UUID) map[string]int {
	out := map[string]int{}
	for _, j := range f.store.journeys {
		if j.TenantID() == tenantID {
			out[j.Name()] = j.SortOrder()
		}
	}
	return out
}
