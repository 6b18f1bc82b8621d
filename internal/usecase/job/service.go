package job

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	domainjob "hiring-board/internal/domain/job"
	"hiring-board/internal/pkg/validate"
	"hiring-board/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100

	// A create/update that loses a slug race to a concurrent writer regenerates
	// its slug at most this many times.
	maxSlugAttempts = 5
	// A transition that loses a status race is re-evaluated against the fresh
	// status at most this many times.
	maxTransitionAttempts = 3

	publicCachePattern = "jobs:public:*"
	publicListKey      = "jobs:public:list"
	publicSlugPrefix   = "jobs:public:slug:"
)

type PublicCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type ChangeNotifier interface {
	NotifyJobChanged(j domainjob.Job, action string)
}

type CreateInput struct {
	Title          string    `json:"title" validate:"required,min=3"`
	Description    string    `json:"description" validate:"required,min=20"`
	Location       string    `json:"location" validate:"required,min=2"`
	EmploymentType string    `json:"employmentType" validate:"required,min=2"`
	DepartmentID   uuid.UUID `json:"departmentId" validate:"required"`
}

type UpdateInput struct {
	Title          *string    `json:"title" validate:"omitempty,min=3"`
	Description    *string    `json:"description" validate:"omitempty,min=20"`
	Location       *string    `json:"location" validate:"omitempty,min=2"`
	EmploymentType *string    `json:"employmentType" validate:"omitempty,min=2"`
	DepartmentID   *uuid.UUID `json:"departmentId"`
}

func (in UpdateInput) empty() bool {
	return in.Title == nil && in.Description == nil && in.Location == nil &&
		in.EmploymentType == nil && in.DepartmentID == nil
}

// ListParams holds raw listing input; Status and DepartmentID are parsed by
// the service so malformed values become validation errors.
type ListParams struct {
	Query        string
	Status       string
	DepartmentID string
	Page         int
	Limit        int
}

type ListResult struct {
	Items []domainjob.Job
	Total int
	Page  int
	Limit int
}

type Service struct {
	jobs     repository.JobRepository
	query    repository.JobQueryRepository
	cache    PublicCache
	notifier ChangeNotifier
	cacheTTL time.Duration
	logger   *log.Logger
	now      func() time.Time

	// publicGen increments on every mutation. Public reads only cache what
	// they loaded if no mutation happened in between.
	publicGen atomic.Uint64
}

func NewService(jobs repository.JobRepository, query repository.JobQueryRepository, cache PublicCache, notifier ChangeNotifier, cacheTTL time.Duration, logger *log.Logger) *Service {
	return &Service{
		jobs:     jobs,
		query:    query,
		cache:    cache,
		notifier: notifier,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domainjob.Job, error) {
	j, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return domainjob.Job{}, mapRepoError(err)
	}
	return j, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput, createdBy uuid.UUID) (domainjob.Job, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.EmploymentType = strings.TrimSpace(in.EmploymentType)
	if fields := validate.Struct(in); fields != nil {
		return domainjob.Job{}, invalid("", fields)
	}
	if createdBy == uuid.Nil {
		return domainjob.Job{}, invalid("Missing creator", nil)
	}

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		slug, err := generateSlug(ctx, s.jobs, in.Title, nil)
		if err != nil {
			return domainjob.Job{}, fmt.Errorf("%w: generate slug: %v", ErrInternal, err)
		}

		j := domainjob.New(in.Title, in.Description, in.Location, in.EmploymentType, in.DepartmentID, createdBy)
		j.Slug = slug

		created, err := s.jobs.Create(ctx, j)
		if errors.Is(err, repository.ErrSlugTaken) {
			s.logf("[Jobs] slug race on create slug=%s attempt=%d", slug, attempt)
			continue
		}
		if err != nil {
			return domainjob.Job{}, mapRepoError(err)
		}

		s.logf("[Jobs] created id=%s slug=%s", created.ID, created.Slug)
		s.afterChange(ctx, created, "create")
		return created, nil
	}
	return domainjob.Job{}, ErrConflict
}

// Update changes editable fields. The slug is regenerated only when a new,
// different title is supplied; other edits never probe slug uniqueness.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (domainjob.Job, error) {
	if in.empty() {
		return domainjob.Job{}, invalid("At least one field must be provided to update", nil)
	}
	trimPtr(in.Title)
	trimPtr(in.Description)
	trimPtr(in.Location)
	trimPtr(in.EmploymentType)
	if fields := validate.Struct(in); fields != nil {
		return domainjob.Job{}, invalid("", fields)
	}
	if in.DepartmentID != nil && *in.DepartmentID == uuid.Nil {
		return domainjob.Job{}, invalid("", map[string]string{"departmentId": "is required"})
	}

	current, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return domainjob.Job{}, mapRepoError(err)
	}

	upd := repository.JobUpdate{
		Title:          in.Title,
		Description:    in.Description,
		Location:       in.Location,
		EmploymentType: in.EmploymentType,
		DepartmentID:   in.DepartmentID,
	}
	titleChanged := in.Title != nil && *in.Title != current.Title

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		if titleChanged {
			slug, err := generateSlug(ctx, s.jobs, *in.Title, &id)
			if err != nil {
				return domainjob.Job{}, fmt.Errorf("%w: generate slug: %v", ErrInternal, err)
			}
			upd.Slug = &slug
		}

		updated, err := s.jobs.Update(ctx, id, upd)
		if errors.Is(err, repository.ErrSlugTaken) && titleChanged {
			s.logf("[Jobs] slug race on update id=%s attempt=%d", id, attempt)
			continue
		}
		if err != nil {
			return domainjob.Job{}, mapRepoError(err)
		}

		s.afterChange(ctx, updated, "update")
		return updated, nil
	}
	return domainjob.Job{}, ErrConflict
}

func (s *Service) RequestReview(ctx context.Context, id uuid.UUID) (domainjob.Job, error) {
	return s.transition(ctx, id, domainjob.ActionReview)
}

func (s *Service) Publish(ctx context.Context, id uuid.UUID) (domainjob.Job, error) {
	return s.transition(ctx, id, domainjob.ActionPublish)
}

func (s *Service) Unpublish(ctx context.Context, id uuid.UUID) (domainjob.Job, error) {
	return s.transition(ctx, id, domainjob.ActionUnpublish)
}

func (s *Service) Archive(ctx context.Context, id uuid.UUID) (domainjob.Job, error) {
	return s.transition(ctx, id, domainjob.ActionArchive)
}

func (s *Service) Restore(ctx context.Context, id uuid.UUID) (domainjob.Job, error) {
	return s.transition(ctx, id, domainjob.ActionRestore)
}

// transition loads the job, asks the state machine for the next status and
// writes it with a compare-and-swap on the status it read. Losing the swap
// means someone else moved the job; the decision is made again on the fresh
// row so the caller gets the right rejection instead of a lost update.
func (s *Service) transition(ctx context.Context, id uuid.UUID, action domainjob.Action) (domainjob.Job, error) {
	for attempt := 1; attempt <= maxTransitionAttempts; attempt++ {
		current, err := s.jobs.FindByID(ctx, id)
		if err != nil {
			return domainjob.Job{}, mapRepoError(err)
		}

		next, err := domainjob.Transition(current.Status, action)
		if err != nil {
			return domainjob.Job{}, err
		}

		updated, err := s.jobs.UpdateStatus(ctx, id, current.Status, next, domainjob.PublishedAtFor(next, s.now()))
		if errors.Is(err, repository.ErrStatusConflict) {
			s.logf("[Jobs] status race id=%s action=%s attempt=%d", id, action, attempt)
			continue
		}
		if err != nil {
			return domainjob.Job{}, mapRepoError(err)
		}

		s.logf("[Jobs] %s id=%s %s->%s", action, id, current.Status, updated.Status)
		s.afterChange(ctx, updated, string(action))
		return updated, nil
	}
	return domainjob.Job{}, ErrConflict
}

func (s *Service) List(ctx context.Context, p ListParams) (ListResult, error) {
	page := p.Page
	if page == 0 {
		page = defaultPage
	}
	limit := p.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	fields := map[string]string{}
	if page < 1 {
		fields["page"] = "must be a positive number"
	}
	if limit < 1 || limit > maxLimit {
		fields["limit"] = fmt.Sprintf("must be between 1 and %d", maxLimit)
	}

	f := repository.JobFilter{Query: strings.TrimSpace(p.Query)}
	if raw := strings.TrimSpace(p.Status); raw != "" {
		st, err := domainjob.ParseStatus(raw)
		if err != nil {
			fields["status"] = "must be one of: DRAFT REVIEW PUBLISHED ARCHIVED"
		}
		f.Status = st
	}
	if raw := strings.TrimSpace(p.DepartmentID); raw != "" {
		dept, err := uuid.Parse(raw)
		if err != nil {
			fields["dept"] = "must be a valid id"
		}
		f.DepartmentID = &dept
	}
	if len(fields) > 0 {
		return ListResult{}, invalid("", fields)
	}

	f.Limit = limit
	f.Offset = (page - 1) * limit

	var items []domainjob.Job
	var total int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.query.List(gctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.query.Count(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return ListResult{}, fmt.Errorf("%w: list jobs: %v", ErrInternal, err)
	}

	return ListResult{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// PublicList returns published jobs, newest publication first.
func (s *Service) PublicList(ctx context.Context) ([]domainjob.Job, error) {
	var cached []domainjob.Job
	if s.readCache(ctx, publicListKey, &cached) {
		return cached, nil
	}

	gen := s.publicGen.Load()
	items, err := s.jobs.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list published: %v", ErrInternal, err)
	}
	s.writePublic(ctx, publicListKey, items, gen)
	return items, nil
}

func (s *Service) PublicBySlug(ctx context.Context, slug string) (domainjob.Job, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domainjob.Job{}, ErrNotFound
	}

	key := publicSlugPrefix + slug
	var cached domainjob.Job
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	gen := s.publicGen.Load()
	j, err := s.jobs.FindPublishedBySlug(ctx, slug)
	if err != nil {
		return domainjob.Job{}, mapRepoError(err)
	}
	s.writePublic(ctx, key, j, gen)
	return j, nil
}

func (s *Service) afterChange(ctx context.Context, j domainjob.Job, action string) {
	s.publicGen.Add(1)
	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, publicCachePattern); err != nil {
			s.logf("[Jobs] public cache invalidation failed: %v", err)
		}
	}
	if s.notifier != nil {
		s.notifier.NotifyJobChanged(j, action)
	}
}

func (s *Service) readCache(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.GetJSON(ctx, key, out)
	if err != nil {
		s.logf("[Jobs] Cache read error key=%s err=%v", key, err)
		return false
	}
	return hit
}

func (s *Service) writeCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value, s.cacheTTL); err != nil {
		s.logf("[Jobs] Cache write error key=%s err=%v", key, err)
	}
}

// writePublic caches a public read loaded at generation gen. Within this
// process a concurrent mutation wins; across instances a stale entry lives at
// most cacheTTL.
func (s *Service) writePublic(ctx context.Context, key string, value any, gen uint64) {
	if s.cache == nil || s.publicGen.Load() != gen {
		return
	}
	s.writeCache(ctx, key, value)
	if s.publicGen.Load() != gen {
		if err := s.cache.DeleteByPattern(ctx, key); err != nil {
			s.logf("[Jobs] Cache drop error key=%s err=%v", key, err)
		}
	}
}

func (s *Service) logf(format string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Printf(format, args...)
}

func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrJobNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDepartmentNotFound):
		return ErrDepartmentNotFound
	case errors.Is(err, repository.ErrSlugTaken), errors.Is(err, repository.ErrStatusConflict):
		return ErrConflict
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func trimPtr(s *string) {
	if s == nil {
		return
	}
	*s = strings.TrimSpace(*s)
}
