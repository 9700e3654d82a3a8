package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Catalog loads the bookable catalog of a business. Implementations must
// return errors wrapping ErrNotFound or ErrTransient where they apply.
type Catalog interface {
	ListServices(ctx context.Context, businessID string) ([]Service, error)
	ListStaff(ctx context.Context, businessID string) ([]StaffMember, error)
}

// Reserver performs the reservation call. Errors should wrap ErrValidation,
// ErrNotFound, ErrSlotConflict or ErrTransient.
type Reserver interface {
	Reserve(ctx context.Context, draft Draft) (*Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Session drives one user's wizard. Methods are safe for concurrent use;
// effects run outside the lock and their results are fed back through
// Transition, so a superseded result is dropped by the token check.
type Session struct {
	id       string
	catalog  Catalog
	reserver Reserver
	timeout  time.Duration
	logger   Logger

	mu        sync.Mutex
	state     State
	reserving bool
}

func NewSession(catalog Catalog, reserver Reserver, timeout time.Duration, logger Logger) *Session {
	return &Session{
		id:       uuid.NewString(),
		catalog:  catalog,
		reserver: reserver,
		timeout:  timeout,
		logger:   logger,
		state:    NewState(),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies ev, runs the effects it produces and applies their
// results. It returns the state after the last applied event.
func (s *Session) Dispatch(ctx context.Context, ev Event) (State, error) {
	effects, err := s.apply(ev)
	if err != nil {
		return s.State(), err
	}

	for _, eff := range effects {
		result := s.run(ctx, eff)
		if _, err := s.apply(result); err != nil {
			s.logger.Warn("session %s: apply %T: %v", s.id, result, err)
		}
	}

	state := s.State()
	if len(effects) > 0 && state.LastError != nil {
		return state, state.LastError
	}
	return state, nil
}

func (s *Session) apply(ev Event) ([]Effect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.(type) {
	case Submit:
		// A submission abandoned with Leave may still be on the wire.
		if s.reserving {
			return nil, ErrBusy
		}
	case SubmitSucceeded, SubmitFailed:
		s.reserving = false
	}

	if token, ok := resultToken(ev); ok && token != s.state.Generation {
		s.logger.Info("session %s: dropped stale %T token=%d, current=%d", s.id, ev, token, s.state.Generation)
	}

	next, effects, err := Transition(s.state, ev)
	if err != nil {
		return nil, err
	}
	s.state = next

	for _, eff := range effects {
		if _, ok := eff.(Reserve); ok {
			s.reserving = true
		}
	}
	return effects, nil
}

func (s *Session) run(ctx context.Context, eff Effect) Event {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	switch e := eff.(type) {
	case LoadCatalog:
		s.logger.Info("session %s: loading catalog of business=%s", s.id, e.BusinessID)
		services, staff, err := s.loadCatalog(ctx, e.BusinessID)
		if err != nil {
			return CatalogFailed{Token: e.Token, Err: classify(ctx, err)}
		}
		return CatalogLoaded{Token: e.Token, Services: services, Staff: staff}

	case Reserve:
		s.logger.Info("session %s: reserving business=%s, service=%s, date=%s, time=%s",
			s.id, e.Draft.BusinessID, e.Draft.ServiceID, e.Draft.Date, e.Draft.Time)
		appointment, err := s.reserver.Reserve(ctx, e.Draft)
		if err != nil {
			return SubmitFailed{Token: e.Token, Err: classify(ctx, err)}
		}
		return SubmitSucceeded{Token: e.Token, Appointment: *appointment}

	default:
		return nil
	}
}

func (s *Session) loadCatalog(ctx context.Context, businessID string) ([]Service, []StaffMember, error) {
	var (
		services []Service
		staff    []StaffMember
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		services, err = s.catalog.ListServices(gctx, businessID)
		return err
	})
	g.Go(func() error {
		var err error
		staff, err = s.catalog.ListStaff(gctx, businessID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return services, staff, nil
}

// classify keeps known failures and turns everything else into ErrTransient.
func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound),
		errors.Is(err, ErrSlotConflict), errors.Is(err, ErrTransient):
		return err
	case ctx.Err() != nil:
		return fmt.Errorf("%w: timed out: %v", ErrTransient, err)
	default:
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
}

func resultToken(ev Event) (uint64, bool) {
	switch e := ev.(type) {
	case CatalogLoaded:
		return e.Token, true
	case CatalogFailed:
		return e.Token, true
	case SubmitSucceeded:
		return e.Token, true
	case SubmitFailed:
		return e.Token, true
	}
	return 0, false
}
