// Package facade is the only write path into storage. Every operation checks,
// in order, that its targets exist, that the caller may act on them, that
// the supplied fields are valid, and resolves relationships before it
// commits a single unit of work.
package facade

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Joan938/holbertonschool-hbnb/entity"
	"github.com/Joan938/holbertonschool-hbnb/storage"
)

// Identity is the already-authenticated caller. A zero Identity is anonymous.
type Identity struct {
	UserID  string
	IsAdmin bool
}

func (i Identity) Authenticated() bool { return i.UserID != "" }

// Payload is the body of a create request. The typed inputs and a decoded
// entity.Fields both satisfy it. Values are read only after the caller and
// the targets have been checked, so a type mismatch never outranks an
// authorization failure.
type Payload interface {
	Fields() entity.Fields
}

// Credentials hashes and verifies passwords.
type Credentials interface {
	entity.PasswordHasher
	Verify(plaintext, stored string) (bool, error)
}

type Service struct {
	store       storage.Store
	creds       Credentials
	log         logrus.FieldLogger
	tracer      trace.Tracer
	idGenerator func() string
	now         func() time.Time
}

func NewService(store storage.Store, creds Credentials, log logrus.FieldLogger) *Service {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Service{
		store:       store,
		creds:       creds,
		log:         log,
		tracer:      otel.Tracer("github.com/Joan938/holbertonschool-hbnb/facade"),
		idGenerator: func() string { return uuid.NewString() },
		now:         time.Now,
	}
}

func (s *Service) WithIDGenerator(gen func() string) *Service {
	s.idGenerator = gen
	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) stamp() (string, time.Time) {
	return s.idGenerator(), s.now().UTC()
}

type unitFunc func(ctx context.Context, uow storage.UnitOfWork) error

// mutate runs fn in one unit of work and commits only if fn succeeds.
func (s *Service) mutate(ctx context.Context, op string, fn unitFunc) error {
	return s.run(ctx, op, fn, true)
}

// read runs fn in a unit of work that is always rolled back.
func (s *Service) read(ctx context.Context, op string, fn unitFunc) error {
	return s.run(ctx, op, fn, false)
}

func (s *Service) run(ctx context.Context, op string, fn unitFunc, commit bool) (err error) {
	ctx, span := s.tracer.Start(ctx, "facade."+op)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.logFailure(op, err)
		}
		span.End()
	}()

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback(ctx)

	if err := fn(ctx, uow); err != nil {
		return err
	}
	if !commit {
		return nil
	}
	return persisted(uow.Commit(ctx))
}

func (s *Service) logFailure(op string, err error) {
	entry := s.log.WithField("op", op).WithError(err)
	if rejected(err) {
		entry.Info("facade: request rejected")
		return
	}
	entry.Error("facade: operation failed")
}

func rejected(err error) bool {
	if _, ok := entity.AsValidation(err); ok {
		return true
	}
	for _, target := range []error{ErrNotFound, ErrConflict, ErrForbidden, ErrUnauthenticated, ErrInvalidCredentials} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
