package facade

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Joan938/holbertonschool-hbnb/entity"
	"github.com/Joan938/holbertonschool-hbnb/storage"
)

// CreateUserInput is a registration request.
type CreateUserInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (in CreateUserInput) Fields() entity.Fields {
	return entity.Fields{
		"first_name": in.FirstName,
		"last_name":  in.LastName,
		"email":      in.Email,
		"password":   in.Password,
	}
}

// ChangePasswordInput is a password rotation request.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (in ChangePasswordInput) Fields() entity.Fields {
	return entity.Fields{"current_password": in.CurrentPassword, "new_password": in.NewPassword}
}

// CreateUser registers a regular account. Anyone may call it.
func (s *Service) CreateUser(ctx context.Context, in Payload) (entity.User, error) {
	return s.createUser(ctx, "CreateUser", in, false)
}

// EnsureAdmin creates the administrator account described by in, or returns
// it when it already exists. An existing non-admin account with the same
// email is a conflict.
func (s *Service) EnsureAdmin(ctx context.Context, in CreateUserInput) (entity.User, error) {
	var existing entity.User
	err := s.read(ctx, "EnsureAdmin", func(ctx context.Context, uow storage.UnitOfWork) error {
		found, err := uow.Users().Filter(ctx, "email", in.Email)
		if err != nil {
			return err
		}
		if len(found) > 0 {
			existing = found[0]
		}
		return nil
	})
	if err != nil {
		return entity.User{}, err
	}
	if existing.ID != "" {
		if !existing.IsAdmin {
			return entity.User{}, conflict("email belongs to a non-admin account")
		}
		return existing, nil
	}
	return s.createUser(ctx, "EnsureAdmin", in, true)
}

func (s *Service) createUser(ctx context.Context, op string, in Payload, admin bool) (entity.User, error) {
	var u entity.User
	err := s.mutate(ctx, op, func(ctx context.Context, uow storage.UnitOfWork) error {
		fields := in.Fields()
		email, err := fields.Text("email")
		if err != nil {
			return err
		}
		if err := emailAvailable(ctx, uow.Users(), email, ""); err != nil {
			return err
		}

		draft, err := readUser(fields)
		if err != nil {
			return err
		}
		built, err := entity.NewUser(draft.FirstName, draft.LastName, email, draft.Password, admin, s.creds)
		if err != nil {
			return err
		}
		built.ID, built.CreatedAt = s.stamp()
		built.UpdatedAt = built.CreatedAt

		if err := persisted(uow.Users().Add(ctx, built)); err != nil {
			return err
		}
		u = built
		return nil
	})
	if err != nil {
		return entity.User{}, err
	}
	s.log.WithFields(logrus.Fields{"op": op, "user_id": u.ID, "is_admin": u.IsAdmin}).Info("user created")
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (entity.User, error) {
	var u entity.User
	err := s.read(ctx, "GetUser", func(ctx context.Context, uow storage.UnitOfWork) error {
		var err error
		u, err = uow.Users().Get(ctx, id)
		return lookup(err, "user", id)
	})
	return u, err
}

func (s *Service) GetUserByEmail(ctx context.Context, email string) (entity.User, error) {
	var u entity.User
	err := s.read(ctx, "GetUserByEmail", func(ctx context.Context, uow storage.UnitOfWork) error {
		found, err := uow.Users().Filter(ctx, "email", email)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return notFound("user with email", email)
		}
		u = found[0]
		return nil
	})
	return u, err
}

func (s *Service) ListUsers(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	err := s.read(ctx, "ListUsers", func(ctx context.Context, uow storage.UnitOfWork) error {
		var err error
		users, err = uow.Users().All(ctx)
		return err
	})
	return users, err
}

// UpdateUser changes profile fields. Callers may update themselves; admins
// may update anyone. Passwords go through ChangePassword.
func (s *Service) UpdateUser(ctx context.Context, caller Identity, id string, fields entity.Fields) (entity.User, error) {
	var u entity.User
	err := s.mutate(ctx, "UpdateUser", func(ctx context.Context, uow storage.UnitOfWork) error {
		if err := requireCaller(caller); err != nil {
			return err
		}

		current, err := uow.Users().Get(ctx, id)
		if err != nil {
			return lookup(err, "user", id)
		}

		if caller.UserID != current.ID && !caller.IsAdmin {
			return forbidden("cannot modify another user")
		}

		if fields.Has("password") {
			return entity.NewValidationError("password", "use the password change operation")
		}
		if err := rejectFields(fields, "id", "is_admin"); err != nil {
			return err
		}
		if err := current.Apply(fields); err != nil {
			return err
		}

		if fields.Has("email") {
			if err := emailAvailable(ctx, uow.Users(), current.Email, current.ID); err != nil {
				return err
			}
		}

		current.UpdatedAt = s.now().UTC()
		if err := persisted(uow.Users().Update(ctx, current)); err != nil {
			return err
		}
		u = current
		return nil
	})
	return u, err
}

// ChangePassword rotates the caller's own password after verifying the
// current one.
func (s *Service) ChangePassword(ctx context.Context, caller Identity, id string, in Payload) error {
	return s.mutate(ctx, "ChangePassword", func(ctx context.Context, uow storage.UnitOfWork) error {
		if err := requireCaller(caller); err != nil {
			return err
		}

		u, err := uow.Users().Get(ctx, id)
		if err != nil {
			return lookup(err, "user", id)
		}

		if caller.UserID != u.ID {
			return forbidden("cannot change another user's password")
		}
		fields := in.Fields()
		current, err := fields.Text("current_password")
		if err != nil {
			return err
		}
		next, err := fields.Text("new_password")
		if err != nil {
			return err
		}
		ok, err := s.creds.Verify(current, u.PasswordHash)
		if err != nil {
			return fmt.Errorf("facade: verify password: %w", err)
		}
		if !ok {
			return ErrInvalidCredentials
		}

		if err := u.SetPassword(next, s.creds); err != nil {
			return err
		}
		u.UpdatedAt = s.now().UTC()
		return persisted(uow.Users().Update(ctx, u))
	})
}

// Authenticate returns the user owning email when password matches.
// An unknown email and a wrong password are indistinguishable.
func (s *Service) Authenticate(ctx context.Context, email, password string) (entity.User, error) {
	var u entity.User
	err := s.read(ctx, "Authenticate", func(ctx context.Context, uow storage.UnitOfWork) error {
		found, err := uow.Users().Filter(ctx, "email", email)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return ErrInvalidCredentials
		}

		ok, err := s.creds.Verify(password, found[0].PasswordHash)
		if err != nil {
			return fmt.Errorf("facade: verify password: %w", err)
		}
		if !ok {
			return ErrInvalidCredentials
		}
		u = found[0]
		return nil
	})
	return u, err
}

func emailAvailable(ctx context.Context, users storage.Collection[entity.User], email, selfID string) error {
	found, err := users.Filter(ctx, "email", email)
	if err != nil {
		return err
	}
	for _, other := range found {
		if other.ID != selfID {
			return conflict("email already registered")
		}
	}
	return nil
}

func readUser(f entity.Fields) (CreateUserInput, error) {
	var (
		in  CreateUserInput
		err error
	)
	if in.FirstName, err = f.Text("first_name"); err != nil {
		return in, err
	}
	if in.LastName, err = f.Text("last_name"); err != nil {
		return in, err
	}
	in.Password, err = f.Text("password")
	return in, err
}
