package service

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/mwantia/cookbook/pkg/db/store"
	"github.com/mwantia/cookbook/pkg/errors"
	"github.com/mwantia/cookbook/pkg/query"
)

// UserInput is the body of a user registration.
type UserInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"    validate:"required,email"`
	Country   string `json:"country"  validate:"required,oneof=DE ES FR BE GB"`
	Language  string `json:"language" validate:"omitempty,oneof=de es fr be en"`
}

// UserPatch holds the fields of a partial user update; nil fields are kept.
type UserPatch struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"    validate:"omitempty,email"`
	Country   *string `json:"country,omitempty"  validate:"omitempty,oneof=DE ES FR BE GB"`
	Language  *string `json:"language,omitempty" validate:"omitempty,oneof=de es fr be en"`
}

func (p UserPatch) empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Country == nil && p.Language == nil
}

type CreatedUser struct {
	ID int64 `json:"id"`
	UserInput
}

type UserService struct {
	db    Database
	users lister
}

// NewUserService binds the user operations to db. Options tune the listing
// translator; the placeholder format always follows db.
func NewUserService(db Database, opts ...query.Option) *UserService {
	return &UserService{
		db:    db,
		users: newLister(db, query.Users, "No users found.", opts),
	}
}

func (s *UserService) List(ctx context.Context, req query.Request) (*Page, error) {
	return s.users.list(ctx, req)
}

func (s *UserService) Get(ctx context.Context, id int64) (store.Row, error) {
	rows, err := queryRows(ctx, s.db, builder(s.db).
		Select(
			"tu.id",
			"tu.first_name",
			"tu.last_name",
			"tu.email",
			`tc.name as "country_name"`,
			`tc.iso2 as "country_iso2"`,
			`tc.iso3 as "country_iso3"`,
			"tu.language",
			"tu.first_created",
			"tu.last_adapted",
		).
		From("t_user tu").
		LeftJoin("t_country tc on tu.country_id = tc.id").
		Where(sq.Eq{"tu.id": id}))
	if err != nil {
		return nil, errors.Database("failed to load user", err)
	}
	if len(rows) == 0 {
		return nil, errors.NotFound("User not found.")
	}
	return rows[0], nil
}

// Create registers a user after checking the country exists and the email
// is unused.
func (s *UserService) Create(ctx context.Context, in UserInput) (*CreatedUser, error) {
	var created *CreatedUser

	err := s.db.WithTx(ctx, func(tx store.Executor) error {
		country, err := countryID(ctx, tx, in.Country)
		if err != nil {
			return err
		}
		if err := emailAvailable(ctx, tx, in.Email, 0); err != nil {
			return err
		}

		id, err := returningID(ctx, tx, builder(tx).
			Insert("t_user").
			Columns("first_name", "last_name", "email", "language", "country_id").
			Values(in.FirstName, in.LastName, in.Email, nullable(in.Language), country), "")
		if err != nil {
			return err
		}

		created = &CreatedUser{ID: id, UserInput: in}
		return nil
	})
	if err != nil {
		return nil, passthrough("failed to create user", err)
	}
	return created, nil
}

// Update applies the non-nil fields of patch and returns the stored user.
func (s *UserService) Update(ctx context.Context, id int64, patch UserPatch) (store.Row, error) {
	err := s.db.WithTx(ctx, func(tx store.Executor) error {
		existing, err := lookupID(ctx, tx, builder(tx).Select("id").From("t_user").Where(sq.Eq{"id": id}))
		if err != nil {
			return err
		}
		if existing == 0 {
			return errors.NotFound("User is not available.")
		}
		if patch.empty() {
			return nil
		}

		update := builder(tx).Update("t_user").Where(sq.Eq{"id": id})
		if patch.FirstName != nil {
			update = update.Set("first_name", *patch.FirstName)
		}
		if patch.LastName != nil {
			update = update.Set("last_name", *patch.LastName)
		}
		if patch.Email != nil {
			if err := emailAvailable(ctx, tx, *patch.Email, id); err != nil {
				return err
			}
			update = update.Set("email", *patch.Email)
		}
		if patch.Language != nil {
			update = update.Set("language", *patch.Language)
		}
		if patch.Country != nil {
			country, err := countryID(ctx, tx, *patch.Country)
			if err != nil {
				return err
			}
			update = update.Set("country_id", country)
		}

		_, err = execStmt(ctx, tx, update.Set("last_adapted", sq.Expr("CURRENT_TIMESTAMP")))
		return err
	})
	if err != nil {
		return nil, passthrough("failed to update user", err)
	}
	return s.Get(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	n, err := execStmt(ctx, s.db, builder(s.db).Delete("t_user").Where(sq.Eq{"id": id}))
	if err != nil {
		return errors.Database("failed to delete user", err)
	}
	if n == 0 {
		return errors.NotFound("User is not available.")
	}
	return nil
}

func countryID(ctx context.Context, exec store.Executor, iso2 string) (int64, error) {
	id, err := lookupID(ctx, exec, builder(exec).Select("id").From("t_country").Where(sq.Eq{"iso2": iso2}))
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errors.Validation(`Country "%s" is not available.`, iso2)
	}
	return id, nil
}

// emailAvailable fails when email belongs to a user other than self.
func emailAvailable(ctx context.Context, exec store.Executor, email string, self int64) error {
	where := sq.And{sq.Eq{"email": email}}
	if self != 0 {
		where = append(where, sq.NotEq{"id": self})
	}

	id, err := lookupID(ctx, exec, builder(exec).Select("id").From("t_user").Where(where))
	if err != nil {
		return err
	}
	if id != 0 {
		return errors.Validation(`Email '%s' is already in use.`, email)
	}
	return nil
}
