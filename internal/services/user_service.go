package services

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"hotel/internal/domain"
	"hotel/internal/domain/models"
	"hotel/internal/repositories"
	"hotel/internal/utils"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserService handles accounts: signup, signin, profile and deactivation.
type UserService struct {
	UserRepo  repositories.UserRepository
	JWTSecret string
	JWTTTL    time.Duration
	RequestID string

	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time
}

func (s UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Signup input. Role is never taken from the client; new accounts are customers.
type Signup struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Birthdate string `json:"birthdate"`
	Country   string `json:"country"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is what signin/signup hand back to the transport layer.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Signup registers a customer account and signs them in.
func (s UserService) Signup(ctx context.Context, in Signup) (AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if strings.TrimSpace(in.Name) == "" {
		return AuthResult{}, domain.ValidationError{Field: "name", Msg: "is required"}
	}
	if !emailRe.MatchString(in.Email) {
		return AuthResult{}, domain.ValidationError{Field: "email", Msg: "is not a valid address"}
	}
	if len(in.Password) < 8 {
		return AuthResult{}, domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, domain.InternalError{Msg: "could not hash password", Err: err}
	}

	user := models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: string(hash),
		Birthdate:    strings.TrimSpace(in.Birthdate),
		Country:      strings.TrimSpace(in.Country),
		Role:         domain.RoleCustomer,
	}
	if err := s.UserRepo.Insert(ctx, &user); err != nil {
		if isDuplicateKeyErr(err) {
			return AuthResult{}, domain.ConflictError{Resource: "user", Msg: "email already registered"}
		}
		return AuthResult{}, err
	}

	utils.LogEvent(s.RequestID, "users", "signup", "user_id="+strconv.FormatInt(user.ID, 10))
	return s.issue(user)
}

// Signin verifies credentials and issues a token. Deactivated accounts cannot
// sign in; the error is the same as for a bad password on purpose.
func (s UserService) Signin(ctx context.Context, in Credentials) (AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return AuthResult{}, domain.ForbiddenError{Msg: "invalid email or password"}
		}
		return AuthResult{}, err
	}
	if user.IsDeactivated {
		return AuthResult{}, domain.ForbiddenError{Msg: "invalid email or password"}
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return AuthResult{}, domain.ForbiddenError{Msg: "invalid email or password"}
	}

	utils.LogEvent(s.RequestID, "users", "signin", "user_id="+strconv.FormatInt(user.ID, 10))
	return s.issue(user)
}

func (s UserService) issue(user models.User) (AuthResult, error) {
	now := s.now()
	ttl := s.JWTTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.JWTSecret))
	if err != nil {
		return AuthResult{}, domain.InternalError{Msg: "could not sign token", Err: err}
	}
	return AuthResult{Token: token, User: user}, nil
}

// GetProfile loads the caller's own account.
func (s UserService) GetProfile(ctx context.Context, userID int64) (models.User, error) {
	return s.UserRepo.GetByID(ctx, userID)
}

// ProfileUpdate carries the user-editable fields; nil means keep.
type ProfileUpdate struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Birthdate *string `json:"birthdate"`
	Country   *string `json:"country"`
}

// UpdateProfile applies the patch to the caller's account.
func (s UserService) UpdateProfile(ctx context.Context, userID int64, patch ProfileUpdate) (models.User, error) {
	user, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return models.User{}, domain.ValidationError{Field: "name", Msg: "is required"}
		}
		user.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		if !emailRe.MatchString(email) {
			return models.User{}, domain.ValidationError{Field: "email", Msg: "is not a valid address"}
		}
		user.Email = email
	}
	if patch.Birthdate != nil {
		user.Birthdate = strings.TrimSpace(*patch.Birthdate)
	}
	if patch.Country != nil {
		user.Country = strings.TrimSpace(*patch.Country)
	}
	if err := s.UserRepo.UpdateProfile(ctx, user); err != nil {
		if isDuplicateKeyErr(err) {
			return models.User{}, domain.ConflictError{Resource: "user", Msg: "email already registered"}
		}
		return models.User{}, err
	}
	return user, nil
}

// Deactivate soft-deletes the account. Bookings keep their guest reference so
// history and exports stay intact.
func (s UserService) Deactivate(ctx context.Context, userID int64) error {
	if err := s.UserRepo.Deactivate(ctx, userID); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "users", "deactivate", "user_id="+strconv.FormatInt(userID, 10))
	return nil
}

// List returns all accounts; admin only at the transport layer.
func (s UserService) List(ctx context.Context) ([]models.User, error) {
	return s.UserRepo.List(ctx)
}

func isDuplicateKeyErr(err error) bool {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return false
	}
	return myErr.Number == 1062
}
