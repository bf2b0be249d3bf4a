package services

import (
	"context"
	"strings"
	"time"

	userdto "github.com/aryb086/eyes-app/dto/user"
	"github.com/aryb086/eyes-app/models"
	"github.com/aryb086/eyes-app/repositories"
	"github.com/aryb086/eyes-app/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is how long issued tokens stay valid.
const TokenTTL = 30 * 24 * time.Hour

type UserService struct {
	users     repositories.UserRepository
	jwtSecret string
}

func NewUserService(users repositories.UserRepository, jwtSecret string) *UserService {
	return &UserService{users: users, jwtSecret: jwtSecret}
}

// Register creates an account and returns a signed token plus the stored
// user. Emails are folded to lower case so uniqueness is case-insensitive.
func (s *UserService) Register(ctx context.Context, in userdto.UserRegisterDTO) (string, *models.User, error) {
	required := []struct{ name, value string }{
		{"username", in.Username},
		{"email", in.Email},
		{"password", in.Password},
		{"fullName", in.FullName},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return "", nil, validation(field.name + " is required")
		}
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, validation("Email already registered")
	}

	existing, err = s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, validation("Username already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		FullName:  in.FullName,
		Username:  in.Username,
		Email:     email,
		Password:  string(hashedPassword),
		Followers: []primitive.ObjectID{},
		Following: []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}
	user.ID = id

	token, err := utils.GenerateJWT(id.Hex(), s.jwtSecret, TokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login verifies credentials and returns a signed token plus the user.
// Unknown email and wrong password produce the same error.
func (s *UserService) Login(ctx context.Context, in userdto.UserLoginDTO) (string, *models.User, error) {
	if in.Email == "" || in.Password == "" {
		return "", nil, validation("Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(in.Email))
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := s.users.SetLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		return "", nil, err
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), s.jwtSecret, TokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetUser fetches a user by id.
func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("User not found")
	}
	return user, nil
}

// ToggleFollow flips the follow relationship between actor and target and
// reports whether actor now follows target. Membership is checked against
// the actor's following set, so double application is safe; the two-document
// update is not atomic.
func (s *UserService) ToggleFollow(ctx context.Context, actor *models.User, targetID primitive.ObjectID) (bool, error) {
	if actor.ID == targetID {
		return false, validation("You cannot follow yourself")
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return false, err
	}
	if target == nil {
		return false, notFound("User not found")
	}

	for _, id := range actor.Following {
		if id == targetID {
			if err := s.users.RemoveFollow(ctx, actor.ID, targetID); err != nil {
				return false, err
			}
			return false, nil
		}
	}

	if err := s.users.AddFollow(ctx, actor.ID, targetID); err != nil {
		return false, err
	}
	return true, nil
}
