package services

import (
	"context"
	"testing"

	userdto "github.com/aryb086/eyes-app/dto/user"
	"github.com/aryb086/eyes-app/repositories"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceSuite struct {
	suite.Suite
	repo *repositories.MemoryUserRepository
	svc  *UserService
}

func (s *UserServiceSuite) SetupTest() {
	s.repo = repositories.NewMemoryUserRepository()
	s.svc = NewUserService(s.repo, "test-secret")
}

func (s *UserServiceSuite) register(username, email string) string {
	token, user, err := s.svc.Register(context.Background(), userdto.UserRegisterDTO{
		FullName: "Test User",
		Username: username,
		Email:    email,
		Password: "Test@123",
	})
	s.Require().NoError(err)
	s.Require().NotNil(user)
	return token
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) TestRegister_Success() {
	token, user, err := s.svc.Register(context.Background(), userdto.UserRegisterDTO{
		FullName: "Test User",
		Username: "testuser",
		Email:    "Test@Example.com",
		Password: "Test@123",
	})

	s.NoError(err)
	s.NotEmpty(token)
	s.Equal("test@example.com", user.Email, "email should be stored lower-cased")
	s.False(user.ID.IsZero())
}

func (s *UserServiceSuite) TestRegister_PasswordHashed() {
	s.register("testuser", "test@example.com")

	stored, err := s.repo.GetByUsername(context.Background(), "testuser")
	s.Require().NoError(err)
	s.Require().NotNil(stored)

	s.NotEqual("Test@123", stored.Password)
	s.Greater(len(stored.Password), 30)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("Test@123")))
}

func (s *UserServiceSuite) TestRegister_MissingFields() {
	cases := []struct {
		in      userdto.UserRegisterDTO
		message string
	}{
		{userdto.UserRegisterDTO{Email: "a@b.com", Password: "x", FullName: "A"}, "username is required"},
		{userdto.UserRegisterDTO{Username: "a", Password: "x", FullName: "A"}, "email is required"},
		{userdto.UserRegisterDTO{Username: "a", Email: "a@b.com", FullName: "A"}, "password is required"},
		{userdto.UserRegisterDTO{Username: "a", Email: "a@b.com", Password: "x"}, "fullName is required"},
	}

	for _, tc := range cases {
		_, _, err := s.svc.Register(context.Background(), tc.in)
		s.Require().Error(err)
		s.True(IsValidation(err))
		s.Equal(tc.message, err.Error())
	}
}

func (s *UserServiceSuite) TestRegister_DuplicateEmail() {
	s.register("first", "duplicate@example.com")

	_, _, err := s.svc.Register(context.Background(), userdto.UserRegisterDTO{
		FullName: "Second User",
		Username: "second",
		Email:    "Duplicate@Example.COM",
		Password: "Test@123",
	})

	s.Require().Error(err)
	s.True(IsValidation(err))
	s.Equal("Email already registered", err.Error())

	// the failed registration must not have created a record
	ghost, err := s.repo.GetByUsername(context.Background(), "second")
	s.NoError(err)
	s.Nil(ghost)
}

func (s *UserServiceSuite) TestRegister_DuplicateUsername() {
	s.register("duplicate_user", "first@example.com")

	_, _, err := s.svc.Register(context.Background(), userdto.UserRegisterDTO{
		FullName: "Second User",
		Username: "duplicate_user",
		Email:    "second@example.com",
		Password: "Test@123",
	})

	s.Require().Error(err)
	s.Equal("Username already taken", err.Error())

	ghost, err := s.repo.GetByEmail(context.Background(), "second@example.com")
	s.NoError(err)
	s.Nil(ghost)
}

func (s *UserServiceSuite) TestLogin_Success() {
	s.register("testuser", "test@example.com")

	token, user, err := s.svc.Login(context.Background(), userdto.UserLoginDTO{
		Email:    "Test@Example.com",
		Password: "Test@123",
	})

	s.NoError(err)
	s.NotEmpty(token)
	s.Equal("testuser", user.Username)

	stored, err := s.repo.GetByUsername(context.Background(), "testuser")
	s.Require().NoError(err)
	s.False(stored.LastLogin.IsZero(), "lastLogin should be set on login")
}

func (s *UserServiceSuite) TestLogin_UniformFailure() {
	s.register("testuser", "test@example.com")

	_, _, wrongPassword := s.svc.Login(context.Background(), userdto.UserLoginDTO{
		Email:    "test@example.com",
		Password: "wrong",
	})
	_, _, unknownEmail := s.svc.Login(context.Background(), userdto.UserLoginDTO{
		Email:    "nobody@example.com",
		Password: "Test@123",
	})

	s.Equal(ErrInvalidCredentials, wrongPassword)
	s.Equal(ErrInvalidCredentials, unknownEmail)
	s.Equal(wrongPassword.Error(), unknownEmail.Error(),
		"wrong-email and wrong-password must be indistinguishable")
}

func (s *UserServiceSuite) TestToggleFollow_RoundTrip() {
	ctx := context.Background()
	s.register("alice", "alice@example.com")
	s.register("bob", "bob@example.com")

	alice, _ := s.repo.GetByUsername(ctx, "alice")
	bob, _ := s.repo.GetByUsername(ctx, "bob")

	following, err := s.svc.ToggleFollow(ctx, alice, bob.ID)
	s.NoError(err)
	s.True(following)

	alice, _ = s.repo.GetByUsername(ctx, "alice")
	bob, _ = s.repo.GetByUsername(ctx, "bob")
	s.Equal([]string{bob.ID.Hex()}, hexAll(alice.Following))
	s.Equal([]string{alice.ID.Hex()}, hexAll(bob.Followers))

	following, err = s.svc.ToggleFollow(ctx, alice, bob.ID)
	s.NoError(err)
	s.False(following)

	// both participants back to the pre-follow state
	alice, _ = s.repo.GetByUsername(ctx, "alice")
	bob, _ = s.repo.GetByUsername(ctx, "bob")
	s.Empty(alice.Following)
	s.Empty(bob.Followers)
	s.Empty(alice.Followers)
	s.Empty(bob.Following)
}

func (s *UserServiceSuite) TestToggleFollow_SelfRejected() {
	ctx := context.Background()
	s.register("alice", "alice@example.com")
	alice, _ := s.repo.GetByUsername(ctx, "alice")

	_, err := s.svc.ToggleFollow(ctx, alice, alice.ID)
	s.Require().Error(err)
	s.True(IsValidation(err))
	s.Equal("You cannot follow yourself", err.Error())
}

func (s *UserServiceSuite) TestToggleFollow_TargetMissing() {
	ctx := context.Background()
	s.register("alice", "alice@example.com")
	alice, _ := s.repo.GetByUsername(ctx, "alice")

	ghost, _ := s.repo.GetByUsername(ctx, "nobody")
	s.Nil(ghost)

	_, err := s.svc.ToggleFollow(ctx, alice, newObjectID(s.T()))
	s.Require().Error(err)
	s.True(IsNotFound(err))
}
