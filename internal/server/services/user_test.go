package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/authd/internal/common"
	"github.com/dmitrijs2005/authd/internal/server/auth"
	"github.com/dmitrijs2005/authd/internal/server/config"
	"github.com/dmitrijs2005/authd/internal/server/models"
)

// --- helpers ---

func newUserService(t *testing.T, repo *fakeUsersRepo) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    "0123456789abcdef",
		SessionTokenValidityDuration: time.Hour,
	}
	return NewUserService(repo, cfg)
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	getCalls    int
	createCalls int
}

func (f *fakeUsersRepo) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func mustDigest(t *testing.T, password string) string {
	t.Helper()
	digest, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	return digest
}

// --- Register ---

func TestRegister_Success(t *testing.T) {
	repo := &fakeUsersRepo{
		getErr:    common.ErrorNotFound,
		createOut: &models.User{ID: 1, Username: "alice"},
	}
	s := newUserService(t, repo)

	user, err := s.Register(context.Background(), "alice", "s3cret123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if repo.createCalls != 1 {
		t.Fatalf("expected one insert, got %d", repo.createCalls)
	}
}

func TestRegister_EmptyInput(t *testing.T) {
	s := newUserService(t, &fakeUsersRepo{})

	cases := []struct{ username, password string }{
		{"", "pw"},
		{"alice", ""},
		{"   ", "pw"},
	}
	for _, tc := range cases {
		if _, err := s.Register(context.Background(), tc.username, tc.password); !errors.Is(err, common.ErrorValidation) {
			t.Fatalf("Register(%q, %q): want common.ErrorValidation, got %v", tc.username, tc.password, err)
		}
	}
}

func TestRegister_DuplicateOnPrecheck(t *testing.T) {
	repo := &fakeUsersRepo{getOut: &models.User{ID: 1, Username: "alice"}}
	s := newUserService(t, repo)

	_, err := s.Register(context.Background(), "alice", "pw")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("insert must not run when the pre-check hits")
	}
}

func TestRegister_DuplicateOnInsertRace(t *testing.T) {
	// The pre-check misses but the insert hits the uniqueness constraint:
	// the caller still sees the duplicate outcome, not a generic failure.
	repo := &fakeUsersRepo{
		getErr:    common.ErrorNotFound,
		createErr: common.ErrorAlreadyExists,
	}
	s := newUserService(t, repo)

	_, err := s.Register(context.Background(), "alice", "pw")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestRegister_StoreFailure(t *testing.T) {
	repo := &fakeUsersRepo{
		getErr:    common.ErrorNotFound,
		createErr: errors.New("db down"),
	}
	s := newUserService(t, repo)

	_, err := s.Register(context.Background(), "alice", "pw")
	if err == nil || errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

// --- Login ---

func TestLogin_Success(t *testing.T) {
	digest := mustDigest(t, "s3cret123")
	repo := &fakeUsersRepo{getOut: &models.User{ID: 5, Username: "alice", PasswordHash: digest}}
	s := newUserService(t, repo)

	token, user, err := s.Login(context.Background(), "alice", "s3cret123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := auth.ParseToken(token, []byte("0123456789abcdef"))
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != 5 || claims.Username != "alice" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	digest := mustDigest(t, "right")
	repo := &fakeUsersRepo{getOut: &models.User{ID: 5, Username: "alice", PasswordHash: digest}}
	s := newUserService(t, repo)

	_, _, err := s.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, common.ErrorInvalidCredentials) {
		t.Fatalf("want common.ErrorInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownUser_SameError(t *testing.T) {
	repo := &fakeUsersRepo{getErr: common.ErrorNotFound}
	s := newUserService(t, repo)

	_, _, err := s.Login(context.Background(), "ghost", "whatever")
	if !errors.Is(err, common.ErrorInvalidCredentials) {
		t.Fatalf("want common.ErrorInvalidCredentials, got %v", err)
	}
}

func TestLogin_StoreFailure(t *testing.T) {
	repo := &fakeUsersRepo{getErr: errors.New("db down")}
	s := newUserService(t, repo)

	_, _, err := s.Login(context.Background(), "alice", "pw")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}

// --- Reissue ---

func TestReissue_Success(t *testing.T) {
	repo := &fakeUsersRepo{getOut: &models.User{ID: 9, Username: "bob"}}
	s := newUserService(t, repo)

	token, user, err := s.Reissue(context.Background(), "bob")
	if err != nil {
		t.Fatalf("Reissue error: %v", err)
	}
	if user.Username != "bob" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := auth.ParseToken(token, []byte("0123456789abcdef"))
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Username != "bob" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestReissue_UnknownUser(t *testing.T) {
	repo := &fakeUsersRepo{getErr: common.ErrorNotFound}
	s := newUserService(t, repo)

	_, _, err := s.Reissue(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

// --- WhoAmI / lookups ---

func TestWhoAmI_ResolvesUser(t *testing.T) {
	repo := &fakeUsersRepo{getOut: &models.User{ID: 3, Username: "alice"}}
	s := newUserService(t, repo)

	user, err := s.WhoAmI(context.Background(), &auth.Claims{UserID: 3, Username: "alice"})
	if err != nil {
		t.Fatalf("WhoAmI error: %v", err)
	}
	if user.ID != 3 {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestWhoAmI_NilClaims(t *testing.T) {
	s := newUserService(t, &fakeUsersRepo{})

	if _, err := s.WhoAmI(context.Background(), nil); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestWhoAmI_VanishedUser(t *testing.T) {
	repo := &fakeUsersRepo{getErr: common.ErrorNotFound}
	s := newUserService(t, repo)

	_, err := s.WhoAmI(context.Background(), &auth.Claims{UserID: 3, Username: "gone"})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestCheckUsername(t *testing.T) {
	repo := &fakeUsersRepo{getErr: common.ErrorNotFound}
	s := newUserService(t, repo)

	available, err := s.CheckUsername(context.Background(), "fresh")
	if err != nil || !available {
		t.Fatalf("want available=true, got %v, err=%v", available, err)
	}

	repo.getErr = nil
	repo.getOut = &models.User{ID: 1, Username: "taken"}

	available, err = s.CheckUsername(context.Background(), "taken")
	if err != nil || available {
		t.Fatalf("want available=false, got %v, err=%v", available, err)
	}
}
