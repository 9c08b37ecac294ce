package user_test

import (
	"context"
	"testing"

	"github.com/tshimanga/elimu/core"
	"github.com/tshimanga/elimu/core/user"
	emailsvc "github.com/tshimanga/elimu/services/email"
	inmemdb "github.com/tshimanga/elimu/storage/database/inmem"
	testutil "github.com/tshimanga/elimu/tests"
)

func setup(t *testing.T) (*user.Service, user.Repository) {
	t.Helper()

	conf := testutil.NewConfig()
	repo := inmemdb.NewUserRepository(inmemdb.NewDB())
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	emailsvc.ClearSentMessages()
	return user.NewService(repo, mailSvc, conf), repo
}

func TestService_Register(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	usr, err := svc.Register(ctx, user.NewUser{
		Email:    "jane@test.cd",
		Password: "s3cret",
		Name:     "Jane",
	})
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if usr.ID == "" {
		t.Error("Register() did not assign an ID")
	}
	if usr.Role != user.RoleStudent {
		t.Errorf("role = %q, want %q", usr.Role, user.RoleStudent)
	}
	if err = usr.CheckPassword("s3cret"); err != nil {
		t.Errorf("CheckPassword() failed: %v", err)
	}
	if err = usr.CheckPassword("wrong"); err == nil {
		t.Error("CheckPassword() accepted a wrong password")
	}

	// welcome email goes out (the mock sends synchronously)
	if len(emailsvc.SentMessages) != 1 {
		t.Fatalf("sent emails = %d, want 1", len(emailsvc.SentMessages))
	}
	if to := emailsvc.SentMessages[0].To[0].Address; to != "jane@test.cd" {
		t.Errorf("welcome email sent to %q", to)
	}
}

func TestService_Register_duplicateEmail(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	testutil.CreateUser(t, repo, "Jane", "jane@test.cd", "s3cret")

	_, err := svc.Register(ctx, user.NewUser{Email: "jane@test.cd", Password: "other", Name: "Impostor"})
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("Register() error = %v, want *core.ValidationError", err)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "email" {
		t.Errorf("Fields = %+v, want single error on \"email\"", vErr.Fields)
	}
}

// raceyRepo stands in for a second register racing past the uniqueness
// pre-check: the check passes but the insert hits the unique index.
type raceyRepo struct {
	user.Repository
}

func (repo raceyRepo) CheckEmailUniqueness(ctx context.Context, email string, excludedUsers ...user.User) error {
	return nil
}

func TestService_Register_concurrentDuplicateEmail(t *testing.T) {
	conf := testutil.NewConfig()
	repo := inmemdb.NewUserRepository(inmemdb.NewDB())
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	emailsvc.ClearSentMessages()
	svc := user.NewService(raceyRepo{Repository: repo}, mailSvc, conf)
	ctx := context.Background()

	testutil.CreateUser(t, repo, "Jane", "jane@test.cd", "s3cret")

	if _, err := repo.CreateUser(ctx, user.User{Email: "jane@test.cd", Name: "Impostor"}); err != user.ErrEmailExists {
		t.Errorf("CreateUser() error = %v, want %v", err, user.ErrEmailExists)
	}

	// the duplicate surfaces as a 400-class validation error, not a 500
	_, err := svc.Register(ctx, user.NewUser{Email: "jane@test.cd", Password: "other", Name: "Impostor"})
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("Register() error = %v, want *core.ValidationError", err)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "email" {
		t.Errorf("Fields = %+v, want single error on \"email\"", vErr.Fields)
	}
	if len(emailsvc.SentMessages) != 0 {
		t.Errorf("sent emails = %d, want 0", len(emailsvc.SentMessages))
	}
}

func TestService_Authenticate(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	testutil.CreateUser(t, repo, "Jane", "jane@test.cd", "s3cret")

	usr, err := svc.Authenticate(ctx, "jane@test.cd", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate() failed: %v", err)
	}
	if !usr.LastLogin.Valid {
		t.Error("Authenticate() did not set LastLogin")
	}

	// input email gets cleaned first
	if _, err = svc.Authenticate(ctx, "  JANE@test.cd ", "s3cret"); err != nil {
		t.Errorf("Authenticate() with uncleaned email failed: %v", err)
	}
}

// Unknown emails and wrong passwords yield the same error value so a
// caller cannot probe which addresses have accounts.
func TestService_Authenticate_failures(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	testutil.CreateUser(t, repo, "Jane", "jane@test.cd", "s3cret")

	_, unknownErr := svc.Authenticate(ctx, "nobody@test.cd", "s3cret")
	if unknownErr != user.ErrAuthenticationFailed {
		t.Errorf("unknown email error = %v, want %v", unknownErr, user.ErrAuthenticationFailed)
	}

	_, wrongPwdErr := svc.Authenticate(ctx, "jane@test.cd", "wrong")
	if wrongPwdErr != user.ErrAuthenticationFailed {
		t.Errorf("wrong password error = %v, want %v", wrongPwdErr, user.ErrAuthenticationFailed)
	}

	if unknownErr != wrongPwdErr {
		t.Error("failure modes are distinguishable")
	}
}
