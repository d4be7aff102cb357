package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/rahulnair-dev/vastra-backend/pkg/config"
	"github.com/rahulnair-dev/vastra-backend/pkg/db"
	"github.com/rahulnair-dev/vastra-backend/pkg/db/models"
	pkgerrors "github.com/rahulnair-dev/vastra-backend/pkg/errors"
	"github.com/rahulnair-dev/vastra-backend/pkg/security"
)

func newTestDB(t *testing.T) *db.Client {
	t.Helper()
	cfg := config.DBConfig{
		Driver: "sqlite",
		DSN:    "file:auth_" + uuid.NewString() + "?mode=memory&cache=shared",
	}
	client, err := db.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("opening sqlite client: %v", err)
	}
	if err := client.DB().AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrating schema: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func newTestRegisterService(t *testing.T, client *db.Client) RegisterService {
	t.Helper()
	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             client,
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("build register service: %v", err)
	}
	return svc
}

func TestRegisterCreatesShopper(t *testing.T) {
	client := newTestDB(t)
	svc := newTestRegisterService(t, client)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Arjun Mehta",
		Email:    "Arjun@Example.com",
		Password: "anarkali-suit-9",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "arjun@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if !user.IsActive {
		t.Fatal("expected new accounts to be active")
	}

	var stored models.User
	if err := client.DB().First(&stored, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("loading stored user: %v", err)
	}
	if stored.PasswordHash == "anarkali-suit-9" {
		t.Fatal("password must not be stored in plaintext")
	}
	ok, err := security.VerifyPassword("anarkali-suit-9", stored.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("stored hash does not verify: ok=%v err=%v", ok, err)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	client := newTestDB(t)
	svc := newTestRegisterService(t, client)

	req := RegisterRequest{
		Name:     "Kavya Nair",
		Email:    "kavya@example.com",
		Password: "lehenga-choli-7",
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	req.Name = "Someone Else"
	req.Email = "KAVYA@example.com"
	_, err := svc.Register(context.Background(), req)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}

	var count int64
	if err := client.DB().Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("counting users: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single user, got %d", count)
	}
}

func TestRegisterValidation(t *testing.T) {
	client := newTestDB(t)
	svc := newTestRegisterService(t, client)

	cases := []struct {
		name string
		req  RegisterRequest
	}{
		{name: "missing email", req: RegisterRequest{Name: "A", Password: "long-enough-pass"}},
		{name: "missing name", req: RegisterRequest{Email: "a@example.com", Password: "long-enough-pass"}},
		{name: "short password", req: RegisterRequest{Name: "A", Email: "a@example.com", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
