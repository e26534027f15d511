package services

import (
	"testing"

	"github.com/MohamedBenMassouda/Survey/utils"
)

func TestCreateAdminValidation(t *testing.T) {
	svc := NewAdminService(newStubStore())

	cases := []struct {
		name string
		req  CreateAdminRequest
	}{
		{"bad email", CreateAdminRequest{Email: "not-an-email", Password: "longenough", FullName: "A"}},
		{"short password", CreateAdminRequest{Email: "a@example.com", Password: "short", FullName: "A"}},
		{"empty name", CreateAdminRequest{Email: "a@example.com", Password: "longenough", FullName: "  "}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(tc.req); KindOf(err) != KindValidation {
			t.Errorf("%s: err = %v, want validation", tc.name, err)
		}
	}
}

func TestCreateAdminDuplicateEmail(t *testing.T) {
	store := newStubStore()
	svc := NewAdminService(store)
	store.addAdmin("First", "taken@example.com")

	_, err := svc.Create(CreateAdminRequest{Email: "taken@example.com", Password: "longenough", FullName: "Second"})
	if KindOf(err) != KindValidation {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestCreateAdminHashesPassword(t *testing.T) {
	store := newStubStore()
	svc := NewAdminService(store)

	info, err := svc.Create(CreateAdminRequest{Email: "new@example.com", Password: "hunter2hunter2", FullName: "New Admin"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	admin := store.admins[info.ID]
	if admin.PasswordHash == "hunter2hunter2" {
		t.Fatal("password stored in plaintext")
	}
	if !utils.CheckPassword(admin.PasswordHash, "hunter2hunter2") {
		t.Error("stored hash does not verify against the password")
	}
	if !admin.IsActive {
		t.Error("new admin should be active")
	}
}

func TestAuthenticateBadCredentials(t *testing.T) {
	store := newStubStore()
	svc := NewAdminService(store)

	hash, _ := utils.HashPassword("correct-horse")
	admin := store.addAdmin("A", "a@example.com")
	admin.PasswordHash = hash

	// Unknown email and wrong password share one message.
	if _, err := svc.Authenticate("nobody@example.com", "whatever"); KindOf(err) != KindUnauthorized {
		t.Fatalf("unknown email: err = %v, want unauthorized", err)
	}
	if _, err := svc.Authenticate("a@example.com", "wrong"); KindOf(err) != KindUnauthorized {
		t.Fatalf("wrong password: err = %v, want unauthorized", err)
	}
}

func TestAuthenticateDeactivatedAccount(t *testing.T) {
	store := newStubStore()
	svc := NewAdminService(store)

	hash, _ := utils.HashPassword("correct-horse")
	admin := store.addAdmin("A", "a@example.com")
	admin.PasswordHash = hash
	admin.IsActive = false

	_, err := svc.Authenticate("a@example.com", "correct-horse")
	if KindOf(err) != KindUnauthorized {
		t.Fatalf("err = %v, want unauthorized", err)
	}
}

func TestAuthenticateIssuesToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	store := newStubStore()
	svc := NewAdminService(store)

	hash, _ := utils.HashPassword("correct-horse")
	admin := store.addAdmin("A", "a@example.com")
	admin.PasswordHash = hash

	token, err := svc.Authenticate("a@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	claims, err := utils.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.AdminID != admin.ID.String() {
		t.Errorf("claims admin = %s, want %s", claims.AdminID, admin.ID)
	}
}
