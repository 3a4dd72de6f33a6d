package handlers

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cseduardo/TiendaPromElec/internal/auth"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"cliente@tienda.mx", "cliente@tienda.mx"},
		{"  Cliente@Tienda.MX  ", "cliente@tienda.mx"},
		{"ADMIN@TIENDA.MX", "admin@tienda.mx"},
	}

	for _, tt := range tests {
		if got := normalizeEmail(tt.in); got != tt.want {
			t.Errorf("normalizeEmail(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestEmailTaken(t *testing.T) {
	if emailTaken(0) {
		t.Error("zero matching accounts must not count as taken")
	}
	if !emailTaken(1) {
		t.Error("one matching account must count as taken")
	}
	if !emailTaken(3) {
		t.Error("several matching accounts must count as taken")
	}
}

func TestNewCustomerHashesPasswordAndDefaultsRole(t *testing.T) {
	req := RegisterRequest{
		FullName: "  Ana Torres  ",
		Email:    " Ana@Tienda.MX ",
		Password: "secreto-123",
		Phone:    " 555-0100 ",
		Address:  " Av. Reforma 1 ",
	}
	now := time.Now()

	customer, err := newCustomer(req, now)
	if err != nil {
		t.Fatalf("newCustomer failed: %v", err)
	}

	if customer.PasswordHash == req.Password {
		t.Error("password must not be stored in plaintext")
	}
	if !auth.CheckPassword(req.Password, customer.PasswordHash) {
		t.Error("stored hash must verify against the original password")
	}
	if customer.Role != auth.RoleClient {
		t.Errorf("new accounts must get the client role, got %q", customer.Role)
	}
	if customer.Email != "ana@tienda.mx" {
		t.Errorf("email must be normalized, got %q", customer.Email)
	}
	if customer.FullName != "Ana Torres" {
		t.Errorf("full name must be trimmed, got %q", customer.FullName)
	}
	if !customer.CreatedAt.Equal(now) || !customer.UpdatedAt.Equal(now) {
		t.Error("timestamps must come from the supplied clock")
	}
}

// Two registrations racing past the pre-check leave the loser with a
// duplicate-key error from the unique email index. That loser must be
// reported as a duplicate email, not as a server failure.
func TestIsDuplicateEmail(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
	if !isDuplicateEmail(dup) {
		t.Error("a unique-index violation must be treated as a duplicate email")
	}
	if isDuplicateEmail(errors.New("connection reset")) {
		t.Error("unrelated insert errors must not be treated as duplicates")
	}
	if isDuplicateEmail(nil) {
		t.Error("nil error must not be treated as a duplicate")
	}
}
