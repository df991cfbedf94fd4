package token

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/openlearn/course-library/internal/entity"
)

func testUser() *entity.User {
	return &entity.User{
		ID:    uuid.New(),
		Email: "prof@example.com",
		Name:  "Prof",
		Role:  entity.RoleProfessor,
	}
}

func TestIssueAndParse(t *testing.T) {
	manager := NewManager("test-secret", 7*24*time.Hour)
	user := testUser()

	signed, expiresAt, err := manager.Issue(user)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if until := time.Until(expiresAt); until < 6*24*time.Hour {
		t.Errorf("expiry too soon: %v", until)
	}

	claim, err := manager.Parse(signed)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claim.ID != user.ID {
		t.Errorf("claim.ID = %v, want %v", claim.ID, user.ID)
	}
	if claim.Email != user.Email || claim.Name != user.Name || claim.Role != user.Role {
		t.Errorf("claim = %+v, want fields of %+v", claim, user)
	}
}

func TestParseExpired(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute)

	signed, _, err := manager.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := manager.Parse(signed); err == nil {
		t.Fatal("Parse() accepted an expired token")
	}
}

func TestParseWrongSecret(t *testing.T) {
	signed, _, err := NewManager("secret-a", time.Hour).Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := NewManager("secret-b", time.Hour).Parse(signed); err == nil {
		t.Fatal("Parse() accepted a token signed with a different secret")
	}
}

func TestParseGarbage(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	for _, tokenString := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := manager.Parse(tokenString); err == nil {
			t.Errorf("Parse(%q) accepted a malformed token", tokenString)
		}
	}
}
