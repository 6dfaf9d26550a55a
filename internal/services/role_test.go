package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/yungbote/image-qc-backend/internal/types"
)

type stubReviewerRepo struct {
	roles map[string]string
	err   error
}

func (s *stubReviewerRepo) GetRole(ctx context.Context, email string) (string, bool, error) {
	if s.err != nil {
		return "", false, s.err
	}
	role, ok := s.roles[email]
	return role, ok, nil
}

func TestResolveRole(t *testing.T) {
	repo := &stubReviewerRepo{roles: map[string]string{
		"rev@example.com":   types.RoleReviewer,
		"admin@example.com": types.RoleAdmin,
		"odd@example.com":   "superuser",
	}}
	svc := NewRoleService(repo, testLogger(t))

	cases := []struct {
		name       string
		email      string
		wantRole   string
		wantExists bool
	}{
		{name: "reviewer", email: "rev@example.com", wantRole: types.RoleReviewer, wantExists: true},
		{name: "admin", email: "admin@example.com", wantRole: types.RoleAdmin, wantExists: true},
		{name: "unknown_role_string", email: "odd@example.com", wantRole: types.RoleViewer, wantExists: true},
		{name: "absent", email: "nobody@example.com", wantRole: types.RoleViewer, wantExists: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info := svc.Resolve(context.Background(), tc.email)
			if info.Role != tc.wantRole || info.Exists != tc.wantExists {
				t.Fatalf("resolve(%s): got=(%q,%v) want=(%q,%v)", tc.email, info.Role, info.Exists, tc.wantRole, tc.wantExists)
			}
			if info.Email != tc.email {
				t.Fatalf("email echo: got=%q", info.Email)
			}
		})
	}
}

func TestResolveRoleFailsSafe(t *testing.T) {
	t.Run("no_store", func(t *testing.T) {
		svc := NewRoleService(nil, testLogger(t))
		info := svc.Resolve(context.Background(), "rev@example.com")
		if info.Role != types.RoleViewer || info.Exists {
			t.Fatalf("read-only resolve: got=(%q,%v) want=(viewer,false)", info.Role, info.Exists)
		}
	})
	t.Run("lookup_error", func(t *testing.T) {
		svc := NewRoleService(&stubReviewerRepo{err: fmt.Errorf("unavailable")}, testLogger(t))
		info := svc.Resolve(context.Background(), "rev@example.com")
		if info.Role != types.RoleViewer || info.Exists {
			t.Fatalf("degraded resolve: got=(%q,%v) want=(viewer,false)", info.Role, info.Exists)
		}
	})
}

func TestRequireReviewer(t *testing.T) {
	repo := &stubReviewerRepo{roles: map[string]string{
		"rev@example.com":   types.RoleReviewer,
		"admin@example.com": types.RoleAdmin,
	}}
	svc := NewRoleService(repo, testLogger(t))
	ctx := context.Background()

	if err := svc.RequireReviewer(ctx, "rev@example.com"); err != nil {
		t.Fatalf("reviewer must pass: %v", err)
	}
	// Admins are not reviewers for write gating purposes.
	if err := svc.RequireReviewer(ctx, "admin@example.com"); err != ErrForbidden {
		t.Fatalf("admin: expected ErrForbidden, got %v", err)
	}
	if err := svc.RequireReviewer(ctx, "nobody@example.com"); err != ErrForbidden {
		t.Fatalf("absent: expected ErrForbidden, got %v", err)
	}

	none := NewRoleService(nil, testLogger(t))
	if err := none.RequireReviewer(ctx, "rev@example.com"); err != ErrReadOnly {
		t.Fatalf("read-only: expected ErrReadOnly, got %v", err)
	}
}
