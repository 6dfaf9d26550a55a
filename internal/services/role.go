package services

import (
	"context"

	"github.com/yungbote/image-qc-backend/internal/logger"
	"github.com/yungbote/image-qc-backend/internal/repos"
	"github.com/yungbote/image-qc-backend/internal/types"
)

// RoleService resolves operator roles with a fail-safe default: when the
// store is unavailable or a lookup errors, everyone is a viewer.
type RoleService interface {
	Resolve(ctx context.Context, email string) types.RoleInfo
	RequireReviewer(ctx context.Context, email string) error
}

type roleService struct {
	reviewers repos.ReviewerRepo
	log       *logger.Logger
}

func NewRoleService(reviewers repos.ReviewerRepo, baseLog *logger.Logger) RoleService {
	return &roleService{reviewers: reviewers, log: baseLog.With("service", "RoleService")}
}

func (rs *roleService) Resolve(ctx context.Context, email string) types.RoleInfo {
	info := types.RoleInfo{Email: email, Role: types.RoleViewer}
	if rs.reviewers == nil {
		return info
	}

	role, exists, err := rs.reviewers.GetRole(ctx, email)
	if err != nil {
		rs.log.Error("Error fetching role", "email", email, "error", err)
		return info
	}
	info.Exists = exists
	// Unknown role strings degrade to viewer but still report existence.
	if role == types.RoleReviewer || role == types.RoleAdmin {
		info.Role = role
	}
	return info
}

func (rs *roleService) RequireReviewer(ctx context.Context, email string) error {
	if rs.reviewers == nil {
		return ErrReadOnly
	}
	role, exists, err := rs.reviewers.GetRole(ctx, email)
	if err != nil {
		return err
	}
	if !exists || role != types.RoleReviewer {
		return ErrForbidden
	}
	return nil
}
