// Package usecase はfamilyフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"health_backend/internal/feature/family/domain/entity"
)

// FamilyRepository は家族リンクの永続化層を抽象化します。
type FamilyRepository interface {
	Create(ctx context.Context, f *entity.FamilyMember) error
	ListByUser(ctx context.Context, userID string) ([]entity.FamilyMember, error)
	FindByID(ctx context.Context, userID, familyID string) (*entity.FamilyMember, error)
	Delete(ctx context.Context, userID, familyID string) error
	// LinkExists reports whether the user already links the given account.
	LinkExists(ctx context.Context, userID, linkedUserID string) (bool, error)
}

// LinkedUser は家族リンク解決に必要なユーザー情報の断面です。
type LinkedUser struct {
	UserID     string
	FullName   string
	CodeNumber string
}

// UserDirectory はユーザーアカウントの参照専用ビューを抽象化します。
type UserDirectory interface {
	// FindByCodeNumber resolves a public code number, or ErrCodeNumberNotFound.
	FindByCodeNumber(ctx context.Context, codeNumber string) (*LinkedUser, error)
	// FindByID resolves an internal ID, or ErrCodeNumberNotFound when the
	// account no longer exists.
	FindByID(ctx context.Context, userID string) (*LinkedUser, error)
}

// familyUsecase は家族リンクのビジネスロジックを実装します。
type familyUsecase struct {
	family FamilyRepository
	users  UserDirectory
}

// NewFamilyUsecase はfamilyUsecaseの新しいインスタンスを生成します。
func NewFamilyUsecase(family FamilyRepository, users UserDirectory) *familyUsecase {
	return &familyUsecase{family: family, users: users}
}

// Link は公開コード番号で別アカウントを家族としてリンクします。
// 自分自身のコード番号、既にリンク済みのアカウントは拒否されます。
func (u *familyUsecase) Link(ctx context.Context, userID, codeNumber, relation string) (*entity.FamilyMemberView, error) {
	if relation == "" {
		return nil, errors.New("relation is required")
	}

	target, err := u.users.FindByCodeNumber(ctx, codeNumber)
	if err != nil {
		return nil, err
	}
	if target.UserID == userID {
		return nil, ErrSelfLink
	}

	linked, err := u.family.LinkExists(ctx, userID, target.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing link: %w", err)
	}
	if linked {
		return nil, ErrDuplicateLink
	}

	f := &entity.FamilyMember{
		UserID:       userID,
		Name:         target.FullName,
		Relation:     relation,
		LinkedUserID: target.UserID,
	}
	if err := u.family.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("failed to create family link: %w", err)
	}

	return &entity.FamilyMemberView{
		FamilyID:   f.FamilyID,
		Relation:   f.Relation,
		Name:       target.FullName,
		CodeNumber: target.CodeNumber,
		CreatedAt:  f.CreatedAt,
	}, nil
}

// List は本人の家族リンク一覧を返します。表示名とコード番号はリンク先
// アカウントの現在の値で解決されます。
func (u *familyUsecase) List(ctx context.Context, userID string) ([]entity.FamilyMemberView, error) {
	members, err := u.family.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]entity.FamilyMemberView, 0, len(members))
	for i := range members {
		out = append(out, *u.resolve(ctx, &members[i]))
	}
	return out, nil
}

// Get は家族リンクを1件取得します。
func (u *familyUsecase) Get(ctx context.Context, userID, familyID string) (*entity.FamilyMemberView, error) {
	f, err := u.family.FindByID(ctx, userID, familyID)
	if err != nil {
		return nil, err
	}
	return u.resolve(ctx, f), nil
}

// Unlink は家族リンクを解除します。リンク先のアカウント自体には影響しません。
func (u *familyUsecase) Unlink(ctx context.Context, userID, familyID string) error {
	return u.family.Delete(ctx, userID, familyID)
}

// resolve はリンク先アカウントの現在の名前とコード番号でビューを組み立てます。
// リンク先が削除済みの場合はリンク時スナップショットの名前のみを返します。
func (u *familyUsecase) resolve(ctx context.Context, f *entity.FamilyMember) *entity.FamilyMemberView {
	v := &entity.FamilyMemberView{
		FamilyID:  f.FamilyID,
		Relation:  f.Relation,
		Name:      f.Name,
		CreatedAt: f.CreatedAt,
	}
	if target, err := u.users.FindByID(ctx, f.LinkedUserID); err == nil {
		v.Name = target.FullName
		v.CodeNumber = target.CodeNumber
	}
	return v
}
