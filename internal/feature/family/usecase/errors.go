package usecase

import "errors"

// familyフィーチャーのドメインエラー。ハンドラーがHTTPステータスに対応付けます。
var (
	// ErrCodeNumberNotFound は指定された公開コード番号のアカウントが存在しない場合に返されます。
	ErrCodeNumberNotFound = errors.New("no account with that code number")

	// ErrSelfLink は自分自身のコード番号をリンクしようとした場合に返されます。
	ErrSelfLink = errors.New("cannot link your own account")

	// ErrDuplicateLink は同じアカウントを二重にリンクしようとした場合に返されます。
	ErrDuplicateLink = errors.New("account is already linked")

	// ErrFamilyMemberNotFound は対象ユーザーの配下にリンクが存在しない場合に返されます。
	ErrFamilyMemberNotFound = errors.New("family member not found")
)
