// Package usecase はdiseaseフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"health_backend/internal/feature/disease/domain/entity"
)

// ErrDiseaseNotFound は対象ユーザーの配下にレコードが存在しない場合に返されます。
var ErrDiseaseNotFound = errors.New("chronic disease not found")

// ErrRecordUnreadable は保存済み暗号文が復号できない場合に返されます。
// 鍵の入れ替えまたはデータ破損を意味し、誤った平文を返すことはありません。
var ErrRecordUnreadable = errors.New("stored disease record is unreadable")

// DiseaseRepository は慢性疾患レコードの永続化層を抽象化します。
type DiseaseRepository interface {
	Create(ctx context.Context, d *entity.ChronicDisease) error
	ListByUser(ctx context.Context, userID string) ([]entity.ChronicDisease, error)
	FindByID(ctx context.Context, userID, diseaseID string) (*entity.ChronicDisease, error)
	Delete(ctx context.Context, userID, diseaseID string) error
}

// NameCipher は疾患名の可逆暗号化を抽象化します。
type NameCipher interface {
	Encrypt(plaintext string) (string, error)
	// Decrypt fails on any tampered or foreign-key token.
	Decrypt(token string) (string, error)
}

// diseaseUsecase は慢性疾患レコードのビジネスロジックを実装します。
// 疾患名は書き込み時に暗号化され、読み出し時に復号されます。
type diseaseUsecase struct {
	diseases DiseaseRepository
	cipher   NameCipher
}

// NewDiseaseUsecase はdiseaseUsecaseの新しいインスタンスを生成します。
func NewDiseaseUsecase(diseases DiseaseRepository, cipher NameCipher) *diseaseUsecase {
	return &diseaseUsecase{diseases: diseases, cipher: cipher}
}

// Create は疾患名を暗号化して保存します。
func (u *diseaseUsecase) Create(ctx context.Context, userID, name string, diagnosisDate *time.Time) (*entity.DiseaseView, error) {
	if name == "" {
		return nil, errors.New("disease name is required")
	}

	token, err := u.cipher.Encrypt(name)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt disease name: %w", err)
	}

	d := &entity.ChronicDisease{
		UserID:        userID,
		NameEncrypted: token,
		DiagnosisDate: diagnosisDate,
	}
	if err := u.diseases.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to create disease: %w", err)
	}
	return u.view(d, name), nil
}

// List は本人の疾患レコード一覧を復号して返します。
func (u *diseaseUsecase) List(ctx context.Context, userID string) ([]entity.DiseaseView, error) {
	records, err := u.diseases.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]entity.DiseaseView, 0, len(records))
	for i := range records {
		name, err := u.cipher.Decrypt(records[i].NameEncrypted)
		if err != nil {
			return nil, fmt.Errorf("%w: disease %s: %v", ErrRecordUnreadable, records[i].DiseaseID, err)
		}
		out = append(out, *u.view(&records[i], name))
	}
	return out, nil
}

// Get は本人の疾患レコードを1件復号して返します。
func (u *diseaseUsecase) Get(ctx context.Context, userID, diseaseID string) (*entity.DiseaseView, error) {
	d, err := u.diseases.FindByID(ctx, userID, diseaseID)
	if err != nil {
		return nil, err
	}

	name, err := u.cipher.Decrypt(d.NameEncrypted)
	if err != nil {
		return nil, fmt.Errorf("%w: disease %s: %v", ErrRecordUnreadable, d.DiseaseID, err)
	}
	return u.view(d, name), nil
}

// Delete は本人の疾患レコードを削除します。
func (u *diseaseUsecase) Delete(ctx context.Context, userID, diseaseID string) error {
	return u.diseases.Delete(ctx, userID, diseaseID)
}

func (u *diseaseUsecase) view(d *entity.ChronicDisease, name string) *entity.DiseaseView {
	return &entity.DiseaseView{
		DiseaseID:     d.DiseaseID,
		UserID:        d.UserID,
		Name:          name,
		DiagnosisDate: d.DiagnosisDate,
		CreatedAt:     d.CreatedAt,
	}
}
