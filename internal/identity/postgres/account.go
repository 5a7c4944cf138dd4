package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/technova/leave-management/internal/identity"
	accountDatamodel "github.com/technova/leave-management/internal/core/datamodel/account"
)

// AccountRepository implements the identity.Repository interface using GORM
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) identity.Repository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(account *accountDatamodel.Account) error {
	return r.db.Create(account).Error
}

func (r *AccountRepository) GetByID(id string) (*accountDatamodel.Account, error) {
	var account accountDatamodel.Account
	err := r.db.Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, identity.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) GetByEmail(email string) (*accountDatamodel.Account, error) {
	var account accountDatamodel.Account
	err := r.db.Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, identity.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&accountDatamodel.Account{}).Error
}
