package repository

import "gorm.io/gorm"

// NewRepositories builds the repository bundle against a database handle
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Organizations: NewOrganizationRepository(db),
		Departments:   NewDepartmentRepository(db),
		Roles:         NewRoleRepository(db),
		Users:         NewUserRepository(db),
		Grievances:    NewGrievanceRepository(db),
		Attachments:   NewAttachmentRepository(db),
	}
}

// TxManager runs multi-step workflows inside a single database transaction.
// The closure receives repositories bound to the transaction; returning an
// error rolls everything back.
type TxManager struct {
	db *gorm.DB
}

// NewTxManager creates a new transaction manager
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Do executes fn atomically
func (m *TxManager) Do(fn func(tx *Repositories) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
