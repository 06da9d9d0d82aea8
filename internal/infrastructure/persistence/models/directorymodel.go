package models

type DepartmentModel struct {
	ID               uint   `gorm:"primaryKey"`
	CompanyID        uint   `gorm:"not null;index"`
	Name             string `gorm:"size:100;not null"`
	Email            string `gorm:"size:255"`
	AutoCloseMinutes int    `gorm:"not null;default:0"`
	AutoCloseReply   string `gorm:"type:text"`
	CreatedAt        int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt        int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (DepartmentModel) TableName() string {
	return "departments"
}

type StaffModel struct {
	ID        uint   `gorm:"primaryKey"`
	CompanyID uint   `gorm:"not null;index"`
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	Email     string `gorm:"size:255;not null"`
	Signature string `gorm:"type:text"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (StaffModel) TableName() string {
	return "staff"
}

type ClientModel struct {
	ID        uint   `gorm:"primaryKey"`
	CompanyID uint   `gorm:"not null;index"`
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	Email     string `gorm:"size:255;not null;index"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (ClientModel) TableName() string {
	return "clients"
}

type ContactModel struct {
	ID        uint   `gorm:"primaryKey"`
	ClientID  uint   `gorm:"not null;index"`
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	Email     string `gorm:"size:255;not null;index"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (ContactModel) TableName() string {
	return "contacts"
}

type ServiceModel struct {
	ID        uint   `gorm:"primaryKey"`
	ClientID  uint   `gorm:"not null;index"`
	Name      string `gorm:"size:255;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (ServiceModel) TableName() string {
	return "services"
}
