package migration

import (
	"opendesk/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.TicketModel{},
		&models.ReplyModel{},
		&models.AttachmentModel{},
		&models.DepartmentModel{},
		&models.StaffModel{},
		&models.ClientModel{},
		&models.ContactModel{},
		&models.ServiceModel{},
	}
}
