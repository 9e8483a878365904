package authapimodels

import "personnel-admin/models"

// Me текущий пользователь из токена и его права
type Me struct {
	ID          string                                `json:"id"`
	Name        string                                `json:"name"`
	Role        models.UserRole                       `json:"role"`
	RoleName    string                                `json:"roleName"`
	Permissions map[models.Module][]models.Permission `json:"permissions"`
}
