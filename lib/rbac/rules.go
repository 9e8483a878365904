package rbac

import (
	"fmt"

	"personnel-admin/models"
)

var (
	EditorRoleSet = []models.UserRole{models.AdminRole, models.HRRole}
	AdminRoleSet  = []models.UserRole{models.AdminRole}
	AllRoles      = []models.UserRole{models.AdminRole, models.HRRole, models.ViewerRole}
)

func (i *impl) initRules() {
	i.historyRbac()
	i.employeeRbac()
	i.catalogRbac()
}

func (i *impl) historyRbac() {
	for _, kind := range models.HistoryKinds {
		base := "/api/v1/" + kind.Spec().Resource
		//VIEW
		i.mustRegister(models.HistoryModule, models.ViewPermission, AllRoles, base+" [get]")
		i.mustRegister(models.HistoryModule, models.ViewPermission, AllRoles, base+"/{id} [get]")
		//EDIT
		i.mustRegister(models.HistoryModule, models.EditPermission, EditorRoleSet, base+" [post]")
		i.mustRegister(models.HistoryModule, models.EditPermission, EditorRoleSet, base+"/{id} [put]")
		i.mustRegister(models.HistoryModule, models.EditPermission, EditorRoleSet, base+"/{id} [delete]")
		//EXPORT
		i.mustRegister(models.HistoryModule, models.ExportPermission, AllRoles, base+"/export [post]")
	}
	i.mustRegister(models.HistoryModule, models.ExportPermission, AllRoles, "/api/v1/history-export/* [get]")
}

func (i *impl) employeeRbac() {
	i.mustRegister(models.EmployeeModule, models.ViewPermission, AllRoles, "/api/v1/employees [get]")
	i.mustRegister(models.EmployeeModule, models.ViewPermission, AllRoles, "/api/v1/employees/{id} [get]")
	i.mustRegister(models.EmployeeModule, models.EditPermission, EditorRoleSet, "/api/v1/employees [post]")
	i.mustRegister(models.EmployeeModule, models.EditPermission, EditorRoleSet, "/api/v1/employees/{id} [put]")
}

func (i *impl) catalogRbac() {
	for _, entity := range []string{"assets", "stations"} {
		i.mustRegister(models.CatalogModule, models.ViewPermission, AllRoles, fmt.Sprintf("/api/v1/%s [get]", entity))
		i.mustRegister(models.CatalogModule, models.ViewPermission, AllRoles, fmt.Sprintf("/api/v1/%s/{id} [get]", entity))
		i.mustRegister(models.CatalogModule, models.ManagePermission, AdminRoleSet, fmt.Sprintf("/api/v1/%s [post]", entity))
	}
}

func (i *impl) mustRegister(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string) {
	if err := i.RegisterRule(module, permission, roles, swaggerPattern, nil); err != nil {
		panic(err.Error())
	}
}
