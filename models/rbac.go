package models

type RbacFunc func(userID string, role UserRole, path string) bool

type Module string

const (
	HistoryModule  Module = "HISTORY"
	EmployeeModule Module = "EMPLOYEE"
	CatalogModule  Module = "CATALOG"
)

type Permission string

const (
	ViewPermission   Permission = "VIEW"
	EditPermission   Permission = "EDIT"
	ExportPermission Permission = "EXPORT"
	ManagePermission Permission = "MANAGE"
)
