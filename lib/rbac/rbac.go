package rbac

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
	"personnel-admin/models"
)

type Provider interface {
	GetRuleFunc(method, path string) (models.RbacFunc, bool)
	RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error
	GetPermissions(role models.UserRole) map[models.Module][]models.Permission
}

var Instance Provider

func NewHandler() {
	i := &impl{
		exact:       map[string]models.RbacFunc{},
		templates:   map[string][]pathTemplate{},
		permissions: map[models.UserRole]map[models.Module][]models.Permission{},
	}
	i.initRules()
	Instance = i
}

type impl struct {
	exact       map[string]models.RbacFunc // "METHOD /path"
	templates   map[string][]pathTemplate  // по методу, в порядке регистрации
	permissions map[models.UserRole]map[models.Module][]models.Permission
}

// pathTemplate путь правила по сегментам: {param} - один любой сегмент,
// * в конце - один или несколько сегментов
type pathTemplate struct {
	segments []string
	handler  models.RbacFunc
}

func (t pathTemplate) match(segments []string) bool {
	for n, segment := range t.segments {
		if segment == "*" {
			return len(segments) > n
		}
		if n >= len(segments) {
			return false
		}
		if !isParam(segment) && segment != segments[n] {
			return false
		}
	}
	return len(segments) == len(t.segments)
}

func isParam(segment string) bool {
	return strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}")
}

func (i *impl) GetRuleFunc(method, path string) (models.RbacFunc, bool) {
	method = strings.ToUpper(method)
	path = normalizePath(path)
	if handler, ok := i.exact[method+" "+path]; ok {
		return handler, true
	}
	segments := splitPath(path)
	for _, template := range i.templates[method] {
		if template.match(segments) {
			return template.handler, true
		}
	}
	return nil, false
}

// RegisterRule правило доступа к методу api. Без handler доступ определяется ролями.
// Роли и разрешения попадают в набор разрешений для фронта.
func (i *impl) RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error {
	path, method, err := parseSwaggerPattern(swaggerPattern)
	if err != nil {
		return err
	}
	if handler == nil {
		handler = AllowByRoleFunc(roles)
	}

	for _, role := range roles {
		if _, ok := i.permissions[role]; !ok {
			i.permissions[role] = map[models.Module][]models.Permission{}
		}
		if !slices.Contains(i.permissions[role][module], permission) {
			i.permissions[role][module] = append(i.permissions[role][module], permission)
		}
	}

	segments := splitPath(path)
	if slices.ContainsFunc(segments, func(s string) bool { return s == "*" || isParam(s) }) {
		i.templates[method] = append(i.templates[method], pathTemplate{segments: segments, handler: handler})
	} else {
		i.exact[method+" "+path] = handler
	}
	return nil
}

func (i *impl) GetPermissions(role models.UserRole) map[models.Module][]models.Permission {
	return i.permissions[role]
}

func AllowByRoleFunc(accessRoles []models.UserRole) models.RbacFunc {
	return func(userID string, role models.UserRole, uri string) bool {
		return slices.Contains(accessRoles, role)
	}
}

// parseSwaggerPattern разбирает строку вида "/api/v1/employees/{id} [get]"
func parseSwaggerPattern(pattern string) (path, method string, err error) {
	pattern = strings.TrimSpace(pattern)
	start := strings.LastIndex(pattern, "[")
	if start == -1 || !strings.HasSuffix(pattern, "]") {
		return "", "", errors.Errorf("не указан метод в правиле (%v)", pattern)
	}
	method = strings.ToUpper(strings.TrimSpace(pattern[start+1 : len(pattern)-1]))
	if method == "" {
		return "", "", errors.Errorf("не указан метод в правиле (%v)", pattern)
	}
	path = normalizePath(strings.TrimSpace(pattern[:start]))
	if star := strings.Index(path, "*"); star != -1 && star != len(path)-1 {
		return "", "", errors.Errorf("* допускается только в конце пути (%v)", pattern)
	}
	return path, method, nil
}

func splitPath(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}

func normalizePath(path string) string {
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	return "/" + strings.Join(segments, "/")
}
