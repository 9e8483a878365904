package dictapimodels

// ReferenceOption элемент выпадающего списка сотрудников/активов/мест службы
type ReferenceOption struct {
	ID       string `json:"_id"`
	Label    string `json:"label"`
	Subtitle string `json:"subtitle,omitempty"`
}

// ReferenceMap идентификатор -> подпись
func ReferenceMap(options []ReferenceOption) map[string]string {
	result := make(map[string]string, len(options))
	for _, option := range options {
		result[option.ID] = option.Label
	}
	return result
}

// CatalogFind поиск по справочнику активов/мест службы
type CatalogFind struct {
	Search string `query:"search"`
}
