package historyapimodels

// ExportView информация о выгрузке истории, сохраненной в архиве
type ExportView struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Format      string `json:"format"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	RowCount    int    `json:"rowCount"`
	CreatedBy   string `json:"createdBy,omitempty"`
}

type ExportRequest struct {
	HistoryFilter
	Format string `query:"format"` // xlsx или pdf
}
