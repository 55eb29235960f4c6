package model

// Known setting keys read by the services. Absent keys fall back to
// hardcoded defaults in SettingsService, so the table never needs seeding
// before the app can run.
const (
	SettingMaxDepartments   = "maxDepartments"
	SettingAdminPassword    = "adminPassword"
	SettingResultsPublished = "resultsPublished"
	SettingPublishedAt      = "publishedAt"
	SettingAppealWindowOpen = "appealWindowOpen"
	SettingSelectionYear    = "selectionYear"
)

// Setting is one row of the flat key/value configuration store.
type Setting struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Key   string `gorm:"type:varchar(100);not null;uniqueIndex" json:"key"`
	Value string `gorm:"type:text;not null" json:"value"`
}

// TableName sets the table name.
func (Setting) TableName() string { return "settings" }
