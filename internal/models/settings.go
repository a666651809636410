package models

// Settings is the flat system configuration stored as key/value rows.
type Settings struct {
	LicenseMonths int      `json:"license_months"`
	StatusOptions []string `json:"status_options"`
}

// DefaultSettings mirrors the seed values written on first start.
func DefaultSettings() *Settings {
	return &Settings{
		LicenseMonths: 12,
		StatusOptions: []string{"Przyjeta", "W trakcie", "Zakonczona"},
	}
}
