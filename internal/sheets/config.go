// Package sheets exports report rows to a Google Sheets spreadsheet.
package sheets

import "fmt"

// Config holds configuration for the Google Sheets exporter. Either a
// service-account credentials file or an OAuth2 client with a refresh token
// must be provided.
type Config struct {
	CredentialsFile string
	ClientID        string
	ClientSecret    string
	RefreshToken    string
	SpreadsheetID   string
	SheetName       string
}

// Validate checks that the config carries an auth method and a target.
func (c *Config) Validate() error {
	if c.SpreadsheetID == "" {
		return fmt.Errorf("missing spreadsheet id")
	}
	if c.CredentialsFile == "" && (c.ClientID == "" || c.ClientSecret == "" || c.RefreshToken == "") {
		return fmt.Errorf("missing Google Sheets authentication: provide either a service account credentials file or OAuth2 client credentials")
	}
	return nil
}

// sheetName returns the target sheet, defaulting to the first sheet.
func (c *Config) sheetName() string {
	if c.SheetName == "" {
		return "Sheet1"
	}
	return c.SheetName
}
