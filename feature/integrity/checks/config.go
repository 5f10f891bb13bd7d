package checks

import (
	"strconv"

	"beammp-manager/core/serverconfig"
)

// ConfigReport describes the configuration document of the instance.
type ConfigReport struct {
	Path          string                 `json:"path"`
	Exists        bool                   `json:"exists"`
	Settings      *serverconfig.Settings `json:"settings,omitempty"`
	HasAuthKey    bool                   `json:"has_auth_key"`
	MissingFields []string               `json:"missing_fields"`
	// Drift lists managed fields whose value differs from the configured
	// value. They are rewritten on the next start.
	Drift  []string `json:"drift"`
	Errors []string `json:"errors,omitempty"`
}

// CheckConfig inspects the configuration document at path and compares its
// managed fields with a.
func CheckConfig(path string, a serverconfig.Authoritative) (*ConfigReport, error) {
	report := &ConfigReport{Path: path, MissingFields: []string{}, Drift: []string{}}

	store := serverconfig.NewStore(path)
	if !store.Exists() {
		return report, nil
	}
	report.Exists = true

	doc, err := store.Load()
	if err != nil {
		return nil, err
	}

	missing, err := serverconfig.MissingFields(doc)
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
		return report, nil
	}
	report.MissingFields = append(report.MissingFields, missing...)

	settings, err := serverconfig.Inspect(doc)
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
		return report, nil
	}
	report.Settings = &settings
	report.HasAuthKey = settings.HasAuthKey()

	isMissing := make(map[string]bool, len(missing))
	for _, f := range missing {
		isMissing[f] = true
	}
	actual := map[string]string{
		serverconfig.FieldName:       settings.Name,
		serverconfig.FieldPort:       strconv.Itoa(settings.Port),
		serverconfig.FieldAuthKey:    settings.AuthKey,
		serverconfig.FieldMaxPlayers: strconv.Itoa(settings.MaxPlayers),
		serverconfig.FieldMap:        settings.Map,
	}
	expected := map[string]string{
		serverconfig.FieldName:       a.ServerName,
		serverconfig.FieldPort:       strconv.Itoa(a.Port),
		serverconfig.FieldAuthKey:    a.AuthKey,
		serverconfig.FieldMaxPlayers: strconv.Itoa(a.MaxPlayers),
		serverconfig.FieldMap:        a.StartMap,
	}
	for _, field := range serverconfig.ManagedFields {
		if !isMissing[field] && actual[field] != expected[field] {
			report.Drift = append(report.Drift, field)
		}
	}

	return report, nil
}
