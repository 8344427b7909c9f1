package models

import (
	"errors"
	"regexp"
	"strings"
)

// MaxEvidenceFileSize caps each uploaded evidence file at 10 MB.
const MaxEvidenceFileSize = 10 << 20

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Draft is a report as entered by the submitter, before ticket generation
// and AI analysis.
type Draft struct {
	Title         string `json:"title"`
	Category      string `json:"category"`
	Location      string `json:"location"`
	SubLocation   string `json:"subLocation"`
	Ward          string `json:"ward"`
	Description   string `json:"description"`
	Date          string `json:"date"`
	IsAnonymous   bool   `json:"isAnonymous"`
	ReporterName  string `json:"reporterName"`
	ReporterEmail string `json:"reporterEmail"`
	ReporterPhone string `json:"reporterPhone"`
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

// Validate checks required fields and the conditional location drill-down.
// Validation failures never reach the store.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(d.Description) == "" {
		return errors.New("description is required")
	}
	if strings.TrimSpace(d.ReporterName) == "" {
		return errors.New("reporter name is required")
	}
	if !emailRegex.MatchString(strings.TrimSpace(d.ReporterEmail)) {
		return errors.New("a valid reporter email is required")
	}
	if strings.TrimSpace(d.ReporterPhone) == "" {
		return errors.New("reporter phone is required")
	}
	if !contains(Categories, d.Category) {
		return errors.New("unknown category")
	}
	if !contains(Districts, d.Location) {
		return errors.New("unknown district")
	}

	if d.Location == DistrictDhaka {
		if d.SubLocation == "" {
			return errors.New("sub-location is required for Dhaka district")
		}
		if !contains(DhakaSubLocations, d.SubLocation) {
			return errors.New("unknown sub-location")
		}
	} else {
		// Drill-down fields only make sense under the distinguished
		// district; clear any stale selection.
		d.SubLocation = ""
		d.Ward = ""
	}

	if d.SubLocation == SubLocationSavar {
		if d.Ward == "" {
			return errors.New("ward is required for Savar municipality")
		}
		if !contains(SavarWards, d.Ward) {
			return errors.New("unknown ward")
		}
	} else {
		d.Ward = ""
	}

	return nil
}
