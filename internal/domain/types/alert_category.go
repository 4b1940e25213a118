package types

import "fmt"

type AlertCategory string

const (
	AlertTrip         AlertCategory = "trip"
	AlertAnnouncement AlertCategory = "announcement"
	AlertSuccess      AlertCategory = "success"
	AlertPromo        AlertCategory = "promo"
)

func (c AlertCategory) Valid() bool {
	switch c {
	case AlertTrip, AlertAnnouncement, AlertSuccess, AlertPromo:
		return true
	default:
		return false
	}
}

func ParseAlertCategory(s string) (AlertCategory, error) {
	c := AlertCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown alert category %q", s)
	}
	return c, nil
}
