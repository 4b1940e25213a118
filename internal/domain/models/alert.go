package models

import "github.com/Temutjin2k/batoda/internal/domain/types"

type Alert struct {
	ID       string              `json:"id"`
	Category types.AlertCategory `json:"category"`
	Title    string              `json:"title"`
	Body     string              `json:"body"`
	Time     string              `json:"time"` // relative timestamp, e.g. "2 mins ago"
	Read     bool                `json:"read"`
}
