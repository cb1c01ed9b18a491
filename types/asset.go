package types

import "time"

// Asset is instrument metadata as stored in the datasource.
type Asset struct {
	Id        int
	Ticker    string
	Name      string
	CreatedAt time.Time
}
