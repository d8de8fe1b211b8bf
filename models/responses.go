package models

// DBStatus describes whether the active persistence backend answered a ping.
type DBStatus string

const (
	DBConnected    DBStatus = "connected"
	DBDisconnected DBStatus = "disconnected"
)

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	// OK is true when every dependency required to serve traffic is healthy.
	OK bool `json:"ok"`

	// DB is the state of the persistence backend.
	DB DBStatus `json:"db"`
}
