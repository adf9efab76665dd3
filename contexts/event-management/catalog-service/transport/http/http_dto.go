package httptransport

type ListEventsRequest struct {
	Status   string `json:"status,omitempty"`
	Name     string `json:"name,omitempty"`
	DateFrom string `json:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

type VenueDTO struct {
	VenueID string `json:"venue_id"`
	Name    string `json:"name"`
}

type EventDTO struct {
	EventID   string `json:"event_id"`
	Name      string `json:"name"`
	EventDate string `json:"event_date"`
	Status    string `json:"status"`
	VenueID   string `json:"venue_id,omitempty"`
}

type ListEventsResponse struct {
	Items []EventDTO `json:"items"`
}

type GetEventResponse struct {
	Item EventDTO `json:"item"`
}

type SyncResultDTO struct {
	ID           int64  `json:"id"`
	ExecutedAt   string `json:"executed_at"`
	AddedCount   int    `json:"added_count"`
	UpdatedCount int    `json:"updated_count"`
}

type ListSyncResultsResponse struct {
	Items []SyncResultDTO `json:"items"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
