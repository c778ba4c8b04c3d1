package models

// RegisterResponse is returned by the backend register endpoint.
type RegisterResponse struct {
	Status string `json:"status"`
	User   User   `json:"user"`
}

// AddLinkResponse is returned after a link was appended to a profile.
type AddLinkResponse struct {
	Status string `json:"status"`
	Links  []Link `json:"links"`
}

// TrackRequest is the body of a click tracking call.
type TrackRequest struct {
	LinkID FlexID `json:"link_id"`
}

// TrackResponse carries the total click count after tracking.
type TrackResponse struct {
	Status string `json:"status"`
	Total  int64  `json:"total"`
}

// NotifyResponse acknowledges a notification.
type NotifyResponse struct {
	Status string `json:"status"`
}

// Profile is the gateway's composite view of a user and their active links.
type Profile struct {
	User  User   `json:"user"`
	Links []Link `json:"links"`
}
