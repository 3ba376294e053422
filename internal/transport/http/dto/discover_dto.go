package dto

type DiscoverCandidateResponse struct {
	PublicProfileResponse
	DistanceKM int `json:"distance_km"`
}

type DiscoverResponse struct {
	Users []DiscoverCandidateResponse `json:"users"`
}
