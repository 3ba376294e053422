package dto

type SignupRequest struct {
	Email       string              `json:"email"`
	Password    string              `json:"password"`
	Name        string              `json:"name"`
	Age         int                 `json:"age"`
	Bio         string              `json:"bio,omitempty"`
	Occupation  string              `json:"occupation,omitempty"`
	Education   string              `json:"education,omitempty"`
	Interests   []string            `json:"interests,omitempty"`
	Location    *LocationPayload    `json:"location,omitempty"`
	Preferences *PreferencesPayload `json:"preferences,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthTokensResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresInSec int64        `json:"expires_in_sec"`
	User         UserResponse `json:"user"`
}

type LogoutResponse struct {
	OK bool `json:"ok"`
}
