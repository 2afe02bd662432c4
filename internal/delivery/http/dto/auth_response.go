package dto

import "xrnode/internal/usecase"

type CheckinResponse struct {
	Participant  ProfileResponse `json:"participant"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}

type TokensResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func NewTokensResponse(t usecase.Tokens) TokensResponse {
	return TokensResponse{AccessToken: t.AccessToken, RefreshToken: t.RefreshToken}
}
