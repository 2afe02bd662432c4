package dto

import "xrnode/internal/usecase"

type DirectoryEntryResponse struct {
	Profile   ProfileResponse `json:"profile"`
	Match     MatchResponse   `json:"match"`
	Connected bool            `json:"connected"`
}

type DirectoryResponse struct {
	Entries []DirectoryEntryResponse `json:"entries"`
	Summary usecase.DirectorySummary `json:"summary"`
	Filter  string                   `json:"filter"`
	Sort    string                   `json:"sort"`
}

func NewDirectoryResponse(d usecase.Directory) DirectoryResponse {
	entries := make([]DirectoryEntryResponse, 0, len(d.Entries))
	for _, e := range d.Entries {
		entries = append(entries, DirectoryEntryResponse{
			Profile:   NewProfileResponse(e.Profile),
			Match:     NewMatchResponse(e.Match),
			Connected: e.Connected,
		})
	}
	return DirectoryResponse{Entries: entries, Summary: d.Summary, Filter: d.Filter, Sort: d.Sort}
}
