package dto

import (
	"xrnode/internal/domain/handshake"
	"xrnode/internal/usecase"
)

type HandshakePendingResponse struct {
	Profile ProfileResponse `json:"profile"`
	Match   MatchResponse   `json:"match"`
}

type HandshakeStateResponse struct {
	HandsTracked bool                      `json:"hands_tracked"`
	HandsClose   bool                      `json:"hands_close"`
	Distance     float64                   `json:"distance"`
	Progress     float64                   `json:"progress"`
	Complete     bool                      `json:"complete"`
	Pending      *HandshakePendingResponse `json:"pending"`
}

type HandshakeUpdateResponse struct {
	State      HandshakeStateResponse `json:"state"`
	Connection *ConnectionResponse    `json:"connection"`
}

func NewHandshakeStateResponse(st handshake.State) HandshakeStateResponse {
	out := HandshakeStateResponse{
		HandsTracked: st.HandsTracked,
		HandsClose:   st.HandsClose,
		Distance:     st.Distance,
		Progress:     st.Progress,
		Complete:     st.Complete,
	}
	if st.Pending != nil {
		out.Pending = &HandshakePendingResponse{
			Profile: NewProfileResponse(st.Pending.Profile),
			Match:   NewMatchResponse(st.Pending.Result),
		}
	}
	return out
}

func NewHandshakeUpdateResponse(u usecase.HandshakeUpdate) HandshakeUpdateResponse {
	out := HandshakeUpdateResponse{State: NewHandshakeStateResponse(u.State)}
	if u.Connection != nil {
		c := NewConnectionResponse(*u.Connection)
		out.Connection = &c
	}
	return out
}
