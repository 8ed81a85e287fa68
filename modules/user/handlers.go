package user

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Sudhikumaran/ripple-ai/handler"
)

// CreationID accepts a JSON number or a numeric string.
type CreationID int64

func (c *CreationID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid creation id %q", data)
	}
	*c = CreationID(n)
	return nil
}

// ToggleLikeRequest is the body of toggle-like-creation.
type ToggleLikeRequest struct {
	ID CreationID `json:"id"`
}

func (s *Service) getUserCreations(ctx handler.Context, _ struct{}) handler.Response {
	list, err := s.Creations(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Creations(list)
}

func (s *Service) getPublishedCreations(ctx handler.Context, _ struct{}) handler.Response {
	list, err := s.Published(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Creations(list)
}

func (s *Service) toggleLikeCreation(ctx handler.Context, req ToggleLikeRequest) handler.Response {
	msg, err := s.ToggleLike(ctx, int64(req.ID))
	if err != nil {
		return handler.Error(err)
	}
	return handler.Message(msg)
}

var _ json.Unmarshaler = (*CreationID)(nil)
