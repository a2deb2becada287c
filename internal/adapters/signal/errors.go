package signal

import (
	"errors"

	"github.com/dkeye/Meet/internal/app"
	"github.com/dkeye/Meet/internal/app/orch"
	"github.com/dkeye/Meet/internal/domain"
)

const (
	codeBadPayload    = "bad_payload"
	codeUnknownType   = "unknown_type"
	codeInvalidRoom   = "invalid_room"
	codeNotInRoom     = "not_in_room"
	codeUnknownTarget = "unknown_target"
	codeRateLimited   = "rate_limited"
	codeInvalidSender = "invalid_sender"
	codeInternal      = "internal"
)

func errorCode(err error) string {
	switch {
	case errors.Is(err, orch.ErrNotInRoom):
		return codeNotInRoom
	case errors.Is(err, app.ErrUnknownTarget), errors.Is(err, domain.ErrConnIDEmpty):
		return codeUnknownTarget
	case errors.Is(err, orch.ErrRateLimited):
		return codeRateLimited
	case errors.Is(err, domain.ErrSenderTooLong):
		return codeInvalidSender
	case errors.Is(err, domain.ErrRoomKeyEmpty), errors.Is(err, domain.ErrRoomKeyTooLong), errors.Is(err, domain.ErrRoomKeyInvalid):
		return codeInvalidRoom
	default:
		return codeInternal
	}
}
