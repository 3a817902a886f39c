package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// claimIdempotencyKey runs inside the caller's transaction. A concurrent request with the
// same key blocks on the uncommitted row and sees the completed result afterwards.
// It returns the stored response body when the request was already processed.
func claimIdempotencyKey(
	ctx context.Context,
	tx shared.Tx,
	key, userID uuid.UUID,
	endpoint, requestHash string,
	now time.Time,
	ttl time.Duration,
) ([]byte, error) {
	expiresAt := now.Add(ttl)
	inserted, err := tx.Idempotency().TryInsert(ctx, tx.DB(), key, userID, endpoint, requestHash, expiresAt)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if inserted {
		return nil, nil
	}

	existing, err := tx.Idempotency().Get(ctx, tx.DB(), key, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	if existing.ExpiresAt.Before(now) {
		claimed, claimErr := tx.Idempotency().ClaimExpiredIdempotencyKey(ctx, tx.DB(), key, userID, requestHash, expiresAt)
		if claimErr != nil {
			return nil, errs.Mark(claimErr, ErrIdempotencyCheckFailed)
		}
		if claimed == 1 {
			return nil, nil
		}
	}

	if existing.RequestHash != requestHash || existing.Endpoint != endpoint {
		return nil, ErrIdempotencyMismatch
	}

	switch existing.Status {
	case shared.IdempotencyStatusCompleted:
		return existing.ResponseBody, nil
	case shared.IdempotencyStatusProcessing:
		return nil, ErrIdempotencyInProgress
	default:
		return nil, errs.Newf("invalid idempotency key status %q", existing.Status)
	}
}

func calculateRequestHash(req any) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
