package readstore

import (
	"travel-booking/internal/pkg/pgconv"
	"travel-booking/internal/usecase/queries"
)

// keysetArgs renders a Keyset as (after_created_at, after_id, limit+1) query args.
func keysetArgs(ks queries.Keyset) []any {
	return []any{
		pgconv.TimePtrToPgtype(ks.AfterCreatedAt),
		pgconv.UUIDPtrToPgtype(ks.AfterID),
		ks.Limit + 1,
	}
}
