package center

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*EmergencyCenter, error)
	ListAll(ctx context.Context) ([]*EmergencyCenter, error)
}
