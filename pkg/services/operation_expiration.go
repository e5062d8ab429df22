package services

import (
	"github.com/SamMauldin/super-sorting-system/pkg/config"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

// OperationExpiration delegates to the operation store's own
// retention sweep.
type OperationExpiration struct{}

// NewOperationExpiration constructs an OperationExpiration service.
func NewOperationExpiration(_ *config.Config) *OperationExpiration { return &OperationExpiration{} }

func (s *OperationExpiration) Name() string { return "operation_expiration" }

func (s *OperationExpiration) Tick(st *state.State) {
	st.Operations.PurgeOldOperations()
}
