package repository

import (
	"github.com/diillson/cdr-billing/internal/domain/entity"
)

// UsageRepository defines the interface for reading CSV usage exports.
type UsageRepository interface {
	LoadCalls(path string) ([]entity.CallRecord, error)
	LoadMessages(path string) ([]entity.MessageRecord, error)
	LoadInventory(path string) ([]entity.PhoneInventoryEntry, error)
}
