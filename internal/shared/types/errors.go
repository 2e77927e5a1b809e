package types

import "errors"

var (
	ErrMissingCDRFile       = errors.New("CDR file is required. Use --cdr or set cdr_file in the config file")
	ErrMissingInventoryFile = errors.New("phone number inventory file is required. Use --phones or set inventory_file in the config file")
	ErrNegativeRate         = errors.New("billing rates must not be negative")
)
