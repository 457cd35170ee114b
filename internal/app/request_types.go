package app

import "github.com/aluiggi96/Doc-MYPE/internal/core"

// DocumentRequest is the input for creating or editing a document.
// Client and product names are resolved by the service; names sent by the
// caller are ignored. A zero unit price on a line means "use the product price".
type DocumentRequest struct {
	core.DocumentInput
}

// VoidDocumentRequest is the input for voiding a document.
type VoidDocumentRequest struct {
	ID        string
	Confirmed bool
}

// DeleteRequest is the input for deleting a client or product.
type DeleteRequest struct {
	ID        string
	Confirmed bool
}
