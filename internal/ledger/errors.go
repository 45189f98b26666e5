package ledger

import "errors"

// Every validation failure the ledger can produce. Handlers map these to
// HTTP status codes with errors.Is; the messages follow the wording the
// rest of the platform already logs and asserts on.
var (
	ErrDuplicateUser       = errors.New("user has already existed")
	ErrUnregisteredUser    = errors.New("user does not exist")
	ErrEmptyData           = errors.New("data field can not be empty")
	ErrInvalidPrice        = errors.New("price must be greater than zero")
	ErrUnregisteredProduct = errors.New("product does not exist")
	ErrOnlyOwner           = errors.New("not a valid owner")
	ErrInvalidCartOverride = errors.New("cart entry already exists")
	ErrNoCartProduct       = errors.New("no product in cart")
)
