package lottery

import "errors"

var (
	ErrNilState             = errors.New("lottery: state not configured")
	ErrNilOracle            = errors.New("lottery: randomness oracle not configured")
	ErrRoundNotFound        = errors.New("lottery: round not found")
	ErrTicketNotFound       = errors.New("lottery: ticket not found")
	ErrInvalidConfiguration = errors.New("lottery: invalid round configuration")
	ErrPreviousRoundOpen    = errors.New("lottery: previous round not finished")
	ErrRoundNotOpen         = errors.New("lottery: round not open")
	ErrRoundNotOver         = errors.New("lottery: round not over")
	ErrRoundNotClosed       = errors.New("lottery: round not closed")
	ErrRoundNotClaimable    = errors.New("lottery: round not claimable")
	ErrRoundAlreadyDrawn    = errors.New("lottery: round already claimable")
	ErrInvalidTicketNumber  = errors.New("lottery: ticket number outside six digit range")
	ErrEmptyPurchase        = errors.New("lottery: no ticket numbers supplied")
	ErrTooManyTickets       = errors.New("lottery: too many tickets in one batch")
	ErrInsufficientPayment  = errors.New("lottery: payment does not match batch price")
	ErrInsufficientFunds    = errors.New("lottery: insufficient balance")
	ErrNotOperator          = errors.New("lottery: caller is not the operator")
	ErrNotInjector          = errors.New("lottery: caller may not inject funds")
	ErrNotTicketOwner       = errors.New("lottery: caller does not own ticket")
	ErrTicketAlreadyClaimed = errors.New("lottery: ticket already claimed")
	ErrWrongRound           = errors.New("lottery: ticket belongs to a different round")
	ErrEmptyClaim           = errors.New("lottery: no ticket ids supplied")
	ErrClaimLengthMismatch  = errors.New("lottery: ticket ids and brackets length mismatch")
	ErrNoTicketsForOwner    = errors.New("lottery: user has no tickets for this round")
	ErrEmptySeed            = errors.New("lottery: empty draw seed")
	ErrSeedMismatch         = errors.New("lottery: draw seed does not match close commitment")
)
