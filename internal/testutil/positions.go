package testutil

// Named FEN fixtures shared by tests. Perft counts for the first four are
// the published reference values.
const (
	StartFEN    = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	KiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	Position3   = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	Position4   = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"

	// FoolsMateFEN is checkmate with White to move.
	FoolsMateFEN = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"

	// StalemateFEN is stalemate with Black to move.
	StalemateFEN = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"

	// MateInOneFEN lets White mate with Ra8.
	MateInOneFEN = "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"

	// HangingQueenFEN lets White win an undefended queen with the rook.
	HangingQueenFEN = "4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1"

	// EnPassantFEN has a black pawn that just double-stepped next to a white pawn.
	EnPassantFEN = "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3"

	// EnPassantPinFEN has an en-passant capture that would expose the black king.
	EnPassantPinFEN = "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1"

	// CastlingFEN has both kings and all rooks unmoved with empty back ranks.
	CastlingFEN = "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1"

	// PromotionFEN has a white pawn one step from promotion.
	PromotionFEN = "8/4P3/8/8/8/8/k7/4K3 w - - 0 1"
)
