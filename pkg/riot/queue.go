package riot

// Queue identifiers, as reported by the match-v5 API.
const (
	// QueueRankedSolo is ranked solo/duo on Summoner's Rift.
	QueueRankedSolo = 420
)
