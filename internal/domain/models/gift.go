package models

type ResolutionStatus string

const (
	ResolutionValid   ResolutionStatus = "valid"
	ResolutionInvalid ResolutionStatus = "invalid"
)

// UnknownClaimID подставляется, когда ключ есть в URL, но значение разобрать не удалось.
const UnknownClaimID = "unknown"

type GiftCandidate struct {
	SourcePostID string
	RawURL       string
}

type Resolution struct {
	Candidate GiftCandidate
	Status    ResolutionStatus
	FinalURL  string
	ClaimID   string
	// ShortCircuit выставляется, если сеть не использовалась.
	ShortCircuit bool
	Err          error
}

func (r *Resolution) Valid() bool {
	return r.Status == ResolutionValid
}

type ResolvedGift struct {
	FinalURL     string
	ClaimID      string
	SourcePostID string
	IsActive     bool
}

func NewResolvedGift(res *Resolution) *ResolvedGift {
	return &ResolvedGift{
		FinalURL:     res.FinalURL,
		ClaimID:      res.ClaimID,
		SourcePostID: res.Candidate.SourcePostID,
		IsActive:     true,
	}
}
