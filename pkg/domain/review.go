package domain

import "time"

// Outcome is the terminal state of a candidate after the publication decision
type Outcome string

const (
	OutcomeDiscarded   Outcome = "discarded"
	OutcomeQueued      Outcome = "queued"
	OutcomePublished   Outcome = "published"
	OutcomeAutoPublish Outcome = "auto_publish" // intermediate, resolved after link minting
)

// Reason explains why a decision was taken
type Reason string

const (
	ReasonBlacklisted     Reason = "blacklisted"
	ReasonUnchanged       Reason = "unchanged"
	ReasonLowScore        Reason = "low_score"
	ReasonPriceDrop       Reason = "price_drop"
	ReasonManualMode      Reason = "manual_mode"
	ReasonBelowAutonomous Reason = "below_autonomous"
	ReasonMintFailed      Reason = "mint_failed"
	ReasonManualURL       Reason = "manual_url"
	ReasonAutonomous      Reason = "autonomous"
)

// Decision couples an outcome with its reason
type Decision struct {
	Outcome Outcome
	Reason  Reason
}

// ReviewStatus is the state of a queued deal awaiting a human
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// Review is a queued deal waiting for approve or reject
type Review struct {
	Ref        string
	Listing    ScoredListing
	Reason     Reason
	OldPrice   float64
	Status     ReviewStatus
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

// Target selects where the notifier sends a deal
type Target string

const (
	TargetChannel  Target = "channel"
	TargetReviewer Target = "reviewer"
)

// Notice is what the notifier receives for one deal; rendering is up to the notifier
type Notice struct {
	Deal     ScoredListing
	Decision Decision
	Ref      string  // review reference, reviewer target only
	OldPrice float64 // previous announced price for price drops
}

// Stats holds counters reported periodically
type Stats struct {
	Cycles          int64
	Fetched         int64
	Sent            int64
	Queued          int64
	Discarded       int64
	Blacklisted     int64
	SourceFailures  int64
	StorageFailures int64
	MintFailures    int64
	PublishFailures int64
	TotalSeen       int64
	Autonomous      bool
	LastCycleAt     time.Time
}
