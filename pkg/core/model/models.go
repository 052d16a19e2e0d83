package model

import "time"

// BloodType is one of the 8 canonical ABO/Rh classifications.
type BloodType string

const (
	BloodTypeONeg  BloodType = "O-"
	BloodTypeOPos  BloodType = "O+"
	BloodTypeANeg  BloodType = "A-"
	BloodTypeAPos  BloodType = "A+"
	BloodTypeBNeg  BloodType = "B-"
	BloodTypeBPos  BloodType = "B+"
	BloodTypeABNeg BloodType = "AB-"
	BloodTypeABPos BloodType = "AB+"
)

// AllBloodTypes lists the canonical blood types in a stable order.
func AllBloodTypes() []BloodType {
	return []BloodType{
		BloodTypeONeg, BloodTypeOPos,
		BloodTypeANeg, BloodTypeAPos,
		BloodTypeBNeg, BloodTypeBPos,
		BloodTypeABNeg, BloodTypeABPos,
	}
}

func (b BloodType) IsValid() bool {
	switch b {
	case BloodTypeONeg, BloodTypeOPos, BloodTypeANeg, BloodTypeAPos,
		BloodTypeBNeg, BloodTypeBPos, BloodTypeABNeg, BloodTypeABPos:
		return true
	}
	return false
}

// Urgency is the clinical urgency of a blood request.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyStandard Urgency = "standard"
)

func (u Urgency) IsValid() bool {
	return u == UrgencyCritical || u == UrgencyHigh || u == UrgencyMedium || u == UrgencyStandard
}

// Priority is the urgency-adjusted coarse bucket assigned to a match for display.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// RhVariants holds the four independent Rh sub-antigen markers.
// Presence means tested/positive for that antigen.
type RhVariants struct {
	BigC   bool `json:"C"`
	SmallC bool `json:"c"`
	BigE   bool `json:"E"`
	SmallE bool `json:"e"`
}

// DonorProfile is one candidate donor's self-reported medical/contact record.
// Missing boolean flags default to false and missing strings to empty; records
// are normalized at the data-access boundary so the engine only sees fully
// defaulted values.
type DonorProfile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Location      string `json:"location"`
	ContactNumber string `json:"contactNumber"`
	Availability  string `json:"availability"`

	BloodType  BloodType  `json:"bloodType"`
	RhVariants RhVariants `json:"rhVariants"`
	Kell       bool       `json:"kell"`
	Duffy      bool       `json:"duffy"`
	Kidd       bool       `json:"kidd"`

	Age              int        `json:"age"`
	Gender           string     `json:"gender"`
	Weight           float64    `json:"weight"`
	HemoglobinLevel  float64    `json:"hemoglobinLevel"`
	TotalDonations   int        `json:"totalDonations" validate:"min=0"`
	LastDonationDate *time.Time `json:"lastDonationDate,omitempty"`

	// Absolute (hard-stop) eligibility flags. Any true permanently disqualifies.
	HIVStatus  bool `json:"hivStatus"`
	HepatitisB bool `json:"hepatitisB"`
	HepatitisC bool `json:"hepatitisC"`
	HTLV       bool `json:"htlv"`
	IVDrugUse  bool `json:"ivDrugUse"`

	// Temporary deferral flags. Any true warns but does not disqualify.
	RecentColdFlu     bool `json:"recentColdFlu"`
	RecentTattoo      bool `json:"recentTattoo"`
	RecentSurgery     bool `json:"recentSurgery"`
	Pregnant          bool `json:"pregnant"`
	RecentVaccination bool `json:"recentVaccination"`
	RecentTravel      bool `json:"recentTravel"`

	WillingForEmergency    bool   `json:"willingForEmergency"`
	PreferredContactMethod string `json:"preferredContactMethod"`
	ResponseRate           int    `json:"responseRate" validate:"min=0,max=100"`
}

// RecipientRequest is one active blood need.
// Antigen fields are soft preferences: presence means the match is clinically
// desired, not a hard requirement.
type RecipientRequest struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	UserName      string `json:"userName"`
	Hospital      string `json:"hospital"`
	Location      string `json:"location"`
	ContactNumber string `json:"contactNumber"`

	BloodType  BloodType  `json:"bloodType"`
	Urgency    Urgency    `json:"urgency"`
	Units      int        `json:"units" validate:"min=1"`
	RequiredBy *time.Time `json:"requiredBy,omitempty"`

	RhVariants RhVariants `json:"rhVariants"`
	Kell       bool       `json:"kell"`
	Duffy      bool       `json:"duffy"`
	Kidd       bool       `json:"kidd"`

	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	PatientWeight float64 `json:"patientWeight"`

	// Special processing flags. Carried through but not scored.
	IrradiatedBlood  bool `json:"irradiatedBlood"`
	CMVNegative      bool `json:"cmvNegative"`
	WashedCells      bool `json:"washedCells"`
	LeukocyteReduced bool `json:"leukocyteReduced"`
}

// MatchResult is one surviving donor match with its score and explanation.
// Donor fields are denormalized for direct display.
type MatchResult struct {
	DonorID           string     `json:"donorId"`
	DonorName         string     `json:"donorName"`
	DonorBloodType    BloodType  `json:"donorBloodType"`
	DonorLocation     string     `json:"donorLocation"`
	DonorContact      string     `json:"donorContact"`
	DonorAvailability string     `json:"donorAvailability"`
	RhVariants        RhVariants `json:"rhVariants"`
	Kell              bool       `json:"kell"`
	Duffy             bool       `json:"duffy"`
	Kidd              bool       `json:"kidd"`
	TotalDonations    int        `json:"totalDonations"`
	LastDonationDate  *time.Time `json:"lastDonationDate,omitempty"`

	CompatibilityScore int      `json:"compatibilityScore"`
	MatchReasons       []string `json:"matchReasons"`
	Warnings           []string `json:"warnings"`
	IsEligible         bool     `json:"isEligible"`
	Priority           Priority `json:"priority"`
}

// MatchingResponse is the aggregate result of matching one request against a
// donor pool. Matches are sorted by compatibility score descending.
type MatchingResponse struct {
	RequestID         string        `json:"requestId"`
	RecipientName     string        `json:"recipientName"`
	BloodTypeNeeded   BloodType     `json:"bloodTypeNeeded"`
	Urgency           Urgency       `json:"urgency"`
	Matches           []MatchResult `json:"matches"`
	TotalMatchesFound int           `json:"totalMatchesFound"`
	ModelUsed         string        `json:"modelUsed"`
	Timestamp         time.Time     `json:"timestamp"`
}
