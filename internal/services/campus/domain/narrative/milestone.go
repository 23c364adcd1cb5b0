package narrative

// ArcID identifies one of the four story arcs.
type ArcID string

const (
	ArcPersonalGrowth    ArcID = "personal_growth"
	ArcAcademicJourney   ArcID = "academic_journey"
	ArcSocialLife        ArcID = "social_life"
	ArcCareerDevelopment ArcID = "career_development"
)

// ArcIDs returns the arcs in dispatch order.
func ArcIDs() []ArcID {
	return []ArcID{ArcPersonalGrowth, ArcAcademicJourney, ArcSocialLife, ArcCareerDevelopment}
}

// Milestone is a waypoint within an arc. The set is closed: every value is
// declared below and belongs to exactly one arc.
type Milestone int

const (
	MilestoneUnknown Milestone = iota

	FreshmanOrientation
	IdentityCrisis
	FindingYourPassion
	LeadershipOpportunity
	PersonalTransformation
	LegacyPlanning

	FirstMajorAssignment
	ChoosingSpecialization
	InternshipApplication
	ResearchProject
	ThesisProposal
	FinalPresentation

	RoommateIntroduction
	ClubFair
	CampusEventOrganization
	RelationshipDilemma
	SpringBreakAdventure
	GraduationPartyPlanning

	CareerCenterVisit
	FirstJobFair
	SummerInternship
	NetworkingEvent
	JobInterviewPreparation
	JobOfferNegotiation

	milestoneCount
)

type milestoneInfo struct {
	arc   ArcID
	key   string
	label string
}

var milestones = [milestoneCount]milestoneInfo{
	MilestoneUnknown: {key: "unknown", label: "Unknown"},

	FreshmanOrientation:    {ArcPersonalGrowth, "freshman_orientation", "Freshman Orientation"},
	IdentityCrisis:         {ArcPersonalGrowth, "identity_crisis", "Identity Crisis"},
	FindingYourPassion:     {ArcPersonalGrowth, "finding_your_passion", "Finding Your Passion"},
	LeadershipOpportunity:  {ArcPersonalGrowth, "leadership_opportunity", "Leadership Opportunity"},
	PersonalTransformation: {ArcPersonalGrowth, "personal_transformation", "Personal Transformation"},
	LegacyPlanning:         {ArcPersonalGrowth, "legacy_planning", "Legacy Planning"},

	FirstMajorAssignment:   {ArcAcademicJourney, "first_major_assignment", "First Major Assignment"},
	ChoosingSpecialization: {ArcAcademicJourney, "choosing_specialization", "Choosing Specialization"},
	InternshipApplication:  {ArcAcademicJourney, "internship_application", "Internship Application"},
	ResearchProject:        {ArcAcademicJourney, "research_project", "Research Project"},
	ThesisProposal:         {ArcAcademicJourney, "thesis_proposal", "Thesis Proposal"},
	FinalPresentation:      {ArcAcademicJourney, "final_presentation", "Final Presentation"},

	RoommateIntroduction:    {ArcSocialLife, "roommate_introduction", "Roommate Introduction"},
	ClubFair:                {ArcSocialLife, "club_fair", "Club Fair"},
	CampusEventOrganization: {ArcSocialLife, "campus_event_organization", "Campus Event Organization"},
	RelationshipDilemma:     {ArcSocialLife, "relationship_dilemma", "Relationship Dilemma"},
	SpringBreakAdventure:    {ArcSocialLife, "spring_break_adventure", "Spring Break Adventure"},
	GraduationPartyPlanning: {ArcSocialLife, "graduation_party_planning", "Graduation Party Planning"},

	CareerCenterVisit:       {ArcCareerDevelopment, "career_center_visit", "Career Center Visit"},
	FirstJobFair:            {ArcCareerDevelopment, "first_job_fair", "First Job Fair"},
	SummerInternship:        {ArcCareerDevelopment, "summer_internship", "Summer Internship"},
	NetworkingEvent:         {ArcCareerDevelopment, "networking_event", "Networking Event"},
	JobInterviewPreparation: {ArcCareerDevelopment, "job_interview_preparation", "Job Interview Preparation"},
	JobOfferNegotiation:     {ArcCareerDevelopment, "job_offer_negotiation", "Job Offer Negotiation"},
}

// Milestones returns every declared milestone in arc order.
func Milestones() []Milestone {
	out := make([]Milestone, 0, milestoneCount-1)
	for m := FreshmanOrientation; m < milestoneCount; m++ {
		out = append(out, m)
	}
	return out
}

// ParseMilestone resolves a milestone from its key.
func ParseMilestone(key string) (Milestone, bool) {
	for m := FreshmanOrientation; m < milestoneCount; m++ {
		if milestones[m].key == key {
			return m, true
		}
	}
	return MilestoneUnknown, false
}

// Valid reports whether m is a declared milestone.
func (m Milestone) Valid() bool {
	return m > MilestoneUnknown && m < milestoneCount
}

// Arc returns the arc m belongs to.
func (m Milestone) Arc() ArcID {
	if !m.Valid() {
		return ""
	}
	return milestones[m].arc
}

// Key returns the stable snake_case identifier.
func (m Milestone) Key() string {
	if !m.Valid() {
		return milestones[MilestoneUnknown].key
	}
	return milestones[m].key
}

// Label returns the display name.
func (m Milestone) Label() string {
	if !m.Valid() {
		return milestones[MilestoneUnknown].label
	}
	return milestones[m].label
}

func (m Milestone) String() string {
	return m.Label()
}

// MajorPlot is the overarching path a student commits to.
type MajorPlot string

const (
	PlotAcademicExcellence    MajorPlot = "Academic Excellence"
	PlotSocialButterfly       MajorPlot = "Social Butterfly"
	PlotEntrepreneurialSpirit MajorPlot = "Entrepreneurial Spirit"
	PlotResearchPioneer       MajorPlot = "Research Pioneer"
)

// MajorPlots returns the plots in menu order.
func MajorPlots() []MajorPlot {
	return []MajorPlot{PlotAcademicExcellence, PlotSocialButterfly, PlotEntrepreneurialSpirit, PlotResearchPioneer}
}

// ParseMajorPlot resolves a stored plot tag.
func ParseMajorPlot(value string) (MajorPlot, bool) {
	for _, plot := range MajorPlots() {
		if string(plot) == value {
			return plot, true
		}
	}
	return "", false
}
