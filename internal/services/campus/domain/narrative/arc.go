package narrative

import (
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/campuslife/internal/platform/errors"
)

// Arc is an ordered track of milestones with a saturating cursor.
type Arc struct {
	ID         ArcID
	Name       string
	Milestones []Milestone
	Current    int
}

// NewArc returns the arc id at its first milestone.
func NewArc(id ArcID) (*Arc, error) {
	switch id {
	case ArcPersonalGrowth:
		return &Arc{ID: id, Name: "Personal Growth", Milestones: []Milestone{
			FreshmanOrientation, IdentityCrisis, FindingYourPassion,
			LeadershipOpportunity, PersonalTransformation, LegacyPlanning,
		}}, nil
	case ArcAcademicJourney:
		return &Arc{ID: id, Name: "Academic Journey", Milestones: []Milestone{
			FirstMajorAssignment, ChoosingSpecialization, InternshipApplication,
			ResearchProject, ThesisProposal, FinalPresentation,
		}}, nil
	case ArcSocialLife:
		return &Arc{ID: id, Name: "Social Life", Milestones: []Milestone{
			RoommateIntroduction, ClubFair, CampusEventOrganization,
			RelationshipDilemma, SpringBreakAdventure, GraduationPartyPlanning,
		}}, nil
	case ArcCareerDevelopment:
		return &Arc{ID: id, Name: "Career Development", Milestones: []Milestone{
			CareerCenterVisit, FirstJobFair, SummerInternship,
			NetworkingEvent, JobInterviewPreparation, JobOfferNegotiation,
		}}, nil
	default:
		return nil, apperrors.WithMetadata(
			apperrors.CodeUnknownArc,
			fmt.Sprintf("unknown arc %q", id),
			map[string]string{"Arc": string(id)},
		)
	}
}

// Advance moves to the next milestone. At the last milestone it does nothing
// and returns false.
func (a *Arc) Advance() bool {
	if a.Current >= len(a.Milestones)-1 {
		return false
	}
	a.Current++
	return true
}

// CurrentMilestone returns the milestone under the cursor.
func (a *Arc) CurrentMilestone() Milestone {
	if a.Current < 0 || a.Current >= len(a.Milestones) {
		return MilestoneUnknown
	}
	return a.Milestones[a.Current]
}

// Finished reports whether the cursor sits on the terminal milestone.
func (a *Arc) Finished() bool {
	return a.Current >= len(a.Milestones)-1
}

// SetCurrent moves the cursor to index, used when restoring a save.
func (a *Arc) SetCurrent(index int) error {
	if index < 0 || index >= len(a.Milestones) {
		return apperrors.WithMetadata(
			apperrors.CodeInvalidMilestoneIndex,
			fmt.Sprintf("milestone index %d out of range for %s", index, a.ID),
			map[string]string{"Arc": string(a.ID), "Index": strconv.Itoa(index)},
		)
	}
	a.Current = index
	return nil
}
