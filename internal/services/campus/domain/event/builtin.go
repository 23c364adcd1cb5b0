package event

import (
	"context"

	"github.com/louisbranch/campuslife/internal/services/campus/domain/activity"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/narrative"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/session"
)

const roommate = "Xahoor"

func builtinHandlers() map[narrative.Milestone]Handler {
	return map[narrative.Milestone]Handler{
		narrative.FreshmanOrientation:  freshmanOrientation,
		narrative.FirstMajorAssignment: firstMajorAssignment,
		narrative.RoommateIntroduction: roommateIntroduction,
		narrative.RelationshipDilemma:  roommateDrama,
		narrative.CareerCenterVisit:    careerCenterVisit,
	}
}

func freshmanOrientation(ctx context.Context, env activity.Env, sess *session.Session) error {
	env.Println("\nWelcome to Freshman Orientation!")
	choice, err := env.Prompt.Choose(ctx, []string{
		"Attend all the informational sessions",
		"Focus on meeting new people",
		"Attend the fun activities",
		"Skip the orientation and explore the campus",
		"Explore the campus on your own",
	})
	if err != nil {
		return err
	}
	switch choice {
	case 0:
		env.Println("You gain valuable information about university resources.")
		sess.Student.RaiseSkillLevel("Academic", 1)
	case 1:
		env.Println("You make several new friends!")
		sess.Story.AdjustRelationship("New Friends", 20)
	default:
		env.Println("You discover some hidden spots on campus.")
		sess.Story.RaiseAwareness(5)
	}
	sess.Story.AddAchievement("Oriented Freshman")
	return nil
}

func firstMajorAssignment(ctx context.Context, env activity.Env, sess *session.Session) error {
	env.Println("\nYour first major assignment is due soon!")
	choice, err := env.Prompt.Choose(ctx, []string{
		"Pull an all-nighter to complete it",
		"Seek help from a study group",
		"Ask for an extension",
	})
	if err != nil {
		return err
	}
	switch choice {
	case 0:
		if activity.AcademicChallenge(env, sess, "All-Night Study Session", 70) {
			env.Println("Your hard work pays off!")
			sess.Student.AdjustGPA(0.2)
		} else {
			env.Println("You're exhausted and your work suffers.")
			sess.Student.AdjustGPA(-0.1)
		}
	case 1:
		env.Println("Collaborating improves your understanding.")
		sess.Student.AdjustGPA(0.1)
		sess.Story.AdjustRelationship("Classmates", 10)
	default:
		env.Println("Your professor grants the extension but seems disappointed.")
		sess.Story.AdjustRelationship("Professor", -5)
	}
	sess.Story.AddAchievement("First Assignment Survivor")
	return nil
}

func roommateIntroduction(ctx context.Context, env activity.Env, sess *session.Session) error {
	env.Println("\nTime to meet your roommate, " + roommate + "!")
	choice, err := env.Prompt.Choose(ctx, []string{
		"Suggest going out for coffee to get to know each other",
		"Propose setting up room rules right away",
		"Keep to yourself and be polite but distant",
	})
	if err != nil {
		return err
	}
	switch choice {
	case 0:
		env.Println("You and " + roommate + " hit it off over coffee!")
		sess.Story.AdjustRelationship(roommate, 20)
	case 1:
		env.Println("You and " + roommate + " establish clear boundaries.")
		sess.Story.AdjustRelationship(roommate, 10)
	default:
		env.Println("Things remain cordial but cool with " + roommate + ".")
	}
	sess.Story.AddAchievement("Roommate Roulette Survivor")
	return nil
}

func roommateDrama(ctx context.Context, env activity.Env, sess *session.Session) error {
	env.Println("\nYour roommate " + roommate + " has been acting strange lately...")
	choice, err := env.Prompt.Choose(ctx, []string{
		"Confront " + roommate + " directly",
		"Talk to your Resident Advisor",
		"Spend more time out with other friends",
		"Bury yourself in coursework",
		"Ignore the situation and hope it improves",
	})
	if err != nil {
		return err
	}
	switch choice {
	case 0:
		env.Println("You have a heart-to-heart with " + roommate + " and resolve your issues.")
		sess.Story.AdjustRelationship(roommate, 20)
		sess.Student.AdjustStress(-10)
	case 1:
		env.Println("Your RA mediates the situation, but things remain a bit awkward.")
		sess.Story.AdjustRelationship(roommate, 5)
		sess.Student.AdjustStress(-5)
	default:
		env.Println("The tension with " + roommate + " continues to build...")
		sess.Story.AdjustRelationship(roommate, -10)
		sess.Student.AdjustStress(15)
	}
	sess.Story.AddAchievement("Roommate Drama Survivor")
	return nil
}

func careerCenterVisit(ctx context.Context, env activity.Env, sess *session.Session) error {
	env.Println("\nYou decide to visit the university's career center.")
	choice, err := env.Prompt.Choose(ctx, []string{
		"Get help with your resume",
		"Explore internship opportunities",
		"Take a career aptitude test",
	})
	if err != nil {
		return err
	}
	switch choice {
	case 0:
		env.Println("Your resume is now much more professional!")
		sess.Student.RaiseSkillLevel("Professional Writing", 1)
	case 1:
		env.Println("You find some interesting internship leads.")
		sess.Story.Decide("Internship Focus", "Early Explorer")
	default:
		env.Println("The test results give you new career ideas to consider.")
		sess.Story.RaiseAwareness(10)
	}
	sess.Story.AddAchievement("Career Planner")
	return nil
}
