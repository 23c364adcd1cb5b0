package activity

import (
	"context"

	"github.com/louisbranch/campuslife/internal/services/campus/domain/character"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/session"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/world"
)

const (
	challengeEnergyCost = 20
	challengeStress     = 15
	challengeGPAStep    = 0.1
	studyAidBonus       = 20
	weatherChangeChance = 0.2
	newFriendChance     = 0.3
	newFriendAffinity   = 50
	clubStress          = 5
	clubEnergyCost      = 10
	maxShiftHours       = 8
)

// FoundItems are the items a study session can turn up.
func FoundItems() []character.Item {
	return []character.Item{
		{Name: "Textbook", Kind: character.ItemStudyAid, Value: 50},
		{Name: "Coffee", Kind: character.ItemEnergyBoost, Value: 5},
		{Name: "Study Guide", Kind: character.ItemStudyAid, Value: 30},
		{Name: "Energy Drink", Kind: character.ItemEnergyBoost, Value: 10},
		{Name: "Calculator", Kind: character.ItemStudyAid, Value: 20},
	}
}

// SocialActivities are the options offered by Social.
func SocialActivities() []string {
	return []string{"Study Group", "Club Meeting", "Coffee with Friends", "Campus Event", "Sports Activity"}
}

// SuccessChance is the percentage chance of passing an academic challenge.
func SuccessChance(s *character.Student) float64 {
	chance := float64(s.Energy)/2 +
		float64(len(s.Skills))*10 +
		s.GPA*10 -
		float64(s.Stress)/2
	if s.HasItemKind(character.ItemStudyAid) {
		chance += studyAidBonus
	}
	return chance
}

// AcademicChallenge attempts a challenge. Success raises GPA by 0.1 and
// earns 1-3 credits; failure lowers GPA by 0.1. Either way it costs energy
// and adds stress.
func AcademicChallenge(env Env, sess *session.Session, name string, difficulty int) bool {
	student := sess.Student
	env.Say("campus.challenge.header", name)
	env.Say("campus.challenge.difficulty", difficulty)

	chance := SuccessChance(student)
	success := float64(env.Dice.Intn(101)) < chance

	student.AdjustEnergy(-challengeEnergyCost)
	student.AdjustStress(challengeStress)

	if success {
		env.Say("campus.challenge.success")
		student.AdjustGPA(challengeGPAStep)
		student.AddCredits(env.Dice.Intn(3) + 1)
	} else {
		env.Say("campus.challenge.failure")
		student.AdjustGPA(-challengeGPAStep)
	}
	env.Logf("challenge %q difficulty=%d chance=%.1f success=%t", name, difficulty, chance, success)
	return success
}

// Study runs a study session with one of four random outcomes.
func Study(env Env, sess *session.Session) {
	student := sess.Student
	student.Stats.ClassesAttended++
	env.Say("campus.study.start")
	switch env.Dice.Intn(4) {
	case 0:
		student.AdjustEnergy(-10)
		env.Say("campus.study.pays_off")
		if env.Dice.Float64() < 0.3 && student.Semester > 1 {
			skill := env.T("campus.study.technique", student.Major, len(student.Skills)+1)
			student.AddSkill(skill)
			env.Say("campus.study.learned", skill)
		}
	case 1:
		loss := env.Dice.Intn(11) + 5
		student.AdjustEnergy(-loss)
		env.Say("campus.study.drain", loss)
	case 2:
		items := FoundItems()
		found := items[env.Dice.Intn(len(items))]
		student.AddItem(found)
		env.Say("campus.study.found", found.Name)
	default:
		boost := 0.05 + env.Dice.Float64()*0.1
		student.AdjustGPA(boost)
		env.Say("campus.study.gpa", boost)
	}
}

// Rest recovers 20-40 energy and relieves 10-25 stress.
func Rest(env Env, sess *session.Session) {
	recovered := env.Dice.Intn(21) + 20
	relief := env.Dice.Intn(16) + 10
	sess.Student.AdjustEnergy(recovered)
	sess.Student.AdjustStress(-relief)
	env.Say("campus.rest.energy", recovered)
	env.Say("campus.rest.stress", relief)
}

// ApplyWeather applies the current weather's energy and stress effects.
func ApplyWeather(env Env, sess *session.Session) {
	energy, stress := sess.Weather.Effect()
	if energy == 0 && stress == 0 {
		env.Say("campus.weather.current", string(sess.Weather))
		return
	}
	sess.Student.AdjustEnergy(energy)
	sess.Student.AdjustStress(stress)
	env.Say("campus.weather.effect", string(sess.Weather), energy, stress)
}

// PassTime advances the clock by hours with a 20% chance of new weather.
func PassTime(env Env, sess *session.Session, hours int) {
	sess.Clock = sess.Clock.Advance(hours)
	if env.Dice.Float64() < weatherChangeChance {
		sess.Weather = world.RandomWeather(env.Dice)
		env.Say("campus.weather.changed", string(sess.Weather))
	}
}

// Social takes part in a social activity chosen by the player.
func Social(ctx context.Context, env Env, sess *session.Session) error {
	student := sess.Student
	activities := SocialActivities()
	env.Say("campus.social.header")
	choice, err := env.Prompt.Choose(ctx, activities)
	if err != nil {
		return err
	}

	cost := env.Dice.Intn(11) + 5
	relief := env.Dice.Intn(16) + 5
	student.AdjustEnergy(-cost)
	student.AdjustStress(-relief)
	student.Stats.SocialEvents++

	env.Say("campus.social.joined", activities[choice])
	env.Say("campus.social.energy", cost)
	env.Say("campus.social.stress", relief)

	if env.Dice.Float64() < newFriendChance {
		friend := env.T("campus.social.friend_name", len(student.Relationships)+1)
		student.AdjustRelationship(friend, newFriendAffinity)
		env.Say("campus.social.friend", friend)
	}
	return nil
}

// UseItem lets the player consume one inventory item.
func UseItem(ctx context.Context, env Env, sess *session.Session) error {
	student := sess.Student
	if len(student.Inventory) == 0 {
		env.Say("campus.items.none")
		return nil
	}
	names := make([]string, len(student.Inventory))
	for i, item := range student.Inventory {
		names[i] = env.T("campus.items.option", item.Name, string(item.Kind))
	}
	choice, err := env.Prompt.Choose(ctx, names)
	if err != nil {
		return err
	}
	used, err := student.UseItem(choice)
	if err != nil {
		return err
	}
	switch used.Kind {
	case character.ItemEnergyBoost:
		env.Say("campus.items.energy", used.Name, used.Value)
	case character.ItemStudyAid:
		env.Say("campus.items.stress", used.Name, used.Value)
	}
	return nil
}

// Work applies for a job when the student has none; otherwise it works a
// shift of 1-8 hours.
func Work(ctx context.Context, env Env, sess *session.Session) error {
	student := sess.Student
	if student.Job == nil {
		jobs := env.Catalog.Jobs
		if len(jobs) == 0 {
			return nil
		}
		titles := make([]string, len(jobs))
		for i, job := range jobs {
			titles[i] = job.Title
		}
		env.Say("campus.job.header")
		choice, err := env.Prompt.Choose(ctx, titles)
		if err != nil {
			return err
		}
		student.TakeJob(character.Job{Title: jobs[choice].Title, HourlyRate: jobs[choice].HourlyRate})
		env.Say("campus.job.hired", student.Job.Title)
		env.Logf("hired as %s", student.Job.Title)
		return nil
	}

	hours, err := env.Prompt.AskInt(ctx, env.T("campus.job.hours"), 1, maxShiftHours)
	if err != nil {
		return err
	}
	earned := student.WorkJob(hours)
	PassTime(env, sess, hours)
	env.Say("campus.job.earned", earned)
	env.Say("campus.job.balance", student.Money)
	env.Logf("worked %dh earned=%d", hours, earned)
	return nil
}

// Extracurricular joins a club the student is not yet in.
func Extracurricular(ctx context.Context, env Env, sess *session.Session) error {
	student := sess.Student
	if len(student.Extracurriculars) >= character.MaxExtracurriculars {
		env.Say("campus.clubs.full")
		return nil
	}
	joined := make(map[string]bool, len(student.Extracurriculars))
	for _, name := range student.Extracurriculars {
		joined[name] = true
	}
	var available []string
	for _, name := range env.Catalog.Extracurriculars {
		if !joined[name] {
			available = append(available, name)
		}
	}
	if len(available) == 0 {
		env.Say("campus.clubs.none")
		return nil
	}

	env.Say("campus.clubs.header")
	choice, err := env.Prompt.Choose(ctx, available)
	if err != nil {
		return err
	}
	if err := student.JoinExtracurricular(available[choice]); err != nil {
		return err
	}
	student.AdjustStress(clubStress)
	student.AdjustEnergy(-clubEnergyCost)
	env.Say("campus.clubs.joined", available[choice])
	return nil
}
