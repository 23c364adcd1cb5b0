// Package scenario loads scripted playthroughs written in Lua. A script
// builds the exact sequence of answers a player would type and returns it;
// the game then replays those answers through a prompt.Script.
//
//	local run = Playthrough.new("first year")
//	run:seed(42)
//	run:new_game{ name = "Ada", major = 1, difficulty = 2, plot = 1 }
//	run:times(4, 1)          -- enroll in four courses
//	run:choose(Menu.study)
//	run:continue()
//	run:times(12, 1)         -- answer the semester's events
//	return run
package scenario

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Shopify/go-lua"

	"github.com/louisbranch/campuslife/internal/services/campus/domain/character"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/narrative"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/semester"
	"github.com/louisbranch/campuslife/internal/services/campus/prompt"
)

const playthroughTypeName = "playthrough"

// Answers to the load question at startup.
const (
	answerLoad    = "y"
	answerNewGame = "n"
)

// Playthrough is a scripted run: an optional seed and the answers to feed
// the prompter, in order.
type Playthrough struct {
	Name  string
	Seed  int64
	Lines []string
}

// Script returns a fresh prompt source replaying the playthrough.
func (p *Playthrough) Script() *prompt.Script {
	return prompt.NewScript(p.Lines...)
}

func (p *Playthrough) add(lines ...string) {
	p.Lines = append(p.Lines, lines...)
}

// LoadFile runs the Lua script at path. A playthrough without a name is
// named after the file.
func LoadFile(path string) (*Playthrough, error) {
	state := newState()
	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	p, err := run(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Name) == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// LoadString runs a Lua script held in memory.
func LoadString(source string) (*Playthrough, error) {
	state := newState()
	if err := lua.LoadString(state, source); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	return run(state)
}

func newState() *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerPlaythroughType(state)
	registerConstructor(state)
	registerMenu(state)
	return state
}

func run(state *lua.State) (*Playthrough, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}
	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("playthrough script must return a Playthrough")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	p, ok := ud.(*Playthrough)
	if !ok || p == nil {
		return nil, fmt.Errorf("playthrough script returned an invalid Playthrough")
	}
	return p, nil
}

func registerPlaythroughType(state *lua.State) {
	lua.NewMetaTable(state, playthroughTypeName)
	state.NewTable()
	lua.SetFunctions(state, playthroughMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, []lua.RegistryFunction{{Name: "new", Function: playthroughNew}}, 0)
	state.SetGlobal("Playthrough")
}

// registerMenu exposes the free-time menu numbers as the Menu table.
func registerMenu(state *lua.State) {
	entries := []struct {
		name  string
		value int
	}{
		{"study", semester.MenuStudy},
		{"rest", semester.MenuRest},
		{"social", semester.MenuSocial},
		{"work", semester.MenuWork},
		{"clubs", semester.MenuClubs},
		{"research", semester.MenuResearch},
		{"items", semester.MenuItems},
		{"courses", semester.MenuCourses},
		{"status", semester.MenuStatus},
		{"save", semester.MenuSave},
		{"continue", semester.MenuContinue},
	}
	state.NewTable()
	for _, entry := range entries {
		state.PushInteger(entry.value)
		state.SetField(-2, entry.name)
	}
	state.SetGlobal("Menu")
}

func playthroughNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	state.PushUserData(&Playthrough{Name: name})
	lua.SetMetaTableNamed(state, playthroughTypeName)
	return 1
}

var playthroughMethods = []lua.RegistryFunction{
	{Name: "seed", Function: playthroughSeed},
	{Name: "input", Function: playthroughInput},
	{Name: "choose", Function: playthroughChoose},
	{Name: "times", Function: playthroughTimes},
	{Name: "new_game", Function: playthroughNewGame},
	{Name: "load", Function: playthroughLoad},
	{Name: "continue", Function: playthroughContinue},
	{Name: "save", Function: playthroughSave},
}

func checkPlaythrough(state *lua.State) *Playthrough {
	ud := lua.CheckUserData(state, 1, playthroughTypeName)
	if p, ok := ud.(*Playthrough); ok && p != nil {
		return p
	}
	lua.ArgumentError(state, 1, "playthrough expected")
	return nil
}

func playthroughSeed(state *lua.State) int {
	p := checkPlaythrough(state)
	p.Seed = int64(lua.CheckInteger(state, 2))
	return 0
}

// input appends raw lines, for names and numeric answers to questions.
func playthroughInput(state *lua.State) int {
	p := checkPlaythrough(state)
	for i := 2; i <= state.Top(); i++ {
		p.add(lua.CheckString(state, i))
	}
	return 0
}

// choose appends menu choices, 1-based as the player sees them.
func playthroughChoose(state *lua.State) int {
	p := checkPlaythrough(state)
	for i := 2; i <= state.Top(); i++ {
		choice := lua.CheckInteger(state, i)
		lua.ArgumentCheck(state, choice >= 1, i, "choices start at 1")
		p.add(strconv.Itoa(choice))
	}
	return 0
}

func playthroughTimes(state *lua.State) int {
	p := checkPlaythrough(state)
	count := lua.CheckInteger(state, 2)
	lua.ArgumentCheck(state, count >= 0, 2, "count must not be negative")
	answer := lua.CheckString(state, 3)
	for i := 0; i < count; i++ {
		p.add(answer)
	}
	return 0
}

// new_game declines the load prompt and answers character creation and the
// major plot question.
func playthroughNewGame(state *lua.State) int {
	p := checkPlaythrough(state)
	lua.CheckType(state, 2, lua.TypeTable)
	name := strings.TrimSpace(stringField(state, 2, "name"))
	lua.ArgumentCheck(state, name != "", 2, "name is required")
	major := intField(state, 2, "major", 1)
	lua.ArgumentCheck(state, major >= 1 && major <= len(character.Majors()), 2, "major out of range")
	difficulty := intField(state, 2, "difficulty", 2)
	lua.ArgumentCheck(state, difficulty >= 1 && difficulty <= len(character.Difficulties()), 2, "difficulty out of range")
	plot := intField(state, 2, "plot", 1)
	lua.ArgumentCheck(state, plot >= 1 && plot <= len(narrative.MajorPlots()), 2, "plot out of range")

	p.add(answerNewGame, name, strconv.Itoa(major), strconv.Itoa(difficulty), strconv.Itoa(plot))
	return 0
}

// load accepts the load prompt and picks the slot at position n.
func playthroughLoad(state *lua.State) int {
	p := checkPlaythrough(state)
	slot := lua.OptInteger(state, 2, 1)
	lua.ArgumentCheck(state, slot >= 1, 2, "slots start at 1")
	p.add(answerLoad, strconv.Itoa(slot))
	return 0
}

func playthroughContinue(state *lua.State) int {
	checkPlaythrough(state).add(strconv.Itoa(semester.MenuContinue))
	return 0
}

func playthroughSave(state *lua.State) int {
	checkPlaythrough(state).add(strconv.Itoa(semester.MenuSave))
	return 0
}

func stringField(state *lua.State, index int, name string) string {
	state.Field(index, name)
	value, _ := state.ToString(-1)
	state.Pop(1)
	return value
}

func intField(state *lua.State, index int, name string, fallback int) int {
	state.Field(index, name)
	if state.IsNil(-1) {
		state.Pop(1)
		return fallback
	}
	value, ok := state.ToInteger(-1)
	state.Pop(1)
	if !ok {
		lua.ArgumentError(state, index, name+" must be a number")
	}
	return value
}
