package generate

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/adidahl/techlingo-agent-framework/internal/router"
	"github.com/adidahl/techlingo-agent-framework/internal/screen"
	"github.com/adidahl/techlingo-agent-framework/internal/screens/quizscreen"
	"github.com/adidahl/techlingo-agent-framework/internal/store"
	"github.com/adidahl/techlingo-agent-framework/internal/stream"
	"github.com/adidahl/techlingo-agent-framework/internal/ui/components"
	"github.com/adidahl/techlingo-agent-framework/internal/ui/layout"
	"github.com/adidahl/techlingo-agent-framework/internal/workflow"
)

// mode selects which part of the generate flow is on screen.
type mode int

const (
	modeForm mode = iota
	modeAnalyzing
	modeGenerating
	modeDone
)

var difficulties = []string{"beginner", "intermediate", "advanced"}

// GenerateScreen drives the analyze and generate streaming sessions: a
// source-text form, live progress and logs while a session runs, and the
// result summary once the pipeline completes.
type GenerateScreen struct {
	server   string
	cfg      *workflow.Config
	baseSeed int
	hist     *store.Store

	mode       mode
	input      components.TextInput
	difficulty int

	gen *stream.Controller
	ana *stream.Controller

	// dialSeq guards against a stale dial attaching after a restart.
	dialSeq int

	console  components.Console
	insights *stream.AnalyzeResult
	result   *stream.GenerateResult
	recorded bool
}

var _ screen.Screen = (*GenerateScreen)(nil)
var _ screen.KeyHintProvider = (*GenerateScreen)(nil)

// New creates the generate screen. cfg is the workflow config sent with
// every generate request; applying analyzer recommendations replaces it
// in place.
func New(server string, cfg *workflow.Config, baseSeed int, hist *store.Store) *GenerateScreen {
	if cfg == nil {
		def := workflow.Default()
		cfg = &def
	}
	return &GenerateScreen{
		server: server,
		cfg:    cfg,

		baseSeed: baseSeed,
		hist:     hist,
		input:    components.NewTextInput("Paste or type the source text...", false, 0),
		gen:      stream.NewGenerator(),
		ana:      stream.NewAnalyzer(),
	}
}

func (g *GenerateScreen) Init() tea.Cmd {
	return g.input.Init()
}

func (g *GenerateScreen) Title() string {
	return "Generate"
}

// Close tears down any live session before the screen is popped.
func (g *GenerateScreen) Close() {
	g.gen.Cancel()
	g.ana.Cancel()
}

func (g *GenerateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dialedMsg:
		return g.handleDialed(msg)
	case eventMsg:
		return g.handleEvent(msg)
	case tea.KeyMsg:
		return g.handleKey(msg)
	}

	var cmd tea.Cmd
	g.input, cmd = g.input.Update(msg)
	return g, cmd
}

func (g *GenerateScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch g.mode {
	case modeForm:
		switch msg.String() {
		case "enter":
			return g.startGenerate()
		case "ctrl+a":
			return g.startAnalyze()
		case "ctrl+r":
			if g.insights != nil && g.insights.RecommendedConfig != nil {
				*g.cfg = *g.insights.RecommendedConfig
			}
			return g, nil
		case "tab":
			g.difficulty = (g.difficulty + 1) % len(difficulties)
			return g, nil
		}
		var cmd tea.Cmd
		g.input, cmd = g.input.Update(msg)
		return g, cmd

	case modeAnalyzing, modeGenerating:
		ctrl := g.activeController()
		switch msg.String() {
		case "pgup":
			g.console.ScrollUp(consoleHeight)
		case "pgdown":
			g.console.ScrollDown()
		case "enter":
			if ctrl.State().Status.Terminal() {
				g.mode = modeForm
				return g, g.input.Init()
			}
		}
		return g, nil

	case modeDone:
		switch msg.String() {
		case "s":
			if g.result != nil && g.result.Course != nil {
				course := g.result.Course
				runID := g.result.RunID
				return g, func() tea.Msg {
					return router.PushScreenMsg{
						Screen: quizscreen.New(course, runID, g.baseSeed, g.hist),
					}
				}
			}
		case "n":
			g.mode = modeForm
			g.result = nil
			g.recorded = false
			return g, g.input.Init()
		}
		return g, nil
	}
	return g, nil
}

func (g *GenerateScreen) startGenerate() (screen.Screen, tea.Cmd) {
	text := g.input.Value()
	if text == "" {
		return g, nil
	}
	g.mode = modeGenerating
	g.gen.Begin()
	g.recorded = false
	g.dialSeq++
	payload := stream.GeneratePayload{
		InputText:  text,
		Config:     g.cfg,
		Difficulty: difficulties[g.difficulty],
	}
	return g, dialCmd(g.server+"/ws/run", payload, false, g.dialSeq)
}

func (g *GenerateScreen) startAnalyze() (screen.Screen, tea.Cmd) {
	text := g.input.Value()
	if text == "" {
		return g, nil
	}
	g.mode = modeAnalyzing
	g.ana.Begin()
	g.dialSeq++
	return g, dialCmd(g.server+"/ws/analyze", stream.AnalyzePayload{InputText: text}, true, g.dialSeq)
}

func (g *GenerateScreen) handleDialed(msg dialedMsg) (screen.Screen, tea.Cmd) {
	ctrl := g.controllerFor(msg.analyze)
	if msg.seq != g.dialSeq || ctrl.State().Status != stream.StatusConnecting {
		// A restart superseded this dial.
		if msg.session != nil {
			msg.session.Close()
		}
		return g, nil
	}
	if msg.err != nil {
		ctrl.Fail(msg.err)
		g.syncConsole(ctrl)
		if !msg.analyze {
			g.record(ctrl.State())
		}
		return g, nil
	}
	ctrl.Attach(msg.session)
	return g, readCmd(msg.session, msg.analyze)
}

func (g *GenerateScreen) handleEvent(msg eventMsg) (screen.Screen, tea.Cmd) {
	ctrl := g.controllerFor(msg.analyze)
	session := ctrl.Session()
	if session == nil || session != msg.session {
		// Session already torn down or replaced; drop the stale read.
		return g, nil
	}

	if msg.err != nil {
		var mErr *stream.MalformedEventError
		if errors.As(msg.err, &mErr) {
			ctrl.Discard(msg.err)
			g.syncConsole(ctrl)
			return g, readCmd(session, msg.analyze)
		}
		ctrl.Fail(msg.err)
		g.syncConsole(ctrl)
		if !msg.analyze {
			g.record(ctrl.State())
		}
		return g, nil
	}

	ctrl.Apply(*msg.ev)
	g.syncConsole(ctrl)

	state := ctrl.State()
	if !state.Status.Terminal() {
		if next := ctrl.Session(); next != nil {
			return g, readCmd(next, msg.analyze)
		}
		return g, nil
	}

	if msg.analyze {
		return g.finishAnalyze(state)
	}
	return g.finishGenerate(state)
}

func (g *GenerateScreen) finishAnalyze(state stream.State) (screen.Screen, tea.Cmd) {
	if state.Status == stream.StatusCompleted && state.Done != nil {
		res, err := state.Done.AnalyzeResult()
		if err == nil {
			g.insights = res
		}
	}
	// Back to the form either way; an error stays visible in the console.
	if state.Status == stream.StatusCompleted {
		g.mode = modeForm
		return g, g.input.Init()
	}
	return g, nil
}

func (g *GenerateScreen) finishGenerate(state stream.State) (screen.Screen, tea.Cmd) {
	if state.Status == stream.StatusCompleted && state.Done != nil {
		res, err := state.Done.GenerateResult()
		if err == nil {
			g.result = res
			g.mode = modeDone
		}
	}
	g.record(state)
	return g, nil
}

// record appends the finished run to local history. Best effort; a closed
// or missing database never blocks the flow.
func (g *GenerateScreen) record(state stream.State) {
	if g.hist == nil || g.recorded {
		return
	}
	g.recorded = true

	rec := store.RunRecord{
		RunID:      state.RunID,
		Difficulty: difficulties[g.difficulty],
		Status:     store.RunCompleted,
	}
	if g.result != nil && g.result.Course != nil {
		rec.Title = g.result.Course.Title
	}
	if state.Status == stream.StatusError {
		rec.Status = store.RunFailed
		rec.Error = state.ErrMsg
	}
	g.hist.AppendRun(context.Background(), rec)
}

func (g *GenerateScreen) controllerFor(analyze bool) *stream.Controller {
	if analyze {
		return g.ana
	}
	return g.gen
}

func (g *GenerateScreen) activeController() *stream.Controller {
	if g.mode == modeAnalyzing {
		return g.ana
	}
	return g.gen
}

func (g *GenerateScreen) syncConsole(ctrl *stream.Controller) {
	g.console.SetLines(ctrl.State().Logs)
}

func (g *GenerateScreen) KeyHints() []layout.KeyHint {
	switch g.mode {
	case modeForm:
		hints := []layout.KeyHint{
			{Key: "Enter", Description: "Generate"},
			{Key: "Ctrl+A", Description: "Analyze"},
			{Key: "Tab", Description: "Difficulty"},
		}
		if g.insights != nil && g.insights.RecommendedConfig != nil {
			hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Apply recommended"})
		}
		return hints
	case modeAnalyzing, modeGenerating:
		hints := []layout.KeyHint{
			{Key: "PgUp/PgDn", Description: "Scroll logs"},
		}
		if g.activeController().State().Status.Terminal() {
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Back"})
		}
		return hints
	case modeDone:
		return []layout.KeyHint{
			{Key: "S", Description: "Start quiz"},
			{Key: "N", Description: "New course"},
		}
	}
	return nil
}
