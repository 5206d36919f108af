package codegen

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ponscripter/internal/errors"
	"ponscripter/internal/parser"
	"ponscripter/internal/semantic"
)

// run pre-scans script, then lexes, parses and generates every line.
func run(t *testing.T, cfg Config, script ...string) (*Generator, error) {
	t.Helper()
	db := semantic.NewDatabaseWithBuiltins()
	db.Prescan(script)

	g := New(db, cfg)
	scanner := parser.NewScanner(db, parser.Options{AllowText: true})
	p := parser.NewParser(db)
	for i, line := range script {
		lexemes, err := scanner.LexLine(line)
		require.NoError(t, err, "line %d: %s", i+1, line)
		nodes, err := p.ParseLine(lexemes)
		require.NoError(t, err, "line %d: %s", i+1, line)
		if err := g.GenerateLine(i+1, line, nodes); err != nil {
			return g, err
		}
	}
	return g, nil
}

func generate(t *testing.T, script ...string) string {
	t.Helper()
	g, err := run(t, Config{}, script...)
	require.NoError(t, err)
	return g.Finish()
}

func quiet() Config {
	off := false
	return Config{WarningsAsComments: &off}
}

func assertOutput(t *testing.T, want []string, got string) {
	t.Helper()
	if diff := cmp.Diff(strings.Join(want, "\n")+"\n", got); diff != "" {
		t.Errorf("generated output mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateForLoop(t *testing.T) {
	got := generate(t,
		"for %1 = 1 to 5 step 2",
		"mov %2, %1",
		"next",
	)
	assertOutput(t, []string{
		"label start:",
		"python:",
		"    nsv[1] = 1",
		"while nsv[1] <= 5:",
		"    python:",
		"        nsv[2] = nsv[1]",
		"        nsv[1] += 2",
	}, got)
}

func TestGenerateForLoopCountingDown(t *testing.T) {
	got := generate(t,
		"for %1 = 10 to 0 step -5",
		"next",
		"click",
	)
	assertOutput(t, []string{
		"label start:",
		"python:",
		"    nsv[1] = 10",
		"while nsv[1] >= 0:",
		"    python:",
		"        nsv[1] -= 5",
		"pause",
	}, got)
}

func TestGenerateForLoopRestoresIndent(t *testing.T) {
	g, err := run(t, quiet(), "for %1 = 1 to 3", "next")
	require.NoError(t, err)
	assert.Equal(t, 0, g.Emitter().Indent())
}

func TestGenerateForLoopNeedsLiteralStep(t *testing.T) {
	_, err := run(t, quiet(), "for %1 = 1 to 5 step %2")
	var genErr *errors.GenerateError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, errors.ErrorUnsupported, genErr.Code)
	assert.Equal(t, 1, genErr.LineNo)
}

func TestGenerateForLoopRejectsZeroStep(t *testing.T) {
	_, err := run(t, quiet(), "for %1 = 5 to 1 step 0")
	var genErr *errors.GenerateError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, errors.ErrorUnsupported, genErr.Code)
	assert.Contains(t, genErr.Message, "zero")
}

func TestGenerateGameJumpsToScriptStart(t *testing.T) {
	got := generate(t, "*define", "game", "*start", "end")
	assertOutput(t, []string{
		"label start:",
		"label l_define:",
		"jump l_start",
		"label l_start:",
		"return",
	}, got)
}

func TestGenerateOverridePrefixSkipsUserSubroutine(t *testing.T) {
	g, err := run(t, quiet(),
		"defsub btndef",
		`_btndef "menu.png"`,
		"defsub monocro",
		"_monocro #FFFFFF",
		"end",
		"*btndef",
		"return",
		"*monocro",
		"return",
	)
	require.NoError(t, err)
	got := g.Finish()
	assert.NotContains(t, got, "call l__")
	assert.Contains(t, got, `    btn_base = "menu.png"`)
	require.Len(t, g.Warnings(), 1)
	assert.Equal(t, errors.WarningUnhandledCommand, g.Warnings()[0].Code)
	assert.Contains(t, g.Warnings()[0].Message, "_monocro")
}

func TestGenerateOverriddenBuiltin(t *testing.T) {
	got := generate(t,
		"defsub bgm",
		`bgm "a.ogg"`,
		`_bgm "b.ogg"`,
		"end",
		"*bgm",
		"getparam $1",
		"return",
	)
	assertOutput(t, []string{
		"label start:",
		`call l_bgm("a.ogg")`,
		`play music "b.ogg"`,
		"return",
		"label l_bgm(*args):",
		"python:",
		"    ssv[1] = args[0]",
		"return",
	}, got)
}

func TestGenerateUserCallWithoutArguments(t *testing.T) {
	got := generate(t,
		"defsub greet",
		"greet",
		"end",
		"*greet",
		"return",
	)
	assertOutput(t, []string{
		"label start:",
		"call l_greet",
		"return",
		"label l_greet:",
		"return",
	}, got)
}

func TestGenerateStartLabelKeptApartFromEntry(t *testing.T) {
	got := generate(t, "*start", "*Chapter1", "goto *chapter1")
	assertOutput(t, []string{
		"label start:",
		"label l_start:",
		"label l_chapter1:",
		"jump l_chapter1",
	}, got)
}

func TestGenerateJumpTargets(t *testing.T) {
	got := generate(t,
		"jumpf",
		"mov %1, 1",
		"~",
		"~",
		"jumpb",
	)
	assertOutput(t, []string{
		"label start:",
		"jump jumpf_0",
		"python:",
		"    nsv[1] = 1",
		"label jumpf_0:",
		"label tilde_1:",
		"jump tilde_1",
	}, got)
}

func TestGenerateIf(t *testing.T) {
	got := generate(t,
		"if %1 = 1 goto *a",
		"notif %1 == 1 mov %2, 1 : click",
		"mov %3, 0",
	)
	assertOutput(t, []string{
		"label start:",
		"if nsv[1] == 1:",
		"    jump l_a",
		"if not (nsv[1] == 1):",
		"    python:",
		"        nsv[2] = 1",
		"    pause",
		"python:",
		"    nsv[3] = 0",
	}, got)
}

func TestGenerateEmptyIfGetsPass(t *testing.T) {
	got := generate(t, "if %1 == 1 ; nothing to do", "click")
	assertOutput(t, []string{
		"label start:",
		"if nsv[1] == 1:",
		"    # nothing to do",
		"    pass",
		"pause",
	}, got)
}

func TestGenerateDialogue(t *testing.T) {
	got := generate(t,
		"^Hello world^@",
		`^She said "hi" [loudly]^\`,
		"^one^@^two^",
		"#FF0000^Red^",
		"^~i~Slanted~i~ text^",
	)
	assertOutput(t, []string{
		"label start:",
		`"Hello world"`,
		`extend "She said \"hi\" [[loudly]"`,
		"nvl clear",
		`"one"`,
		`extend "two"`,
		`"{color=#ff0000}Red{/color}"`,
		`"{i}Slanted{/i} text"`,
	}, got)
}

func TestGenerateMenus(t *testing.T) {
	got := generate(t,
		`select "Yes", *yes, "No", *no`,
		`selnum %1, "Left", "Right"`,
	)
	assertOutput(t, []string{
		"label start:",
		"menu:",
		`    "Yes":`,
		"        jump l_yes",
		`    "No":`,
		"        jump l_no",
		"menu:",
		`    "Left":`,
		"        python:",
		"            nsv[1] = 0",
		`    "Right":`,
		"        python:",
		"            nsv[1] = 1",
	}, got)
}

func TestGenerateMenuNeedsPairs(t *testing.T) {
	_, err := run(t, quiet(), `select "Yes", *yes, "No"`)
	var genErr *errors.GenerateError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, errors.ErrorInvalidArgument, genErr.Code)
}

func TestGenerateExpressions(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"mov %1, 1 + 2 * 3", "nsv[1] = 1 + 2 * 3"},
		{"mov %1, (1 + 2) * 3", "nsv[1] = (1 + 2) * 3"},
		{"mov %1, 1 - (2 - 3)", "nsv[1] = 1 - (2 - 3)"},
		{"mov %1, 7 / 2", "nsv[1] = int(7 / 2)"},
		{"mov %1, -7 / 2", "nsv[1] = int(-7 / 2)"},
		{"mov %1, %2 mod 3", "nsv[1] = nsv[2] - 3 * int(nsv[2] / 3)"},
		{"mov %1, (%2 + 1) mod 3", "nsv[1] = (nsv[2] + 1) - 3 * int((nsv[2] + 1) / 3)"},
		{"mov %1, 1 + 7 / 2 * 3", "nsv[1] = 1 + int(7 / 2) * 3"},
		{"mov %1, 2 * (%2 mod 3)", "nsv[1] = 2 * (nsv[2] - 3 * int(nsv[2] / 3))"},
		{"div %1, 2", "nsv[1] = int(nsv[1] / 2)"},
		{"mod %1, %2 + 1", "nsv[1] = nsv[1] - (nsv[2] + 1) * int(nsv[1] / (nsv[2] + 1))"},
		{"mov %1, 007", "nsv[1] = 7"},
		{"mov %%1, 5", "nsv[nsv[1]] = 5"},
		{`mov $1, "a\b"`, `ssv[1] = "a\\b"`},
		{"add %1, -%2", "nsv[1] += -nsv[2]"},
		{"inc %1", "nsv[1] += 1"},
		{"itoa $1, %1", "ssv[1] = str(nsv[1])"},
		{"rnd %1, 6", "nsv[1] = renpy.random.randint(0, (6) - 1)"},
		{"cmp %1, $1, $2", "nsv[1] = (ssv[1] > ssv[2]) - (ssv[1] < ssv[2])"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			g, err := run(t, quiet(), tt.line)
			require.NoError(t, err)
			lines := g.Emitter().Lines()
			assert.Equal(t, "    "+tt.want, lines[len(lines)-1])
		})
	}
}

func TestGenerateConditionOperators(t *testing.T) {
	got := generate(t, "if %1 <> 2 & %2 = 3 goto *x")
	assertOutput(t, []string{
		"label start:",
		"if nsv[1] != 2 and nsv[2] == 3:",
		"    jump l_x",
	}, got)
}

func TestGenerateAlias(t *testing.T) {
	got := generate(t,
		"numalias Score, 10",
		"mov %SCORE, 1",
	)
	assertOutput(t, []string{
		"label start:",
		"python:",
		"    a_score = 10",
		"    nsv[a_score] = 1",
	}, got)
}

func TestGenerateUndefinedAliasWarnsOnce(t *testing.T) {
	g, err := run(t, quiet(), "mov %hp, 1", "mov %hp, 2")
	require.NoError(t, err)
	require.Len(t, g.Warnings(), 1)
	assert.Equal(t, errors.WarningUndefinedAlias, g.Warnings()[0].Code)
	assert.Equal(t, 1, g.Warnings()[0].Line)
}

func TestGenerateWarningsAsComments(t *testing.T) {
	g, err := run(t, Config{}, "jumpb", "next")
	require.NoError(t, err)
	assertOutput(t, []string{
		"label start:",
		"# WARNING: jumpb before any ~ marker; command skipped",
		"# WARNING: next without a matching for",
	}, g.Finish())

	require.Len(t, g.Warnings(), 2)
	assert.Equal(t, errors.WarningMissingJumpTarget, g.Warnings()[0].Code)
	assert.Equal(t, errors.WarningUnbalancedLoop, g.Warnings()[1].Code)
	assert.Equal(t, 2, g.Warnings()[1].Line)
}

func TestGenerateUnhandledCommandWarns(t *testing.T) {
	g, err := run(t, quiet(), "intlimit %1, 0, 10")
	require.NoError(t, err)
	require.Len(t, g.Warnings(), 1)
	assert.Equal(t, errors.WarningUnhandledCommand, g.Warnings()[0].Code)
	assert.Contains(t, g.Warnings()[0].Message, "intlimit")
}

func TestFinishReportsOpenConstructs(t *testing.T) {
	g, err := run(t, quiet(), "jumpf", "for %1 = 1 to 2")
	require.NoError(t, err)
	g.Finish()

	var codes []string
	for _, w := range g.Warnings() {
		codes = append(codes, w.Code)
	}
	assert.ElementsMatch(t, []string{errors.WarningUnbalancedLoop, errors.WarningMissingJumpTarget}, codes)
}

func TestGenerateArgumentCount(t *testing.T) {
	_, err := run(t, quiet(), "wait 1, 2")
	var countErr *errors.ArgumentCountError
	require.ErrorAs(t, err, &countErr)
	assert.Equal(t, "wait", countErr.Function)
	assert.Equal(t, 2, countErr.Got)
	assert.Equal(t, 1, countErr.LineNo)
}

func TestGenerateReturnWithDestinationUnsupported(t *testing.T) {
	_, err := run(t, quiet(), "return *elsewhere")
	var genErr *errors.GenerateError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, errors.ErrorUnsupported, genErr.Code)
}

func TestGenerateMedia(t *testing.T) {
	got := generate(t,
		`bg black, 1`,
		`bg "cg/room.png", 10`,
		`bg #FFFFFF`,
		`lsp 1, "face.png", 100, 200`,
		`csp 1`,
		`dwave 0, "v001.ogg"`,
		`dwaveloop 1, "rain.ogg"`,
		`mp3 "theme.ogg"`,
		`wait 1500`,
	)
	assertOutput(t, []string{
		"label start:",
		"scene black",
		`scene expression "cg/room.png"`,
		"with dissolve",
		`scene expression Solid("#FFFFFF")`,
		"python:",
		`    sprites[1] = (Image("face.png"), [Transform(xpos=100, ypos=200)])`,
		`    renpy.show("sprite%d" % (1), what=sprites[1][0], at_list=sprites[1][1])`,
		`    renpy.hide("sprite%d" % (1))`,
		`play voice "v001.ogg"`,
		`play sound "rain.ogg" loop`,
		`play music "theme.ogg" noloop`,
		"pause 1.5",
	}, got)
}

func TestGenerateConfiguredNames(t *testing.T) {
	off := false
	g, err := run(t, Config{
		IndentWidth:        2,
		EntryLabel:         "main",
		LabelPrefix:        "lbl_",
		NumericStore:       "num",
		WarningsAsComments: &off,
	}, "*main", "for %1 = 1 to 2", "goto *end_label", "next")
	require.NoError(t, err)
	assertOutput(t, []string{
		"label main:",
		"label lbl_main:",
		"python:",
		"  num[1] = 1",
		"while num[1] <= 2:",
		"  jump lbl_end_label",
		"  python:",
		"    num[1] += 1",
	}, g.Finish())
}

func TestGenerateButtons(t *testing.T) {
	got := generate(t,
		`btndef "menu.png"`,
		"btn 1, 10, 20, 100, 30, 0, 0",
		"spbtn 3, 2",
		"btnwait %5",
		"btndef clear",
	)
	assertOutput(t, []string{
		"label start:",
		"python:",
		`    btn_base = "menu.png"`,
		"    btn_areas = {}",
		"    btn_areas[1] = (10, 20, 100, 30)",
		`    btn_areas[2] = renpy.get_image_bounds("sprite%d" % (3))`,
		"    nsv[5] = renpy.imagemap(btn_base, btn_base, [(x, y, x + w, y + h, n) for n, (x, y, w, h) in btn_areas.items()])",
		"    btn_areas = {}",
	}, got)
}

func TestGenerateButtonWaitNeedsVariable(t *testing.T) {
	_, err := run(t, quiet(), "btnwait 3")
	var genErr *errors.GenerateError
	require.ErrorAs(t, err, &genErr)
}

func TestGenerateSpriteVisibility(t *testing.T) {
	got := generate(t,
		"vsp 2, 0",
		"vsp 2, 1",
		"vsp %1, %2",
	)
	assertOutput(t, []string{
		"label start:",
		"python:",
		`    renpy.hide("sprite%d" % (2))`,
		`    renpy.show("sprite%d" % (2), what=sprites[2][0], at_list=sprites[2][1])`,
		`    renpy.show("sprite%d" % (nsv[1]), what=sprites[nsv[1]][0], at_list=sprites[nsv[1]][1]) if nsv[2] else renpy.hide("sprite%d" % (nsv[1]))`,
	}, got)
}
