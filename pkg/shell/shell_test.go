package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deskcalc/deskcalc/pkg/logutil"
	"github.com/deskcalc/deskcalc/pkg/must"
	. "github.com/deskcalc/deskcalc/pkg/prog/progtest"
	"github.com/deskcalc/deskcalc/pkg/store"
	"github.com/deskcalc/deskcalc/pkg/testutil"
)

// Runs the test in a temporary directory, with the default config path inside
// it. Returns the directory.
func setup(t *testing.T) string {
	dir := testutil.InTempDir(t)
	testutil.Setenv(t, "XDG_CONFIG_HOME", dir)
	return dir
}

func TestProgram_Args(t *testing.T) {
	setup(t)
	Test(t, &Program{},
		ThatDeskcalc("-c", "2+3*4").WritesStdout("14\n"),
		ThatDeskcalc("-c", "3+4", "Ans*2").WritesStdout("7\n14\n"),
		ThatDeskcalc("-c", "1/0").
			ExitsWith(2).WritesStderrContaining("divide by zero: divisor of / is 0"),
		ThatDeskcalc("-c", "1/0", "2").
			ExitsWith(2).WritesStdout("2\n").WritesStderrContaining("divide by zero"),
		ThatDeskcalc("-c", "sin(90)").
			ExitsWith(2).
			WritesStderrContaining("undefined name: sin: only available in scientific mode"),
		ThatDeskcalc("-c", "2+").
			ExitsWith(2).WritesStderrContaining("missing operand"),
		ThatDeskcalc("-c").
			ExitsWith(2).WritesStderrContaining("-c requires at least one expression\nUsage:"),

		ThatDeskcalc("-mode", "scientific", "-c", "sin(90)").WritesStdout("1\n"),
		ThatDeskcalc("-mode", "scientific", "-angle", "rad", "-c", "sin(pi/2)").WritesStdout("1\n"),
		ThatDeskcalc("-mode", "scientific", "-c", "pi").WritesStdout("3.14159265358979\n"),
		ThatDeskcalc("-mode", "bad", "-c", "1").
			ExitsWith(2).WritesStderrContaining(`unknown mode "bad"`),
		ThatDeskcalc("-angle", "grad", "-c", "1").
			ExitsWith(2).WritesStderrContaining(`unknown angle unit "grad"`),
	)
}

func TestProgram_JSON(t *testing.T) {
	setup(t)
	Test(t, &Program{},
		ThatDeskcalc("-json", "-c", "1+1", "1/0").
			ExitsWith(2).
			WritesStdout(`[{"expr":"1+1","value":2,"display":"2"},` +
				`{"expr":"1/0","display":"Division by Zero","error":` +
				`{"fileName":"[arg 2]","start":0,"end":3,"kind":"divide-by-zero",` +
				`"message":"divide by zero: divisor of / is 0"}}]` + "\n"),
		ThatDeskcalc("-json", "-c", "2+").
			ExitsWith(2).
			WritesStdout(`[{"expr":"2+","display":"Syntax Error","error":` +
				`{"fileName":"[arg 1]","start":2,"end":2,"kind":"syntax-error",` +
				`"message":"missing operand"}}]` + "\n"),
		ThatDeskcalc("-json", "-c", "0").
			WritesStdout(`[{"expr":"0","value":0,"display":"0"}]` + "\n"),
	)
}

func TestProgram_Sheets(t *testing.T) {
	setup(t)
	must.WriteFile("a.calc", "# costs\n3+4\n\nAns*2\n")
	must.WriteFile("b.calc", "1\n2+\n")
	must.WriteFile("c.calc", "\xff")
	must.WriteFile("d.calc", "Ans+1\n")

	Test(t, &Program{},
		ThatDeskcalc("a.calc").WritesStdout("7\n14\n"),
		ThatDeskcalc("a.calc", "a.calc").WritesStdout("7\n14\n7\n14\n"),
		// Ans carries over from one sheet to the next.
		ThatDeskcalc("a.calc", "d.calc").WritesStdout("7\n14\n15\n"),
		ThatDeskcalc("d.calc").
			ExitsWith(2).WritesStderrContaining("undefined name: Ans"),
		ThatDeskcalc("b.calc").
			ExitsWith(2).WritesStdout("1\n").WritesStderrContaining("b.calc, line 2:1:3"),
		ThatDeskcalc("c.calc").
			ExitsWith(2).WritesStderrContaining("source is not UTF-8"),
		ThatDeskcalc("nonexistent.calc").
			ExitsWith(2).WritesStderrContaining("cannot read sheet"),
	)
}

func TestProgram_Interactive(t *testing.T) {
	setup(t)
	Test(t, &Program{},
		ThatDeskcalc().WithStdin("1+2\nAns*2\n").WritesStdout("3\n6\n"),
		// The last line doesn't need a newline.
		ThatDeskcalc().WithStdin("5").WritesStdout("5\n"),
		ThatDeskcalc().WithStdin("1/0\n\n   \n2\n").
			WritesStdout("2\n").WritesStderrContaining("Exception: "),

		ThatDeskcalc().
			WithStdin(":mode scientific\nsin(90)\n:rad\nsin(pi/2)\n:ac\nAns\n:quit\n1\n").
			WritesStdout("1\n1\n").
			WritesStderrContaining("undefined name: Ans"),
		ThatDeskcalc().WithStdin(":deg\n:mode\n").
			WritesStderrContaining("usage: :mode normal|scientific"),

		ThatDeskcalc().WithStdin("1+1\n2*3\n:history\n").
			WritesStdout("2\n6\n   1  1+1 = 2\n   2  2*3 = 6\n"),
		ThatDeskcalc().WithStdin("1+1\n2*3\n:history 1\n").
			WritesStdout("2\n6\n   2  2*3 = 6\n"),
		ThatDeskcalc().WithStdin("1+1\n:clear\n:history\n").WritesStdout("2\n"),
		ThatDeskcalc().WithStdin(":history x\n").
			WritesStderrContaining(`invalid number of entries "x"`),
		ThatDeskcalc().WithStdin("1+1\n2*3\n3*3\n:history 2 3\n").
			WritesStdout("2\n6\n9\n   2  2*3 = 6\n   3  3*3 = 9\n"),
		ThatDeskcalc().WithStdin("1+1\n2*3\n:history -5 1\n").
			WritesStdout("2\n6\n   1  1+1 = 2\n"),
		ThatDeskcalc().WithStdin(":history 1 x\n").
			WritesStderrContaining(`invalid sequence number "x"`),
		ThatDeskcalc().WithStdin(":history 1 2 3\n").
			WritesStderrContaining("usage: :history [n] or :history from upto"),

		ThatDeskcalc().WithStdin("1+1\n2*3\n:recall 1\nAns*10\n").
			WritesStdout("2\n6\n2\n20\n"),
		ThatDeskcalc().WithStdin("5\n:ac\n:recall\nAns+1\n").
			WritesStdout("5\n5\n6\n"),
		ThatDeskcalc().WithStdin("5\n:recall 9\n").
			WritesStdout("5\n").WritesStderrContaining("no history entry 9"),

		ThatDeskcalc().WithStdin(":help\n").
			WritesStdoutContaining(":mode normal|scientific"),
		ThatDeskcalc().WithStdin(":bogus\n").
			WritesStderrContaining("unknown command :bogus; try :help"),
		ThatDeskcalc().WithStdin(":\n").
			WritesStderrContaining("missing command"),
		ThatDeskcalc().WithStdin(":ast 1+2\n").
			WritesStdout("Binary + 0-3\n  Literal 1 0-1\n  Literal 2 2-3\n"),
		ThatDeskcalc().WithStdin(":ast 1+\n").
			WritesStderrContaining("missing operand"),
	)
}

func TestProgram_Config(t *testing.T) {
	dir := setup(t)
	must.WriteFile("rc.yaml", "mode: scientific\nangle: rad\n")
	must.WriteFile("rc.toml", "mode = 'scientific'\n")
	must.WriteFile("unknown.yaml", "color: red\n")
	must.WriteFile("unknown.toml", "colour = 'red'\n")
	must.WriteFile("empty.yaml", "# nothing\n")

	Test(t, &Program{},
		ThatDeskcalc("-rc", "rc.yaml", "-c", "sin(pi/2)").WritesStdout("1\n"),
		ThatDeskcalc("-rc", "rc.toml", "-c", "5!").WritesStdout("120\n"),
		ThatDeskcalc("-rc", "empty.yaml", "-c", "1").WritesStdout("1\n"),
		// Flags take precedence.
		ThatDeskcalc("-rc", "rc.yaml", "-mode", "normal", "-c", "sin(1)").
			ExitsWith(2).WritesStderrContaining("only available in scientific mode"),
		ThatDeskcalc("-rc", "rc.yaml", "-angle", "deg", "-c", "sin(90)").WritesStdout("1\n"),
		// -norc skips the config file.
		ThatDeskcalc("-norc", "-rc", "unknown.yaml", "-c", "1").WritesStdout("1\n"),

		ThatDeskcalc("-rc", "unknown.yaml", "-c", "1").
			ExitsWith(2).WritesStderrContaining("field color not found"),
		ThatDeskcalc("-rc", "unknown.toml", "-c", "1").
			ExitsWith(2).WritesStderrContaining("unknown keys colour"),
		ThatDeskcalc("-rc", "missing.yaml", "-c", "1").
			ExitsWith(2).WritesStderrContaining("missing.yaml"),
	)

	// The default config file.
	must.OK(os.MkdirAll(filepath.Join(dir, "deskcalc"), 0755))
	must.WriteFile(filepath.Join(dir, "deskcalc", "rc.yaml"), "mode: scientific\n")
	Test(t, &Program{},
		ThatDeskcalc("-c", "pi").WritesStdout("3.14159265358979\n"),
		ThatDeskcalc("-norc", "-c", "pi").
			ExitsWith(2).WritesStderrContaining("undefined name: pi"),
	)
}

func TestProgram_DB(t *testing.T) {
	setup(t)
	must.WriteFile("rc.yaml", "db: config.db\n")
	must.OK(os.Mkdir("dir", 0755))

	Test(t, &Program{},
		ThatDeskcalc("-db", "hist.db", "-c", "6*7", "1/0").
			ExitsWith(2).WritesStdout("42\n").WritesStderrContaining("divide by zero"),
		ThatDeskcalc("-rc", "rc.yaml", "-c", "2^10").WritesStdout("1024\n"),
		ThatDeskcalc("-db", "hist.db").WithStdin(":history\n").
			WritesStdout("   1  6*7 = 42\n"),
		ThatDeskcalc("-db", "dir", "-c", "1").
			WritesStdout("1\n").
			WritesStderrContaining("History will be kept in memory."),
	)

	for _, test := range []struct {
		db, expr string
		value    float64
	}{
		{"hist.db", "6*7", 42},
		{"config.db", "2^10", 1024},
	} {
		st, err := store.NewStore(test.db)
		if err != nil {
			t.Fatal(err)
		}
		entries, err := st.LastEntries(10)
		st.Close()
		if err != nil || len(entries) != 1 ||
			entries[0].Expr != test.expr || entries[0].Value != test.value {
			t.Errorf("%s has entries %v, error %v", test.db, entries, err)
		}
	}
}

func TestProgram_LogFromConfig(t *testing.T) {
	setup(t)
	t.Cleanup(func() { logutil.SetOutputFile("") })
	must.WriteFile("rc.yaml", "log: calc.log\n")

	Test(t, &Program{}, ThatDeskcalc("-rc", "rc.yaml", "-c", "1+1").WritesStdout("2\n"))

	logutil.SetOutputFile("")
	if content := must.ReadFileString("calc.log"); !strings.Contains(content, `normal: "1+1" = 2`) {
		t.Errorf("log file has %q", content)
	}
}
